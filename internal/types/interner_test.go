package types

import (
	"errors"
	"sync"
	"testing"
)

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Void == NoTypeID || b.Int == NoTypeID || b.Null == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	if b.Invalid != NoTypeID {
		t.Fatalf("invalid sentinel must be NoTypeID, got %d", b.Invalid)
	}
	intType, _ := in.Lookup(b.Int)
	if intType.Kind != KindInt {
		t.Fatalf("expected int kind, got %v", intType.Kind)
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	str := in.Intern(MakeClass("java.lang.String"))
	arr1 := in.Intern(MakeArray(str))
	arr2 := in.Intern(MakeArray(str))
	if arr1 != arr2 {
		t.Fatalf("array types should be deduplicated")
	}
	if in.Intern(MakeClass("java.lang.String")) != str {
		t.Fatalf("class types should be deduplicated")
	}
}

func TestInternerKeysAndNames(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	str := in.Intern(MakeClass("java.lang.String"))
	matrix := in.Intern(MakeArray(in.Intern(MakeArray(b.Int))))

	cases := []struct {
		id   TypeID
		key  string
		name string
	}{
		{b.Int, "I", "int"},
		{b.Void, "V", "void"},
		{b.Long, "J", "long"},
		{str, "Ljava/lang/String;", "java.lang.String"},
		{matrix, "[[I", "int[][]"},
	}
	for _, c := range cases {
		if got := in.Key(c.id); got != c.key {
			t.Fatalf("Key(%d) = %q, want %q", c.id, got, c.key)
		}
		if got := in.Name(c.id); got != c.name {
			t.Fatalf("Name(%d) = %q, want %q", c.id, got, c.name)
		}
	}
}

func TestInternKeyRoundTrip(t *testing.T) {
	in := NewInterner()
	for _, key := range []string{"I", "Z", "[Ljava/util/List;", "Lcom/example/Outer$Inner;", "[[D"} {
		id, err := in.InternKey(key)
		if err != nil {
			t.Fatalf("InternKey(%q): %v", key, err)
		}
		if got := in.Key(id); got != key {
			t.Fatalf("round trip mismatch: %q -> %q", key, got)
		}
	}
}

func TestInternKeyKeepsInterfaces(t *testing.T) {
	in := NewInterner()
	list := in.Intern(MakeInterface("java.util.List"))
	id, err := in.InternKey("Ljava/util/List;")
	if err != nil {
		t.Fatalf("InternKey: %v", err)
	}
	if id != list {
		t.Fatalf("expected interface descriptor to be reused")
	}
}

func TestInternKeyRejectsMalformed(t *testing.T) {
	in := NewInterner()
	for _, key := range []string{"", "Q", "Ljava/lang/String", "II"} {
		if _, err := in.InternKey(key); !errors.Is(err, ErrBadKey) {
			t.Fatalf("InternKey(%q): expected ErrBadKey, got %v", key, err)
		}
	}
}

func TestFrozenInternerRejectsNewDescriptors(t *testing.T) {
	in := NewInterner()
	str := in.Intern(MakeClass("java.lang.String"))
	in.Freeze()

	if in.Intern(MakeClass("java.lang.String")) != str {
		t.Fatalf("known descriptors must still resolve after freeze")
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrFrozen) {
			t.Fatalf("expected ErrFrozen panic, got %v", r)
		}
	}()
	in.Intern(MakeClass("java.lang.Object"))
}

func TestFrozenInternerConcurrentReads(t *testing.T) {
	in := NewInterner()
	str := in.Intern(MakeClass("java.lang.String"))
	arr := in.Intern(MakeArray(str))
	in.Freeze()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if in.Key(arr) != "[Ljava/lang/String;" {
					t.Errorf("unexpected key")
					return
				}
			}
		}()
	}
	wg.Wait()
}
