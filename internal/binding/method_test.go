package binding

import (
	"errors"
	"testing"
)

// primitive is a minimal front-end style type used by the tests.
type primitive struct {
	name, key string
}

func (p *primitive) Kind() Kind                 { return KindType }
func (p *primitive) Name() string               { return p.name }
func (p *primitive) Modifiers() Modifiers       { return 0 }
func (p *primitive) Key() string                { return p.key }
func (p *primitive) QualifiedName() string      { return p.name }
func (p *primitive) DeclaringType() TypeBinding { return nil }
func (p *primitive) Superclass() TypeBinding    { return nil }
func (p *primitive) Interfaces() []TypeBinding  { return nil }
func (p *primitive) IsPrimitive() bool          { return true }
func (p *primitive) IsInterface() bool          { return false }

var (
	intType  = &primitive{name: "int", key: "I"}
	boolType = &primitive{name: "boolean", key: "Z"}
	voidType = &primitive{name: "void", key: "V"}
)

// original stands in for a method supplied by the front end.
type original struct {
	name      string
	declaring TypeBinding
	params    []TypeBinding
	ret       TypeBinding
	overrides []MethodBinding
}

func (o *original) Kind() Kind                    { return KindMethod }
func (o *original) Name() string                  { return o.name }
func (o *original) Modifiers() Modifiers          { return ModPublic }
func (o *original) Key() string                   { return MethodKey(o.declaring, o.name, o.params, o.ret) }
func (o *original) DeclaringType() TypeBinding    { return o.declaring }
func (o *original) ReturnType() TypeBinding       { return o.ret }
func (o *original) ParameterTypes() []TypeBinding { return append([]TypeBinding(nil), o.params...) }
func (o *original) IsConstructor() bool           { return false }
func (o *original) IsVarargs() bool               { return false }
func (o *original) Declaration() MethodBinding    { return o }
func (o *original) ExceptionTypes() []TypeBinding { return nil }
func (o *original) IsSubsignature(other MethodBinding) bool {
	return other.Name() == o.name && SameParameters(o, other)
}
func (o *original) Overrides(other MethodBinding) bool {
	for _, m := range o.overrides {
		if m == other || m.Overrides(other) {
			return true
		}
	}
	return false
}

func mustViolate(t *testing.T, fn func()) *InvariantViolation {
	t.Helper()
	var got *InvariantViolation
	func() {
		defer func() {
			r := recover()
			v, ok := r.(*InvariantViolation)
			if !ok {
				t.Fatalf("expected *InvariantViolation panic, got %v", r)
			}
			got = v
		}()
		fn()
	}()
	return got
}

func TestNewMethodDefaults(t *testing.T) {
	owner := NewType("com.example", "Foo", ModPublic, nil)
	m := NewMethod("size", ModPublic, intType, owner)

	if m.Delegate() != nil {
		t.Fatalf("standalone method must not have a delegate")
	}
	if m.NumParameters() != 0 || m.IsVarargs() || m.IsConstructor() {
		t.Fatalf("unexpected defaults: %s", m)
	}
	if m.Declaration() != m {
		t.Fatalf("Declaration() must return the method itself")
	}
	if m.ExceptionTypes() != nil || m.TypeParameters() != nil || m.IsGeneric() || m.DefaultValue() != nil {
		t.Fatalf("generated methods must answer fixed defaults")
	}
	if got := m.Key(); got != "Lcom/example/Foo;.size()I" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestCloneMethodInsertParameter(t *testing.T) {
	owner := NewType("p", "C", 0, nil)
	str := NewType("java.lang", "String", ModPublic|ModFinal, nil)
	src := NewMethod("m", ModPublic, voidType, owner)
	src.AddParameter(intType)
	src.AddParameter(boolType)

	clone := CloneMethod(src)
	clone.InsertParameter(1, str)

	params := clone.ParameterTypes()
	if len(params) != 3 || params[0] != intType || params[1] != TypeBinding(str) || params[2] != boolType {
		t.Fatalf("expected [int, String, boolean], got %v", params)
	}
	if src.NumParameters() != 2 {
		t.Fatalf("clone must not share the parameter list with its source")
	}
}

func TestParameterTypesReturnsCopy(t *testing.T) {
	m := NewMethod("m", 0, voidType, NewType("p", "C", 0, nil))
	m.AddParameter(intType)
	params := m.ParameterTypes()
	params[0] = boolType
	if m.ParameterTypes()[0] != intType {
		t.Fatalf("mutating the returned slice must not affect the binding")
	}
}

func TestRenameCloneScenario(t *testing.T) {
	owner := NewType("com.example", "Foo", ModPublic, nil)
	str := NewType("java.lang", "String", ModPublic, nil)
	foo := &original{name: "foo", declaring: owner, params: []TypeBinding{intType}, ret: voidType}

	renamed := RenameMethod("foo_", CloneMethod(foo))
	renamed.InsertParameter(0, str)

	if renamed.Name() != "foo_" {
		t.Fatalf("expected name foo_, got %q", renamed.Name())
	}
	params := renamed.ParameterTypes()
	if len(params) != 2 || params[0] != TypeBinding(str) || params[1] != intType {
		t.Fatalf("expected (String, int), got %v", params)
	}
	if renamed.Key() == foo.Key() {
		t.Fatalf("renamed method must have a distinct key")
	}
	if renamed.String() != "public void foo_(String, int)" {
		t.Fatalf("unexpected rendering %q", renamed.String())
	}
}

func TestStringRendering(t *testing.T) {
	owner := NewType("p", "C", 0, nil)
	tests := []struct {
		mods Modifiers
		want string
	}{
		{0, "void run(int, boolean)"},
		{ModPublic | ModStatic, "public static void run(int, boolean)"},
	}
	for _, tt := range tests {
		m := NewMethod("run", tt.mods, voidType, owner)
		m.AddParameter(intType)
		m.AddParameter(boolType)
		if got := m.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}

// valueMethod is a struct-valued method binding whose dynamic type is not
// comparable with ==.
type valueMethod struct {
	*original
	tags []string
}

func TestOverridesWithUncomparableDelegate(t *testing.T) {
	owner := NewType("p", "C", 0, nil)
	base := &original{name: "f", declaring: owner, ret: voidType}
	delegate := valueMethod{original: &original{name: "f", declaring: owner, ret: voidType, overrides: []MethodBinding{base}}}
	gen := NewGeneratedMethod(MethodSpec{Delegate: delegate, Name: "f"})

	if gen.Overrides(valueMethod{original: base}) {
		t.Fatalf("unrelated value binding reported as overridden")
	}
	if !gen.Overrides(base) {
		t.Fatalf("override through the delegate lost")
	}
	if gen.Overrides(nil) {
		t.Fatalf("nil reported as overridden")
	}
	if !Same(delegate, valueMethod{original: base}) {
		t.Fatalf("value bindings with equal keys should be the same")
	}
}

func TestKeyIsOrderSensitiveAndStable(t *testing.T) {
	owner := NewType("p", "C", 0, nil)
	ab := NewMethod("f", 0, voidType, owner)
	ab.AddParameter(intType)
	ab.AddParameter(boolType)
	ba := NewMethod("f", 0, voidType, owner)
	ba.AddParameter(boolType)
	ba.AddParameter(intType)
	if ab.Key() == ba.Key() {
		t.Fatalf("[A,B] and [B,A] must produce different keys")
	}

	again := NewMethod("f", ModStatic, voidType, NewType("p", "C", ModPublic, nil))
	again.AddParameter(intType)
	again.AddParameter(boolType)
	if ab.Key() != again.Key() {
		t.Fatalf("identical signatures must produce equal keys: %q vs %q", ab.Key(), again.Key())
	}
	first := ab.Key()
	ab.SetModifiers(ModPrivate)
	if ab.Key() != first {
		t.Fatalf("key must not depend on modifiers")
	}
}

func TestKeyNormalizesNames(t *testing.T) {
	owner := NewType("p", "C", 0, nil)
	composed := NewMethod("caf\u00e9", 0, voidType, owner)
	decomposed := NewMethod("cafe\u0301", 0, voidType, owner)
	if composed.Key() != decomposed.Key() {
		t.Fatalf("keys must not depend on unicode normalization form")
	}
	if decomposed.Name() != "cafe\u0301" {
		t.Fatalf("Name() must keep the spelling it was given")
	}
}

func TestKeyWithoutDeclaringTypeViolates(t *testing.T) {
	m := NewMethod("orphan", 0, voidType, nil)
	v := mustViolate(t, func() { _ = m.Key() })
	if !errors.Is(v, ErrInvariant) {
		t.Fatalf("violation must match ErrInvariant")
	}

	m.SetDeclaringType(NewType("p", "Late", 0, nil))
	if m.Key() != "Lp/Late;.orphan()V" {
		t.Fatalf("unexpected key after retargeting: %q", m.Key())
	}
}

func TestSetDeclaringTypeRetargets(t *testing.T) {
	first := NewType("p", "A", 0, nil)
	second := NewType("p", "B", 0, nil)
	m := NewMethod("get", 0, intType, first)
	before := m.Key()
	m.SetDeclaringType(second)
	if m.DeclaringType() != TypeBinding(second) || m.Key() == before {
		t.Fatalf("declaring type must be retargetable")
	}
}

func TestModifierMutation(t *testing.T) {
	starts := []Modifiers{0, ModPublic, ModPublic | ModStatic, ModPrivate | ModFinal | ModSynthetic}
	for _, start := range starts {
		for _, x := range []Modifiers{ModSynthetic, ModStatic | ModFinal, ModNative} {
			if start&x != 0 {
				continue
			}
			m := NewMethod("m", start, voidType, nil)
			m.AddModifiers(x)
			if !m.Modifiers().Has(x) {
				t.Fatalf("AddModifiers(%s) lost bits", x)
			}
			m.RemoveModifiers(x)
			if m.Modifiers() != start {
				t.Fatalf("add/remove of %s from %s yielded %s", x, start, m.Modifiers())
			}
		}
	}

	m := NewMethod("m", ModPublic, voidType, nil)
	m.SetModifiers(ModPrivate | ModStatic)
	if m.Modifiers() != ModPrivate|ModStatic {
		t.Fatalf("SetModifiers must replace the set")
	}
	m.AddModifiers(ModSynthetic)
	if !IsSynthetic(m) {
		t.Fatalf("synthetic modifier must be reported")
	}
}

func TestSyntheticMethodNeverOverrides(t *testing.T) {
	owner := NewType("p", "C", 0, nil)
	base := &original{name: "run", declaring: NewType("p", "Base", 0, nil), ret: voidType}
	m := NewMethod("run", ModPublic, voidType, owner)
	if m.Overrides(base) || m.IsSubsignature(base) {
		t.Fatalf("method without delegate must not override or be a subsignature")
	}
	if CloneMethod(base).Overrides(base) {
		t.Fatalf("clones carry no delegate")
	}
}

func TestDelegatingMethodForwardsQueries(t *testing.T) {
	root := &original{name: "run", declaring: NewType("p", "Root", 0, nil), ret: voidType}
	base := &original{name: "run", declaring: NewType("p", "Base", 0, nil), ret: voidType, overrides: []MethodBinding{root}}
	child := &original{name: "run", declaring: NewType("p", "Child", 0, nil), ret: voidType, overrides: []MethodBinding{base}}

	bridge := NewGeneratedMethod(MethodSpec{
		Delegate:      child,
		Name:          "run__bridge",
		ReturnType:    voidType,
		DeclaringType: child.declaring,
	})
	if !bridge.Overrides(child) {
		t.Fatalf("delegate identity must count as overriding")
	}
	if !bridge.Overrides(base) || !bridge.Overrides(root) {
		t.Fatalf("override relation must be forwarded transitively")
	}
	unrelated := &original{name: "stop", declaring: root.declaring, ret: voidType}
	if bridge.Overrides(unrelated) {
		t.Fatalf("unrelated method must not be overridden")
	}
	if !bridge.IsSubsignature(root) {
		t.Fatalf("subsignature must be forwarded to the delegate")
	}
	if bridge.SourceName() != "run" || bridge.Name() != "run__bridge" {
		t.Fatalf("unexpected names %q / %q", bridge.SourceName(), bridge.Name())
	}
	if !IsGenerated(bridge) || IsGenerated(child) {
		t.Fatalf("IsGenerated must distinguish generated bindings")
	}
}

func TestInsertParameterRejectsBadInput(t *testing.T) {
	m := NewMethod("m", 0, voidType, nil)
	mustViolate(t, func() { m.InsertParameter(2, intType) })
	mustViolate(t, func() { m.AddParameter(nil) })
	mustViolate(t, func() { NewMethod("", 0, voidType, nil) })
}

func TestDefaultConstructor(t *testing.T) {
	owner := NewType("p", "C", 0, nil)
	ctor := NewGeneratedMethod(MethodSpec{Name: "<init>", DeclaringType: owner, Constructor: true})
	if !ctor.IsDefaultConstructor() {
		t.Fatalf("constructor without parameters is the default constructor")
	}
	ctor.AddParameter(intType)
	if ctor.IsDefaultConstructor() {
		t.Fatalf("constructor with parameters is not the default constructor")
	}
	if ctor.Key() != "Lp/C;.<init>(I)V" {
		t.Fatalf("unexpected constructor key %q", ctor.Key())
	}
}
