package binding

import (
	"testing"
)

type constVar struct {
	GeneratedVariable
	value any
}

func (c *constVar) ConstantValue() any { return c.value }

func TestFieldKeysAndRetargeting(t *testing.T) {
	owner := NewType("com.example", "Box", ModPublic, nil)
	f := NewField("count", ModPrivate, intType, owner)
	if got := f.Key(); got != "Lcom/example/Box;.count)I" {
		t.Fatalf("unexpected field key %q", got)
	}
	if !f.IsField() || f.IsParameter() {
		t.Fatalf("field flags are wrong")
	}
	if f.ConstantValue() != nil {
		t.Fatalf("standalone variables have no constant value")
	}

	orphan := NewField("x", 0, intType, nil)
	mustViolate(t, func() { _ = orphan.Key() })
	orphan.SetDeclaringType(owner)
	if orphan.Key() != "Lcom/example/Box;.x)I" {
		t.Fatalf("unexpected key after retargeting: %q", orphan.Key())
	}
}

func TestParameterKeysFollowMethod(t *testing.T) {
	owner := NewType("p", "C", 0, nil)
	m := NewMethod("apply", 0, voidType, owner)
	self := NewParameter("self", owner, m)
	m.InsertParameter(0, owner)
	if got := self.Key(); got != "Lp/C;.apply(Lp/C;)V#self" {
		t.Fatalf("unexpected parameter key %q", got)
	}
	if !self.IsParameter() || self.IsField() {
		t.Fatalf("parameter flags are wrong")
	}
	mustViolate(t, func() { _ = NewLocal("tmp", intType, nil).Key() })
}

func TestRenameVariableKeepsConstantFromDelegate(t *testing.T) {
	owner := NewType("p", "C", 0, nil)
	src := &constVar{value: int64(42)}
	src.GeneratedVariable = *NewField("ANSWER", ModPublic|ModStatic|ModFinal, intType, owner)

	renamed := RenameVariable("answer_", src)
	if renamed.ConstantValue() != int64(42) {
		t.Fatalf("constant value must be forwarded to the delegate, got %v", renamed.ConstantValue())
	}
	if renamed.Key() == src.Key() {
		t.Fatalf("renamed field must have a distinct key")
	}
	if renamed.Modifiers() != src.Modifiers() {
		t.Fatalf("rename must keep modifiers")
	}
	renamed.AddModifiers(ModSynthetic)
	renamed.RemoveModifiers(ModSynthetic)
	if renamed.Modifiers() != src.Modifiers() {
		t.Fatalf("add/remove must restore modifiers")
	}
}

func TestGeneratedTypeKeys(t *testing.T) {
	outer := NewType("com.example", "Outer", ModPublic, nil)
	inner := NewNestedType(outer, "Helper", ModStatic, nil)
	if got := inner.Key(); got != "Lcom/example/Outer$Helper;" {
		t.Fatalf("unexpected nested key %q", got)
	}
	if inner.QualifiedName() != "com.example.Outer.Helper" {
		t.Fatalf("unexpected qualified name %q", inner.QualifiedName())
	}
	if inner.Package() != "com.example" {
		t.Fatalf("nested type must report the outer package, got %q", inner.Package())
	}

	inner.SetDeclaringType(nil)
	if got := inner.Key(); got != "Lcom/example/Helper;" {
		t.Fatalf("hoisted type must become top-level in the outer package, got %q", got)
	}

	iface := NewInterfaceType("", "Callback", ModPublic)
	if !iface.IsInterface() || !iface.Modifiers().Has(ModAbstract) {
		t.Fatalf("interface flags are wrong")
	}
	if iface.Key() != "LCallback;" {
		t.Fatalf("unexpected default-package key %q", iface.Key())
	}
}

func TestRenameTypeKeepsShape(t *testing.T) {
	base := NewType("p", "Base", 0, nil)
	runnable := NewInterfaceType("java.lang", "Runnable", ModPublic)
	outer := NewType("p.q", "Outer", 0, nil)
	src := NewNestedType(outer, "Task", ModPrivate, base)
	src.AddInterface(runnable)

	renamed := RenameType("Task_", src)
	if renamed.Key() != "Lp/q/Outer$Task_;" {
		t.Fatalf("unexpected key %q", renamed.Key())
	}
	if renamed.Superclass() != TypeBinding(base) || len(renamed.Interfaces()) != 1 {
		t.Fatalf("rename must keep supertypes")
	}
	if renamed.Delegate() != Binding(src) {
		t.Fatalf("rename must keep the source as delegate")
	}
}

func TestTableDeduplicatesByKey(t *testing.T) {
	owner := NewType("p", "C", 0, nil)
	table := NewTable()

	first := NewMethod("get", ModPublic, intType, owner)
	second := NewMethod("get", ModPublic|ModSynthetic, intType, NewType("p", "C", 0, nil))

	if got := Intern(table, first); got != first {
		t.Fatalf("first insert must return the inserted binding")
	}
	if got := Intern(table, second); got != first {
		t.Fatalf("equal keys must resolve to the first binding")
	}
	if table.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", table.Len())
	}

	field := NewField("get", 0, intType, owner)
	if _, added := table.Add(field); !added {
		t.Fatalf("a field with the same name has a different key")
	}
	keys := table.Keys()
	if len(keys) != 2 || keys[0] != first.Key() {
		t.Fatalf("keys must be kept in insertion order: %v", keys)
	}
	if b, ok := table.Lookup(field.Key()); !ok || b != Binding(field) {
		t.Fatalf("lookup by key failed")
	}
}

func TestSameComparesKeys(t *testing.T) {
	a := NewMethod("f", 0, voidType, NewType("p", "C", 0, nil))
	b := NewMethod("f", 0, voidType, NewType("p", "C", 0, nil))
	if !Same(a, b) {
		t.Fatalf("bindings with equal keys describe the same entity")
	}
	orphanA := NewMethod("f", 0, voidType, nil)
	orphanB := NewMethod("f", 0, voidType, nil)
	if Same(orphanA, orphanB) {
		t.Fatalf("bindings without keys compare by identity")
	}
	if !Same(orphanA, orphanA) || !Same(nil, nil) || Same(a, nil) {
		t.Fatalf("identity and nil handling are wrong")
	}
}

func TestModifierStringsAndParsing(t *testing.T) {
	mods, err := ParseModifiers([]string{"public", "STATIC", "final"})
	if err != nil {
		t.Fatalf("ParseModifiers: %v", err)
	}
	if mods != ModPublic|ModStatic|ModFinal {
		t.Fatalf("unexpected modifiers %s", mods)
	}
	if mods.String() != "public static final" {
		t.Fatalf("unexpected rendering %q", mods.String())
	}
	if _, err := ParseModifiers([]string{"sealed"}); err == nil {
		t.Fatalf("unknown modifiers must be rejected")
	}
	if Modifiers(0).Strings() != nil {
		t.Fatalf("empty set renders no labels")
	}
}
