package pass

import (
	"xlate/internal/binding"
	"xlate/internal/tree"
)

// Canonicalize makes every node that carries a generated binding point at
// the unit's single binding for that key, recording it in u.Table. Bindings
// from the front end are already unique and are left alone, as are
// generated bindings whose key cannot be computed yet.
func Canonicalize() Pass {
	return Func("canonicalize", func(u *Unit) error {
		tree.Inspect(u.Root, func(n tree.Node) bool {
			canonicalize(u.Table, n)
			return true
		})
		return nil
	})
}

func canonicalize(t *binding.Table, n tree.Node) {
	switch n := n.(type) {
	case *tree.SimpleName:
		if b, ok := canonical(t, n.Binding()); ok {
			n.SetBinding(b)
		}
	case *tree.FieldAccess:
		if v, ok := canonical(t, n.Field()); ok {
			n.SetField(v)
		}
	case *tree.MethodInvocation:
		if m, ok := canonical(t, n.Method()); ok {
			n.SetMethod(m)
		}
	case *tree.ClassInstanceCreation:
		if m, ok := canonical(t, n.Constructor()); ok {
			n.SetConstructor(m)
		}
	case *tree.MethodDecl:
		if m, ok := canonical(t, n.Method()); ok {
			n.SetMethod(m)
		}
	case *tree.VariableDeclFragment:
		if v, ok := canonical(t, n.Variable()); ok {
			n.SetVariable(v)
		}
	case *tree.SingleVariableDecl:
		if v, ok := canonical(t, n.Variable()); ok {
			n.SetVariable(v)
		}
	case *tree.TypeDecl:
		if ty, ok := canonical(t, n.Type()); ok {
			n.SetType(ty)
		}
	}
}

// canonical returns the table's binding for b's key when b is generated and
// keyed. A stored binding of another Go type under the same key keeps b.
func canonical[B binding.Binding](t *binding.Table, b B) (B, bool) {
	var zero B
	if any(b) == nil || !binding.IsGenerated(b) {
		return zero, false
	}
	if _, ok := binding.KeyOf(b); !ok {
		return zero, false
	}
	stored, _ := t.Add(b)
	typed, ok := stored.(B)
	if !ok {
		return zero, false
	}
	return typed, true
}
