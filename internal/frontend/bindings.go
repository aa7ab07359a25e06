package frontend

import (
	"fmt"
	"slices"
	"strings"

	"xlate/internal/binding"
	"xlate/internal/types"
)

// DeclaredType is an original type binding backed by an interned descriptor.
type DeclaredType struct {
	id         types.TypeID
	desc       types.Type
	key        string
	name       string
	qualified  string
	modifiers  binding.Modifiers
	outer      *DeclaredType
	elem       *DeclaredType
	superclass *DeclaredType
	interfaces []binding.TypeBinding
}

func (t *DeclaredType) Kind() binding.Kind { return binding.KindType }

func (t *DeclaredType) Name() string { return t.name }

func (t *DeclaredType) Modifiers() binding.Modifiers { return t.modifiers }

func (t *DeclaredType) Key() string { return t.key }

func (t *DeclaredType) QualifiedName() string { return t.qualified }

func (t *DeclaredType) DeclaringType() binding.TypeBinding {
	if t.outer == nil {
		return nil
	}
	return t.outer
}

func (t *DeclaredType) Superclass() binding.TypeBinding {
	if t.superclass == nil {
		return nil
	}
	return t.superclass
}

func (t *DeclaredType) Interfaces() []binding.TypeBinding { return slices.Clone(t.interfaces) }

func (t *DeclaredType) IsPrimitive() bool { return t.desc.Kind.IsPrimitive() }

func (t *DeclaredType) IsInterface() bool { return t.desc.Kind == types.KindInterface }

func (t *DeclaredType) IsArray() bool { return t.desc.Kind == types.KindArray }

// ID returns the interned descriptor id.
func (t *DeclaredType) ID() types.TypeID { return t.id }

// Elem returns the element type of an array, nil otherwise.
func (t *DeclaredType) Elem() *DeclaredType { return t.elem }

func (t *DeclaredType) String() string { return t.qualified }

// IsSubtypeOf reports whether t is other or inherits from it.
func (t *DeclaredType) IsSubtypeOf(other binding.TypeBinding) bool {
	seen := make(map[*DeclaredType]bool)
	var walk func(*DeclaredType) bool
	walk = func(c *DeclaredType) bool {
		if c == nil || seen[c] {
			return false
		}
		seen[c] = true
		if binding.Same(c, other) {
			return true
		}
		if walk(c.superclass) {
			return true
		}
		for _, i := range c.interfaces {
			if walk(i.(*DeclaredType)) {
				return true
			}
		}
		return false
	}
	return walk(t)
}

// DeclaredMethod is an original method binding. Overridden methods are
// resolved transitively at load time.
type DeclaredMethod struct {
	id          string
	name        string
	modifiers   binding.Modifiers
	declaring   *DeclaredType
	params      []binding.TypeBinding
	returnType  binding.TypeBinding
	throws      []binding.TypeBinding
	constructor bool
	varargs     bool
	direct      []*DeclaredMethod
	overridden  map[*DeclaredMethod]struct{}
	key         string
}

func (m *DeclaredMethod) Kind() binding.Kind { return binding.KindMethod }

// ID returns the document id of the method.
func (m *DeclaredMethod) ID() string { return m.id }

func (m *DeclaredMethod) Name() string { return m.name }

func (m *DeclaredMethod) Modifiers() binding.Modifiers { return m.modifiers }

func (m *DeclaredMethod) Key() string { return m.key }

func (m *DeclaredMethod) DeclaringType() binding.TypeBinding { return m.declaring }

func (m *DeclaredMethod) ReturnType() binding.TypeBinding { return m.returnType }

func (m *DeclaredMethod) ParameterTypes() []binding.TypeBinding { return slices.Clone(m.params) }

func (m *DeclaredMethod) IsConstructor() bool { return m.constructor }

func (m *DeclaredMethod) IsVarargs() bool { return m.varargs }

func (m *DeclaredMethod) Declaration() binding.MethodBinding { return m }

func (m *DeclaredMethod) ExceptionTypes() []binding.TypeBinding { return slices.Clone(m.throws) }

// Overrides reports whether m overrides other, directly or through a chain
// of overrides.
func (m *DeclaredMethod) Overrides(other binding.MethodBinding) bool {
	if other == nil {
		return false
	}
	if dm, ok := other.(*DeclaredMethod); ok {
		_, found := m.overridden[dm]
		return found
	}
	key, ok := binding.KeyOf(other)
	if !ok {
		return false
	}
	for o := range m.overridden {
		if o.key == key {
			return true
		}
	}
	return false
}

// IsSubsignature reports whether m has other's name and parameter types.
func (m *DeclaredMethod) IsSubsignature(other binding.MethodBinding) bool {
	if other == nil {
		return false
	}
	return binding.NormalizeName(m.name) == binding.NormalizeName(other.Name()) &&
		binding.SameParameters(m, other)
}

func (m *DeclaredMethod) String() string {
	var sb strings.Builder
	if mods := m.modifiers.String(); mods != "" {
		sb.WriteString(mods)
		sb.WriteByte(' ')
	}
	if !m.constructor {
		sb.WriteString(typeName(m.returnType))
		sb.WriteByte(' ')
	}
	sb.WriteString(m.name)
	sb.WriteByte('(')
	for i, p := range m.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(typeName(p))
	}
	sb.WriteByte(')')
	return sb.String()
}

// DeclaredVariable is an original field, parameter or local binding.
type DeclaredVariable struct {
	id        string
	kind      string
	name      string
	modifiers binding.Modifiers
	typ       binding.TypeBinding
	declaring *DeclaredType
	method    *DeclaredMethod
	constant  any
	key       string
}

func (v *DeclaredVariable) Kind() binding.Kind { return binding.KindVariable }

// ID returns the document id of the variable.
func (v *DeclaredVariable) ID() string { return v.id }

func (v *DeclaredVariable) Name() string { return v.name }

func (v *DeclaredVariable) Modifiers() binding.Modifiers { return v.modifiers }

func (v *DeclaredVariable) Key() string { return v.key }

func (v *DeclaredVariable) Type() binding.TypeBinding { return v.typ }

func (v *DeclaredVariable) DeclaringType() binding.TypeBinding {
	if v.declaring == nil {
		return nil
	}
	return v.declaring
}

func (v *DeclaredVariable) DeclaringMethod() binding.MethodBinding {
	if v.method == nil {
		return nil
	}
	return v.method
}

func (v *DeclaredVariable) IsField() bool { return v.kind == VarField }

func (v *DeclaredVariable) IsParameter() bool { return v.kind == VarParam }

func (v *DeclaredVariable) ConstantValue() any { return v.constant }

func (v *DeclaredVariable) String() string {
	return fmt.Sprintf("%s %s", typeName(v.typ), v.name)
}

func typeName(t binding.TypeBinding) string {
	if t == nil {
		return "void"
	}
	return t.QualifiedName()
}
