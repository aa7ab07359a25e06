package binding

import (
	"slices"
	"strings"
)

// MethodSpec lists everything a generated method can be built from.
type MethodSpec struct {
	// Delegate is the original method the new binding stands for, if any.
	Delegate      MethodBinding
	Name          string
	Modifiers     Modifiers
	ReturnType    TypeBinding
	Declaration   MethodBinding
	DeclaringType TypeBinding
	Constructor   bool
	Varargs       bool
}

// GeneratedMethod is a method binding created during translation.
//
// Its declaring type, modifiers and parameter list stay mutable so a pass can
// derive a method from an existing one and then adjust it. Queries about the
// original semantic model (overriding, sub-signatures) are forwarded to the
// delegate and answer false without one.
type GeneratedMethod struct {
	delegate    MethodBinding
	name        string
	modifiers   Modifiers
	params      []TypeBinding
	returnType  TypeBinding
	declaration MethodBinding
	declaring   TypeBinding
	constructor bool
	varargs     bool
}

// NewGeneratedMethod builds a method from spec. The parameter list starts
// empty.
func NewGeneratedMethod(spec MethodSpec) *GeneratedMethod {
	if spec.Name == "" {
		violate("NewGeneratedMethod", "", "name is required")
	}
	return &GeneratedMethod{
		delegate:    spec.Delegate,
		name:        spec.Name,
		modifiers:   spec.Modifiers,
		returnType:  spec.ReturnType,
		declaration: spec.Declaration,
		declaring:   spec.DeclaringType,
		constructor: spec.Constructor,
		varargs:     spec.Varargs,
	}
}

// NewMethod creates a standalone method: no delegate, no parameters, neither
// constructor nor varargs.
func NewMethod(name string, mods Modifiers, returnType, declaring TypeBinding) *GeneratedMethod {
	return NewGeneratedMethod(MethodSpec{
		Name:          name,
		Modifiers:     mods,
		ReturnType:    returnType,
		DeclaringType: declaring,
	})
}

// CloneMethod copies m's signature into a new method whose parameter list
// can be extended independently of m.
func CloneMethod(m MethodBinding) *GeneratedMethod {
	if m == nil {
		violate("CloneMethod", "", "source method is required")
	}
	return RenameMethod(m.Name(), m)
}

// RenameMethod is CloneMethod with a different name, for constructs that
// surface under another name in the target while keeping the overload
// shape of the original.
func RenameMethod(name string, m MethodBinding) *GeneratedMethod {
	if m == nil {
		violate("RenameMethod", name, "source method is required")
	}
	gm := NewGeneratedMethod(MethodSpec{
		Name:          name,
		Modifiers:     m.Modifiers(),
		ReturnType:    m.ReturnType(),
		DeclaringType: m.DeclaringType(),
		Constructor:   m.IsConstructor(),
		Varargs:       m.IsVarargs(),
	})
	gm.AddParameters(m)
	return gm
}

func (m *GeneratedMethod) Kind() Kind { return KindMethod }

func (m *GeneratedMethod) Name() string { return m.name }

// SourceName is the name the entity had in the input program: the delegate's
// name when there is one.
func (m *GeneratedMethod) SourceName() string {
	if m.delegate != nil {
		return m.delegate.Name()
	}
	return m.name
}

// Delegate returns the original binding, or nil.
func (m *GeneratedMethod) Delegate() Binding {
	if m.delegate == nil {
		return nil
	}
	return m.delegate
}

func (m *GeneratedMethod) Modifiers() Modifiers { return m.modifiers }

func (m *GeneratedMethod) SetModifiers(mods Modifiers) { m.modifiers = mods }

func (m *GeneratedMethod) AddModifiers(mods Modifiers) { m.modifiers |= mods }

func (m *GeneratedMethod) RemoveModifiers(mods Modifiers) { m.modifiers &^= mods }

// Key panics with an *InvariantViolation while the declaring type is unset.
func (m *GeneratedMethod) Key() string {
	return MethodKey(m.declaring, m.name, m.params, m.returnType)
}

func (m *GeneratedMethod) IsConstructor() bool { return m.constructor }

// IsDefaultConstructor reports a constructor without parameters.
func (m *GeneratedMethod) IsDefaultConstructor() bool {
	return m.constructor && len(m.params) == 0
}

func (m *GeneratedMethod) IsVarargs() bool { return m.varargs }

func (m *GeneratedMethod) DeclaringType() TypeBinding { return m.declaring }

// SetDeclaringType retargets the method once its owner is known.
func (m *GeneratedMethod) SetDeclaringType(t TypeBinding) { m.declaring = t }

func (m *GeneratedMethod) ReturnType() TypeBinding { return m.returnType }

func (m *GeneratedMethod) ParameterTypes() []TypeBinding {
	return slices.Clone(m.params)
}

// NumParameters returns the current parameter count.
func (m *GeneratedMethod) NumParameters() int { return len(m.params) }

// AddParameter appends a parameter type.
func (m *GeneratedMethod) AddParameter(t TypeBinding) {
	if t == nil {
		violate("AddParameter", m.name, "parameter type is required")
	}
	m.params = append(m.params, t)
}

// InsertParameter inserts a parameter type at index, shifting later ones.
func (m *GeneratedMethod) InsertParameter(index int, t TypeBinding) {
	if t == nil {
		violate("InsertParameter", m.name, "parameter type is required")
	}
	if index < 0 || index > len(m.params) {
		violate("InsertParameter", m.name, "index %d out of range [0,%d]", index, len(m.params))
	}
	m.params = slices.Insert(m.params, index, t)
}

// AddParameters appends all of other's parameter types.
func (m *GeneratedMethod) AddParameters(other MethodBinding) {
	m.params = append(m.params, other.ParameterTypes()...)
}

// Overrides is true when the delegate is other or overrides it. Without a
// delegate it is always false.
func (m *GeneratedMethod) Overrides(other MethodBinding) bool {
	if m.delegate == nil || other == nil {
		return false
	}
	return identical(m.delegate, other) || m.delegate.Overrides(other)
}

func (m *GeneratedMethod) IsSubsignature(other MethodBinding) bool {
	return m.delegate != nil && m.delegate.IsSubsignature(other)
}

func (m *GeneratedMethod) Declaration() MethodBinding {
	if m.declaration != nil {
		return m.declaration
	}
	return m
}

// ExceptionTypes is always empty: the target model has no checked exceptions.
func (m *GeneratedMethod) ExceptionTypes() []TypeBinding { return nil }

// TypeParameters is always empty: the target model has no generics.
func (m *GeneratedMethod) TypeParameters() []TypeBinding { return nil }

func (m *GeneratedMethod) IsGeneric() bool { return false }

func (m *GeneratedMethod) IsParameterized() bool { return false }

func (m *GeneratedMethod) IsRaw() bool { return false }

func (m *GeneratedMethod) IsAnnotationMember() bool { return false }

// DefaultValue is nil: generated methods are never annotation members.
func (m *GeneratedMethod) DefaultValue() any { return nil }

func (m *GeneratedMethod) String() string {
	var sb strings.Builder
	if mods := m.modifiers.String(); mods != "" {
		sb.WriteString(mods)
		sb.WriteByte(' ')
	}
	if m.returnType != nil {
		sb.WriteString(m.returnType.Name())
	} else {
		sb.WriteString("<no type>")
	}
	sb.WriteByte(' ')
	sb.WriteString(m.name)
	sb.WriteByte('(')
	for i, p := range m.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name())
	}
	sb.WriteByte(')')
	return sb.String()
}
