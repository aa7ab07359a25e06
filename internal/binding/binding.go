package binding

import "reflect"

// Binding is the contract shared by every named entity.
type Binding interface {
	Kind() Kind
	Name() string
	Modifiers() Modifiers
	// Key returns the stable identity string of the entity.
	Key() string
}

// TypeBinding describes a class, interface, array or primitive type.
type TypeBinding interface {
	Binding
	QualifiedName() string
	// DeclaringType is the enclosing type of a nested type, nil otherwise.
	DeclaringType() TypeBinding
	Superclass() TypeBinding
	Interfaces() []TypeBinding
	IsPrimitive() bool
	IsInterface() bool
}

// VariableBinding describes a field, parameter or local variable.
type VariableBinding interface {
	Binding
	Type() TypeBinding
	// DeclaringType is set for fields.
	DeclaringType() TypeBinding
	// DeclaringMethod is set for parameters and locals.
	DeclaringMethod() MethodBinding
	IsField() bool
	IsParameter() bool
	// ConstantValue is nil when the variable has no compile-time value.
	ConstantValue() any
}

// MethodBinding describes a method or constructor.
type MethodBinding interface {
	Binding
	DeclaringType() TypeBinding
	ReturnType() TypeBinding
	// ParameterTypes returns a copy of the ordered parameter types.
	ParameterTypes() []TypeBinding
	IsConstructor() bool
	IsVarargs() bool
	Overrides(other MethodBinding) bool
	IsSubsignature(other MethodBinding) bool
	// Declaration returns the generic declaration this method was
	// instantiated from, or the method itself.
	Declaration() MethodBinding
	ExceptionTypes() []TypeBinding
}

// generated is implemented by bindings created during translation.
type generated interface {
	Delegate() Binding
}

// IsGenerated reports whether b was created by a translation pass rather than
// supplied by the front end.
func IsGenerated(b Binding) bool {
	_, ok := b.(generated)
	return ok
}

// IsSynthetic reports whether b carries the synthetic modifier.
func IsSynthetic(b Binding) bool {
	return b != nil && b.Modifiers().Has(ModSynthetic)
}

// Same reports whether a and b describe the same entity, comparing keys.
// Bindings whose key cannot be computed yet are compared by identity.
func Same(a, b Binding) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if identical(a, b) {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	ka, okA := KeyOf(a)
	kb, okB := KeyOf(b)
	return okA && okB && ka == kb
}

// identical compares a and b by identity. Bindings of a non-comparable
// dynamic type are never identical instead of panicking in ==.
func identical(a, b Binding) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// KeyOf returns b's key, or false when the key cannot be computed yet
// because an invariant such as the declaring type is still unmet.
func KeyOf(b Binding) (key string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isViolation := r.(*InvariantViolation); !isViolation {
				panic(r)
			}
			key, ok = "", false
		}
	}()
	return b.Key(), true
}
