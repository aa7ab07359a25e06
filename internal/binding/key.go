package binding

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// voidKey stands in for an absent result type.
const voidKey = "V"

// NormalizeName returns the NFC form used when a name takes part in a key.
// Front ends may hand over identifiers in decomposed form; keys must not
// depend on that.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}

// TypeKey returns t's key, or voidKey when t is nil.
func TypeKey(t TypeBinding) string {
	if t == nil {
		return voidKey
	}
	return t.Key()
}

// MethodKey composes the key of a method: declaring type key, '.', name,
// parameter keys in parentheses, result key.
//
//	Lcom/example/Foo;.bar(ILjava/lang/String;)V
func MethodKey(declaring TypeBinding, name string, params []TypeBinding, result TypeBinding) string {
	if declaring == nil {
		violate("Key", name, "missing declaring type")
	}
	var sb strings.Builder
	sb.WriteString(declaring.Key())
	sb.WriteByte('.')
	sb.WriteString(NormalizeName(name))
	sb.WriteByte('(')
	for _, p := range params {
		sb.WriteString(TypeKey(p))
	}
	sb.WriteByte(')')
	sb.WriteString(TypeKey(result))
	return sb.String()
}

// FieldKey composes the key of a field: declaring type key, '.', name, ')',
// field type key.
func FieldKey(declaring TypeBinding, name string, typ TypeBinding) string {
	if declaring == nil {
		violate("Key", name, "missing declaring type")
	}
	return declaring.Key() + "." + NormalizeName(name) + ")" + TypeKey(typ)
}

// LocalKey composes the key of a parameter or local: declaring method key,
// '#', name.
func LocalKey(method MethodBinding, name string) string {
	if method == nil {
		violate("Key", name, "missing declaring method")
	}
	return method.Key() + "#" + NormalizeName(name)
}

// NestedTypeKey composes the key of a type declared inside outer.
func NestedTypeKey(outer TypeBinding, name string) string {
	outerKey := strings.TrimSuffix(outer.Key(), ";")
	return outerKey + "$" + NormalizeName(name) + ";"
}

// TopLevelTypeKey composes the key of a type declared in pkg.
func TopLevelTypeKey(pkg, name string) string {
	var sb strings.Builder
	sb.WriteByte('L')
	if pkg != "" {
		sb.WriteString(strings.ReplaceAll(pkg, ".", "/"))
		sb.WriteByte('/')
	}
	sb.WriteString(NormalizeName(name))
	sb.WriteByte(';')
	return sb.String()
}

// SameParameters reports whether a and b take the same parameter types in
// the same order.
func SameParameters(a, b MethodBinding) bool {
	pa, pb := a.ParameterTypes(), b.ParameterTypes()
	if len(pa) != len(pb) {
		return false
	}
	for i := range pa {
		if TypeKey(pa[i]) != TypeKey(pb[i]) {
			return false
		}
	}
	return true
}
