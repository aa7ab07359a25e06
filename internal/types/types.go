// Package types holds the interned type descriptors shared by every
// translation unit.
//
// Descriptors are registered while the front-end document is loaded. After
// Freeze the interner is read-only and may be queried from any number of
// translation workers at once.
package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// IsValid reports whether the ID refers to an interned type.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBoolean
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindNull
	KindClass
	KindInterface
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindBoolean:
		return "boolean"
	case KindByte:
		return "byte"
	case KindChar:
		return "char"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindNull:
		return "null"
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsPrimitive reports whether the kind is a primitive value type (void included).
func (k Kind) IsPrimitive() bool {
	return k >= KindVoid && k <= KindDouble
}

// IsReference reports whether values of the kind are object references.
func (k Kind) IsReference() bool {
	return k == KindClass || k == KindInterface || k == KindArray || k == KindNull
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind Kind
	Name string // binary name for classes and interfaces ("pkg.Outer$Inner")
	Elem TypeID // element type for arrays
}

// Descriptor helpers ---------------------------------------------------------

// MakeClass describes a class with the given binary name.
func MakeClass(name string) Type {
	return Type{Kind: KindClass, Name: name}
}

// MakeInterface describes an interface with the given binary name.
func MakeInterface(name string) Type {
	return Type{Kind: KindInterface, Name: name}
}

// MakeArray describes an array of elem.
func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}

var primitiveKeys = map[Kind]byte{
	KindVoid:    'V',
	KindBoolean: 'Z',
	KindByte:    'B',
	KindChar:    'C',
	KindShort:   'S',
	KindInt:     'I',
	KindLong:    'J',
	KindFloat:   'F',
	KindDouble:  'D',
	KindNull:    'N',
}

var primitivesByKey = map[byte]Kind{
	'V': KindVoid,
	'Z': KindBoolean,
	'B': KindByte,
	'C': KindChar,
	'S': KindShort,
	'I': KindInt,
	'J': KindLong,
	'F': KindFloat,
	'D': KindDouble,
	'N': KindNull,
}

var primitivesByName = map[string]Kind{
	"void":    KindVoid,
	"boolean": KindBoolean,
	"byte":    KindByte,
	"char":    KindChar,
	"short":   KindShort,
	"int":     KindInt,
	"long":    KindLong,
	"float":   KindFloat,
	"double":  KindDouble,
	"null":    KindNull,
}
