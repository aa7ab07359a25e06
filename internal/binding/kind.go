package binding

import "fmt"

// Kind classifies the entity a binding describes.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindType
	KindVariable
	KindMethod
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindVariable:
		return "variable"
	case KindMethod:
		return "method"
	case KindInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}
