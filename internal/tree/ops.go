package tree

// LiteralKind enumerates literal value kinds.
type LiteralKind uint8

const (
	LiteralNumber LiteralKind = iota
	LiteralBoolean
	LiteralChar
	LiteralString
	LiteralNull
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralNumber:
		return "number"
	case LiteralBoolean:
		return "boolean"
	case LiteralChar:
		return "char"
	case LiteralString:
		return "string"
	case LiteralNull:
		return "null"
	default:
		return "unknown"
	}
}

// PrefixOperator is the operator of a PrefixExpr, spelled as in source.
type PrefixOperator string

const (
	PrefixPlus       PrefixOperator = "+"
	PrefixMinus      PrefixOperator = "-"
	PrefixNot        PrefixOperator = "!"
	PrefixComplement PrefixOperator = "~"
	PrefixIncrement  PrefixOperator = "++"
	PrefixDecrement  PrefixOperator = "--"
)

// InfixOperator is the operator of an InfixExpr, spelled as in source.
type InfixOperator string

const (
	InfixTimes              InfixOperator = "*"
	InfixDivide             InfixOperator = "/"
	InfixRemainder          InfixOperator = "%"
	InfixPlus               InfixOperator = "+"
	InfixMinus              InfixOperator = "-"
	InfixLeftShift          InfixOperator = "<<"
	InfixRightShiftSigned   InfixOperator = ">>"
	InfixRightShiftUnsigned InfixOperator = ">>>"
	InfixLess               InfixOperator = "<"
	InfixGreater            InfixOperator = ">"
	InfixLessEquals         InfixOperator = "<="
	InfixGreaterEquals      InfixOperator = ">="
	InfixEquals             InfixOperator = "=="
	InfixNotEquals          InfixOperator = "!="
	InfixAnd                InfixOperator = "&"
	InfixXor                InfixOperator = "^"
	InfixOr                 InfixOperator = "|"
	InfixConditionalAnd     InfixOperator = "&&"
	InfixConditionalOr      InfixOperator = "||"
)

// AssignOperator is the operator of an Assignment, spelled as in source.
type AssignOperator string

const (
	Assign                   AssignOperator = "="
	AssignPlus               AssignOperator = "+="
	AssignMinus              AssignOperator = "-="
	AssignTimes              AssignOperator = "*="
	AssignDivide             AssignOperator = "/="
	AssignRemainder          AssignOperator = "%="
	AssignAnd                AssignOperator = "&="
	AssignOr                 AssignOperator = "|="
	AssignXor                AssignOperator = "^="
	AssignLeftShift          AssignOperator = "<<="
	AssignRightShiftSigned   AssignOperator = ">>="
	AssignRightShiftUnsigned AssignOperator = ">>>="
)

var prefixOperators = map[PrefixOperator]struct{}{
	PrefixPlus: {}, PrefixMinus: {}, PrefixNot: {}, PrefixComplement: {},
	PrefixIncrement: {}, PrefixDecrement: {},
}

var infixOperators = map[InfixOperator]struct{}{
	InfixTimes: {}, InfixDivide: {}, InfixRemainder: {}, InfixPlus: {}, InfixMinus: {},
	InfixLeftShift: {}, InfixRightShiftSigned: {}, InfixRightShiftUnsigned: {},
	InfixLess: {}, InfixGreater: {}, InfixLessEquals: {}, InfixGreaterEquals: {},
	InfixEquals: {}, InfixNotEquals: {}, InfixAnd: {}, InfixXor: {}, InfixOr: {},
	InfixConditionalAnd: {}, InfixConditionalOr: {},
}

var assignOperators = map[AssignOperator]struct{}{
	Assign: {}, AssignPlus: {}, AssignMinus: {}, AssignTimes: {}, AssignDivide: {},
	AssignRemainder: {}, AssignAnd: {}, AssignOr: {}, AssignXor: {},
	AssignLeftShift: {}, AssignRightShiftSigned: {}, AssignRightShiftUnsigned: {},
}

// Valid reports whether op is a known prefix operator.
func (op PrefixOperator) Valid() bool { _, ok := prefixOperators[op]; return ok }

// Valid reports whether op is a known infix operator.
func (op InfixOperator) Valid() bool { _, ok := infixOperators[op]; return ok }

// Valid reports whether op is a known assignment operator.
func (op AssignOperator) Valid() bool { _, ok := assignOperators[op]; return ok }
