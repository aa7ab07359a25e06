package tree

import "xlate/internal/binding"

// Literal is a constant written in source. Value holds the source spelling
// (for strings and chars, without quotes).
type Literal struct {
	exprBase
	litKind LiteralKind
	value   string
	typ     binding.TypeBinding
}

func NewLiteral(kind LiteralKind, value string, typ binding.TypeBinding) *Literal {
	return &Literal{litKind: kind, value: value, typ: typ}
}

func (n *Literal) Kind() Kind                           { return KindLiteral }
func (n *Literal) LiteralKind() LiteralKind             { return n.litKind }
func (n *Literal) Value() string                        { return n.value }
func (n *Literal) SetValue(v string)                    { n.value = v }
func (n *Literal) TypeBinding() binding.TypeBinding     { return n.typ }
func (n *Literal) SetTypeBinding(t binding.TypeBinding) { n.typ = t }

func (n *Literal) Accept(v Visitor) {
	v.Visit(n)
	v.EndVisit(n)
}

func (n *Literal) Copy() Node {
	return copied(NewLiteral(n.litKind, n.value, n.typ), n)
}

func (n *Literal) sameAttrs(other Node) bool {
	o := other.(*Literal)
	return n.litKind == o.litKind && n.value == o.value && binding.Same(n.typ, o.typ)
}

// SimpleName refers to a variable, type or method by name.
type SimpleName struct {
	exprBase
	identifier string
	bind       binding.Binding
}

func NewSimpleName(b binding.Binding) *SimpleName {
	n := &SimpleName{bind: b}
	if b != nil {
		n.identifier = b.Name()
	}
	return n
}

func (n *SimpleName) Kind() Kind                         { return KindSimpleName }
func (n *SimpleName) Identifier() string                 { return n.identifier }
func (n *SimpleName) SetIdentifier(id string)            { n.identifier = id }
func (n *SimpleName) Binding() binding.Binding           { return n.bind }
func (n *SimpleName) ReferencedBinding() binding.Binding { return n.bind }

// SetBinding rebinds the name; the identifier follows the binding's name.
func (n *SimpleName) SetBinding(b binding.Binding) {
	n.bind = b
	if b != nil {
		n.identifier = b.Name()
	}
}

// TypeBinding is the variable's type for variable names and the type itself
// for type names.
func (n *SimpleName) TypeBinding() binding.TypeBinding {
	switch b := n.bind.(type) {
	case binding.VariableBinding:
		return b.Type()
	case binding.TypeBinding:
		return b
	default:
		return nil
	}
}

func (n *SimpleName) Accept(v Visitor) {
	v.Visit(n)
	v.EndVisit(n)
}

func (n *SimpleName) Copy() Node {
	c := &SimpleName{identifier: n.identifier, bind: n.bind}
	return copied(c, n)
}

func (n *SimpleName) sameAttrs(other Node) bool {
	o := other.(*SimpleName)
	return n.identifier == o.identifier && binding.Same(n.bind, o.bind)
}

// ThisExpr is the receiver of the enclosing method.
type ThisExpr struct {
	exprBase
	typ binding.TypeBinding
}

func NewThisExpr(typ binding.TypeBinding) *ThisExpr { return &ThisExpr{typ: typ} }

func (n *ThisExpr) Kind() Kind                       { return KindThis }
func (n *ThisExpr) TypeBinding() binding.TypeBinding { return n.typ }

func (n *ThisExpr) Accept(v Visitor) {
	v.Visit(n)
	v.EndVisit(n)
}

func (n *ThisExpr) Copy() Node { return copied(NewThisExpr(n.typ), n) }

func (n *ThisExpr) sameAttrs(other Node) bool {
	return binding.Same(n.typ, other.(*ThisExpr).typ)
}

// ParenthesizedExpr wraps a single expression.
//
// Children: Expression.
type ParenthesizedExpr struct {
	exprBase
	expr ChildLink[Expression]
}

func NewParenthesizedExpr(expr Expression) *ParenthesizedExpr {
	n := &ParenthesizedExpr{}
	n.expr.init(n)
	n.expr.Set(expr)
	return n
}

func (n *ParenthesizedExpr) Kind() Kind                 { return KindParenthesized }
func (n *ParenthesizedExpr) Expression() Expression     { return n.expr.Get() }
func (n *ParenthesizedExpr) SetExpression(e Expression) { n.expr.Set(e) }
func (n *ParenthesizedExpr) ExpressionLink() *ChildLink[Expression] {
	return &n.expr
}

func (n *ParenthesizedExpr) TypeBinding() binding.TypeBinding {
	if e := n.expr.Get(); e != nil {
		return e.TypeBinding()
	}
	return nil
}

func (n *ParenthesizedExpr) Accept(v Visitor) {
	if v.Visit(n) {
		n.expr.Accept(v)
	}
	v.EndVisit(n)
}

func (n *ParenthesizedExpr) Copy() Node {
	c := NewParenthesizedExpr(nil)
	c.expr.CopyFrom(&n.expr)
	return copied(c, n)
}

// PrefixExpr applies a unary operator.
//
// Children: Operand.
type PrefixExpr struct {
	exprBase
	op      PrefixOperator
	operand ChildLink[Expression]
	typ     binding.TypeBinding
}

func NewPrefixExpr(op PrefixOperator, operand Expression, typ binding.TypeBinding) *PrefixExpr {
	n := &PrefixExpr{op: op, typ: typ}
	n.operand.init(n)
	n.operand.Set(operand)
	return n
}

func (n *PrefixExpr) Kind() Kind                       { return KindPrefix }
func (n *PrefixExpr) Operator() PrefixOperator         { return n.op }
func (n *PrefixExpr) Operand() Expression              { return n.operand.Get() }
func (n *PrefixExpr) SetOperand(e Expression)          { n.operand.Set(e) }
func (n *PrefixExpr) TypeBinding() binding.TypeBinding { return n.typ }

func (n *PrefixExpr) Accept(v Visitor) {
	if v.Visit(n) {
		n.operand.Accept(v)
	}
	v.EndVisit(n)
}

func (n *PrefixExpr) Copy() Node {
	c := NewPrefixExpr(n.op, nil, n.typ)
	c.operand.CopyFrom(&n.operand)
	return copied(c, n)
}

func (n *PrefixExpr) sameAttrs(other Node) bool {
	o := other.(*PrefixExpr)
	return n.op == o.op && binding.Same(n.typ, o.typ)
}

// InfixExpr is a binary operation, optionally extended with further operands
// of the same operator (a + b + c).
//
// Children: Left, Right, Extended operands in order.
type InfixExpr struct {
	exprBase
	op       InfixOperator
	left     ChildLink[Expression]
	right    ChildLink[Expression]
	extended ChildList[Expression]
	typ      binding.TypeBinding
}

func NewInfixExpr(left Expression, op InfixOperator, right Expression, typ binding.TypeBinding) *InfixExpr {
	n := &InfixExpr{op: op, typ: typ}
	n.left.init(n)
	n.right.init(n)
	n.extended.init(n)
	n.left.Set(left)
	n.right.Set(right)
	return n
}

func (n *InfixExpr) Kind() Kind                       { return KindInfix }
func (n *InfixExpr) Operator() InfixOperator          { return n.op }
func (n *InfixExpr) SetOperator(op InfixOperator)     { n.op = op }
func (n *InfixExpr) Left() Expression                 { return n.left.Get() }
func (n *InfixExpr) SetLeft(e Expression)             { n.left.Set(e) }
func (n *InfixExpr) Right() Expression                { return n.right.Get() }
func (n *InfixExpr) SetRight(e Expression)            { n.right.Set(e) }
func (n *InfixExpr) Extended() *ChildList[Expression] { return &n.extended }
func (n *InfixExpr) TypeBinding() binding.TypeBinding { return n.typ }

func (n *InfixExpr) Accept(v Visitor) {
	if v.Visit(n) {
		n.left.Accept(v)
		n.right.Accept(v)
		n.extended.Accept(v)
	}
	v.EndVisit(n)
}

func (n *InfixExpr) Copy() Node {
	c := NewInfixExpr(nil, n.op, nil, n.typ)
	c.left.CopyFrom(&n.left)
	c.right.CopyFrom(&n.right)
	c.extended.CopyFrom(&n.extended)
	return copied(c, n)
}

func (n *InfixExpr) sameAttrs(other Node) bool {
	o := other.(*InfixExpr)
	return n.op == o.op && binding.Same(n.typ, o.typ)
}

// Assignment stores RHS into LHS. Its type is the type of LHS.
//
// Children: LHS, RHS.
type Assignment struct {
	exprBase
	op  AssignOperator
	lhs ChildLink[Expression]
	rhs ChildLink[Expression]
}

func NewAssignment(lhs Expression, op AssignOperator, rhs Expression) *Assignment {
	n := &Assignment{op: op}
	n.lhs.init(n)
	n.rhs.init(n)
	n.lhs.Set(lhs)
	n.rhs.Set(rhs)
	return n
}

func (n *Assignment) Kind() Kind               { return KindAssignment }
func (n *Assignment) Operator() AssignOperator { return n.op }
func (n *Assignment) LHS() Expression          { return n.lhs.Get() }
func (n *Assignment) SetLHS(e Expression)      { n.lhs.Set(e) }
func (n *Assignment) RHS() Expression          { return n.rhs.Get() }
func (n *Assignment) SetRHS(e Expression)      { n.rhs.Set(e) }

func (n *Assignment) TypeBinding() binding.TypeBinding {
	if lhs := n.lhs.Get(); lhs != nil {
		return lhs.TypeBinding()
	}
	return nil
}

func (n *Assignment) Accept(v Visitor) {
	if v.Visit(n) {
		n.lhs.Accept(v)
		n.rhs.Accept(v)
	}
	v.EndVisit(n)
}

func (n *Assignment) Copy() Node {
	c := NewAssignment(nil, n.op, nil)
	c.lhs.CopyFrom(&n.lhs)
	c.rhs.CopyFrom(&n.rhs)
	return copied(c, n)
}

func (n *Assignment) sameAttrs(other Node) bool {
	return n.op == other.(*Assignment).op
}

// FieldAccess reads a field of the value of Expression.
//
// Children: Expression.
type FieldAccess struct {
	exprBase
	expr  ChildLink[Expression]
	field binding.VariableBinding
}

func NewFieldAccess(expr Expression, field binding.VariableBinding) *FieldAccess {
	n := &FieldAccess{field: field}
	n.expr.init(n)
	n.expr.Set(expr)
	return n
}

func (n *FieldAccess) Kind() Kind                         { return KindFieldAccess }
func (n *FieldAccess) Expression() Expression             { return n.expr.Get() }
func (n *FieldAccess) SetExpression(e Expression)         { n.expr.Set(e) }
func (n *FieldAccess) Field() binding.VariableBinding     { return n.field }
func (n *FieldAccess) SetField(f binding.VariableBinding) { n.field = f }
func (n *FieldAccess) ReferencedBinding() binding.Binding { return n.field }

func (n *FieldAccess) TypeBinding() binding.TypeBinding {
	if n.field == nil {
		return nil
	}
	return n.field.Type()
}

func (n *FieldAccess) Accept(v Visitor) {
	if v.Visit(n) {
		n.expr.Accept(v)
	}
	v.EndVisit(n)
}

func (n *FieldAccess) Copy() Node {
	c := NewFieldAccess(nil, n.field)
	c.expr.CopyFrom(&n.expr)
	return copied(c, n)
}

func (n *FieldAccess) sameAttrs(other Node) bool {
	return binding.Same(n.field, other.(*FieldAccess).field)
}

// MethodInvocation calls a method, on Receiver when present.
//
// Children: Receiver (optional), Arguments in order.
type MethodInvocation struct {
	exprBase
	receiver ChildLink[Expression]
	args     ChildList[Expression]
	method   binding.MethodBinding
}

func NewMethodInvocation(receiver Expression, method binding.MethodBinding, args ...Expression) *MethodInvocation {
	n := &MethodInvocation{method: method}
	n.receiver.init(n)
	n.args.init(n)
	n.receiver.Set(receiver)
	for _, a := range args {
		n.args.Add(a)
	}
	return n
}

func (n *MethodInvocation) Kind() Kind                         { return KindMethodInvocation }
func (n *MethodInvocation) Receiver() Expression               { return n.receiver.Get() }
func (n *MethodInvocation) SetReceiver(e Expression)           { n.receiver.Set(e) }
func (n *MethodInvocation) Arguments() *ChildList[Expression]  { return &n.args }
func (n *MethodInvocation) Method() binding.MethodBinding      { return n.method }
func (n *MethodInvocation) SetMethod(m binding.MethodBinding)  { n.method = m }
func (n *MethodInvocation) ReferencedBinding() binding.Binding { return n.method }

func (n *MethodInvocation) TypeBinding() binding.TypeBinding {
	if n.method == nil {
		return nil
	}
	return n.method.ReturnType()
}

func (n *MethodInvocation) Accept(v Visitor) {
	if v.Visit(n) {
		n.receiver.Accept(v)
		n.args.Accept(v)
	}
	v.EndVisit(n)
}

func (n *MethodInvocation) Copy() Node {
	c := NewMethodInvocation(nil, n.method)
	c.receiver.CopyFrom(&n.receiver)
	c.args.CopyFrom(&n.args)
	return copied(c, n)
}

func (n *MethodInvocation) sameAttrs(other Node) bool {
	o := other.(*MethodInvocation)
	return n.receiver.IsEmpty() == o.receiver.IsEmpty() && binding.Same(n.method, o.method)
}

// ClassInstanceCreation invokes a constructor of Type.
//
// Children: Arguments in order.
type ClassInstanceCreation struct {
	exprBase
	ctor binding.MethodBinding
	typ  binding.TypeBinding
	args ChildList[Expression]
}

func NewClassInstanceCreation(typ binding.TypeBinding, ctor binding.MethodBinding, args ...Expression) *ClassInstanceCreation {
	n := &ClassInstanceCreation{typ: typ, ctor: ctor}
	n.args.init(n)
	for _, a := range args {
		n.args.Add(a)
	}
	return n
}

func (n *ClassInstanceCreation) Kind() Kind                             { return KindClassInstanceCreation }
func (n *ClassInstanceCreation) Constructor() binding.MethodBinding     { return n.ctor }
func (n *ClassInstanceCreation) SetConstructor(m binding.MethodBinding) { n.ctor = m }
func (n *ClassInstanceCreation) Arguments() *ChildList[Expression]      { return &n.args }
func (n *ClassInstanceCreation) TypeBinding() binding.TypeBinding       { return n.typ }
func (n *ClassInstanceCreation) ReferencedBinding() binding.Binding     { return n.ctor }

func (n *ClassInstanceCreation) Accept(v Visitor) {
	if v.Visit(n) {
		n.args.Accept(v)
	}
	v.EndVisit(n)
}

func (n *ClassInstanceCreation) Copy() Node {
	c := NewClassInstanceCreation(n.typ, n.ctor)
	c.args.CopyFrom(&n.args)
	return copied(c, n)
}

func (n *ClassInstanceCreation) sameAttrs(other Node) bool {
	o := other.(*ClassInstanceCreation)
	return binding.Same(n.typ, o.typ) && binding.Same(n.ctor, o.ctor)
}

// CastExpr converts Expression to a target type.
//
// Children: Expression.
type CastExpr struct {
	exprBase
	typ  binding.TypeBinding
	expr ChildLink[Expression]
}

func NewCastExpr(typ binding.TypeBinding, expr Expression) *CastExpr {
	n := &CastExpr{typ: typ}
	n.expr.init(n)
	n.expr.Set(expr)
	return n
}

func (n *CastExpr) Kind() Kind                       { return KindCast }
func (n *CastExpr) Expression() Expression           { return n.expr.Get() }
func (n *CastExpr) SetExpression(e Expression)       { n.expr.Set(e) }
func (n *CastExpr) TypeBinding() binding.TypeBinding { return n.typ }

func (n *CastExpr) Accept(v Visitor) {
	if v.Visit(n) {
		n.expr.Accept(v)
	}
	v.EndVisit(n)
}

func (n *CastExpr) Copy() Node {
	c := NewCastExpr(n.typ, nil)
	c.expr.CopyFrom(&n.expr)
	return copied(c, n)
}

func (n *CastExpr) sameAttrs(other Node) bool {
	return binding.Same(n.typ, other.(*CastExpr).typ)
}

// ConditionalExpr is cond ? then : else.
//
// Children: Condition, Then, Else.
type ConditionalExpr struct {
	exprBase
	cond ChildLink[Expression]
	then ChildLink[Expression]
	elze ChildLink[Expression]
	typ  binding.TypeBinding
}

func NewConditionalExpr(cond, then, elze Expression, typ binding.TypeBinding) *ConditionalExpr {
	n := &ConditionalExpr{typ: typ}
	n.cond.init(n)
	n.then.init(n)
	n.elze.init(n)
	n.cond.Set(cond)
	n.then.Set(then)
	n.elze.Set(elze)
	return n
}

func (n *ConditionalExpr) Kind() Kind                       { return KindConditional }
func (n *ConditionalExpr) Condition() Expression            { return n.cond.Get() }
func (n *ConditionalExpr) SetCondition(e Expression)        { n.cond.Set(e) }
func (n *ConditionalExpr) Then() Expression                 { return n.then.Get() }
func (n *ConditionalExpr) SetThen(e Expression)             { n.then.Set(e) }
func (n *ConditionalExpr) Else() Expression                 { return n.elze.Get() }
func (n *ConditionalExpr) SetElse(e Expression)             { n.elze.Set(e) }
func (n *ConditionalExpr) TypeBinding() binding.TypeBinding { return n.typ }

func (n *ConditionalExpr) Accept(v Visitor) {
	if v.Visit(n) {
		n.cond.Accept(v)
		n.then.Accept(v)
		n.elze.Accept(v)
	}
	v.EndVisit(n)
}

func (n *ConditionalExpr) Copy() Node {
	c := NewConditionalExpr(nil, nil, nil, n.typ)
	c.cond.CopyFrom(&n.cond)
	c.then.CopyFrom(&n.then)
	c.elze.CopyFrom(&n.elze)
	return copied(c, n)
}

func (n *ConditionalExpr) sameAttrs(other Node) bool {
	return binding.Same(n.typ, other.(*ConditionalExpr).typ)
}
