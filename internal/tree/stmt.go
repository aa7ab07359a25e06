package tree

// Block is a braced statement sequence.
//
// Children: Statements in order.
type Block struct {
	stmtBase
	stmts ChildList[Statement]
}

func NewBlock(stmts ...Statement) *Block {
	n := &Block{}
	n.stmts.init(n)
	for _, s := range stmts {
		n.stmts.Add(s)
	}
	return n
}

func (n *Block) Kind() Kind { return KindBlock }

func (n *Block) Statements() *ChildList[Statement] { return &n.stmts }

func (n *Block) Accept(v Visitor) {
	if v.Visit(n) {
		n.stmts.Accept(v)
	}
	v.EndVisit(n)
}

func (n *Block) Copy() Node {
	c := NewBlock()
	c.stmts.CopyFrom(&n.stmts)
	return copied(c, n)
}

// ExpressionStmt evaluates an expression for its effect.
//
// Children: Expression.
type ExpressionStmt struct {
	stmtBase
	expr ChildLink[Expression]
}

func NewExpressionStmt(expr Expression) *ExpressionStmt {
	n := &ExpressionStmt{}
	n.expr.init(n)
	n.expr.Set(expr)
	return n
}

func (n *ExpressionStmt) Kind() Kind { return KindExpressionStmt }

func (n *ExpressionStmt) Expression() Expression { return n.expr.Get() }

func (n *ExpressionStmt) SetExpression(e Expression) { n.expr.Set(e) }

func (n *ExpressionStmt) Accept(v Visitor) {
	if v.Visit(n) {
		n.expr.Accept(v)
	}
	v.EndVisit(n)
}

func (n *ExpressionStmt) Copy() Node {
	c := NewExpressionStmt(nil)
	c.expr.CopyFrom(&n.expr)
	return copied(c, n)
}

// ReturnStmt leaves the enclosing method.
//
// Children: Expression (optional).
type ReturnStmt struct {
	stmtBase
	expr ChildLink[Expression]
}

func NewReturnStmt(expr Expression) *ReturnStmt {
	n := &ReturnStmt{}
	n.expr.init(n)
	n.expr.Set(expr)
	return n
}

func (n *ReturnStmt) Kind() Kind { return KindReturnStmt }

func (n *ReturnStmt) Expression() Expression { return n.expr.Get() }

func (n *ReturnStmt) SetExpression(e Expression) { n.expr.Set(e) }

func (n *ReturnStmt) Accept(v Visitor) {
	if v.Visit(n) {
		n.expr.Accept(v)
	}
	v.EndVisit(n)
}

func (n *ReturnStmt) Copy() Node {
	c := NewReturnStmt(nil)
	c.expr.CopyFrom(&n.expr)
	return copied(c, n)
}

// IfStmt branches on a condition.
//
// Children: Condition, Then, Else (optional).
type IfStmt struct {
	stmtBase
	cond ChildLink[Expression]
	then ChildLink[Statement]
	elze ChildLink[Statement]
}

func NewIfStmt(cond Expression, then, elze Statement) *IfStmt {
	n := &IfStmt{}
	n.cond.init(n)
	n.then.init(n)
	n.elze.init(n)
	n.cond.Set(cond)
	n.then.Set(then)
	n.elze.Set(elze)
	return n
}

func (n *IfStmt) Kind() Kind { return KindIfStmt }

func (n *IfStmt) Condition() Expression { return n.cond.Get() }

func (n *IfStmt) SetCondition(e Expression) { n.cond.Set(e) }

func (n *IfStmt) Then() Statement { return n.then.Get() }

func (n *IfStmt) SetThen(s Statement) { n.then.Set(s) }

func (n *IfStmt) Else() Statement { return n.elze.Get() }

func (n *IfStmt) SetElse(s Statement) { n.elze.Set(s) }

func (n *IfStmt) Accept(v Visitor) {
	if v.Visit(n) {
		n.cond.Accept(v)
		n.then.Accept(v)
		n.elze.Accept(v)
	}
	v.EndVisit(n)
}

func (n *IfStmt) Copy() Node {
	c := NewIfStmt(nil, nil, nil)
	c.cond.CopyFrom(&n.cond)
	c.then.CopyFrom(&n.then)
	c.elze.CopyFrom(&n.elze)
	return copied(c, n)
}

// Children does not say which optional slot a child came from.
func (n *IfStmt) sameAttrs(other Node) bool {
	o := other.(*IfStmt)
	return n.then.IsEmpty() == o.then.IsEmpty() && n.elze.IsEmpty() == o.elze.IsEmpty()
}

// WhileStmt loops while a condition holds.
//
// Children: Condition, Body.
type WhileStmt struct {
	stmtBase
	cond ChildLink[Expression]
	body ChildLink[Statement]
}

func NewWhileStmt(cond Expression, body Statement) *WhileStmt {
	n := &WhileStmt{}
	n.cond.init(n)
	n.body.init(n)
	n.cond.Set(cond)
	n.body.Set(body)
	return n
}

func (n *WhileStmt) Kind() Kind { return KindWhileStmt }

func (n *WhileStmt) Condition() Expression { return n.cond.Get() }

func (n *WhileStmt) SetCondition(e Expression) { n.cond.Set(e) }

func (n *WhileStmt) Body() Statement { return n.body.Get() }

func (n *WhileStmt) SetBody(s Statement) { n.body.Set(s) }

func (n *WhileStmt) Accept(v Visitor) {
	if v.Visit(n) {
		n.cond.Accept(v)
		n.body.Accept(v)
	}
	v.EndVisit(n)
}

func (n *WhileStmt) Copy() Node {
	c := NewWhileStmt(nil, nil)
	c.cond.CopyFrom(&n.cond)
	c.body.CopyFrom(&n.body)
	return copied(c, n)
}

// VariableDeclStmt declares one or more locals.
//
// Children: Fragments in order.
type VariableDeclStmt struct {
	stmtBase
	fragments ChildList[*VariableDeclFragment]
}

func NewVariableDeclStmt(fragments ...*VariableDeclFragment) *VariableDeclStmt {
	n := &VariableDeclStmt{}
	n.fragments.init(n)
	for _, f := range fragments {
		n.fragments.Add(f)
	}
	return n
}

func (n *VariableDeclStmt) Kind() Kind { return KindVariableDeclStmt }

func (n *VariableDeclStmt) Fragments() *ChildList[*VariableDeclFragment] { return &n.fragments }

func (n *VariableDeclStmt) Accept(v Visitor) {
	if v.Visit(n) {
		n.fragments.Accept(v)
	}
	v.EndVisit(n)
}

func (n *VariableDeclStmt) Copy() Node {
	c := NewVariableDeclStmt()
	c.fragments.CopyFrom(&n.fragments)
	return copied(c, n)
}
