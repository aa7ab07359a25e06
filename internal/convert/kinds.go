package convert

import (
	"fmt"
	"sync"

	"xlate/internal/binding"
	"xlate/internal/frontend"
	"xlate/internal/tree"
)

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns a fresh copy of the registry covering every node kind the
// front end emits.
func Default() *Registry {
	defaultOnce.Do(func() {
		r := NewRegistry()
		r.Register("CompilationUnit", compilationUnit)
		r.Register("TypeDeclaration", typeDeclaration)
		r.Register("FieldDeclaration", fieldDeclaration)
		r.Register("MethodDeclaration", methodDeclaration)
		r.Register("SingleVariableDeclaration", singleVariableDeclaration)
		r.Register("VariableDeclarationFragment", variableDeclarationFragment)
		r.Register("VariableDeclarationStatement", variableDeclarationStatement)
		r.Register("Block", block)
		r.Register("ExpressionStatement", expressionStatement)
		r.Register("ReturnStatement", returnStatement)
		r.Register("IfStatement", ifStatement)
		r.Register("WhileStatement", whileStatement)
		r.Register("NumberLiteral", literal(tree.LiteralNumber))
		r.Register("BooleanLiteral", literal(tree.LiteralBoolean))
		r.Register("CharacterLiteral", literal(tree.LiteralChar))
		r.Register("StringLiteral", literal(tree.LiteralString))
		r.Register("NullLiteral", literal(tree.LiteralNull))
		r.Register("SimpleName", simpleName)
		r.Register("ThisExpression", thisExpression)
		r.Register("ParenthesizedExpression", parenthesized)
		r.Register("PrefixExpression", prefixExpression)
		r.Register("InfixExpression", infixExpression)
		r.Register("Assignment", assignment)
		r.Register("FieldAccess", fieldAccess)
		r.Register("MethodInvocation", methodInvocation)
		r.Register("ClassInstanceCreation", classInstanceCreation)
		r.Register("CastExpression", castExpression)
		r.Register("ConditionalExpression", conditionalExpression)
		defaultReg = r
	})
	return defaultReg.Clone()
}

func compilationUnit(c *Converter, n *frontend.Node) (tree.Node, error) {
	unit := c.SourceUnit()
	cu := tree.NewCompilationUnit(unit.Name, unit.Package)
	for _, tn := range n.List("types") {
		td, err := convertAs[*tree.TypeDecl](c, tn, "a type declaration")
		if err != nil {
			return nil, err
		}
		if td == nil {
			return nil, fmt.Errorf("%w: nil type in %s", ErrShape, n.Kind)
		}
		cu.Types().Add(td)
	}
	return cu, nil
}

func typeDeclaration(c *Converter, n *frontend.Node) (tree.Node, error) {
	t, err := c.Type(n)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %s has no type", ErrShape, n.Kind)
	}
	members, err := convertList[tree.BodyDeclaration](c, n.List("members"), "a body declaration")
	if err != nil {
		return nil, err
	}
	return tree.NewTypeDecl(t, members...), nil
}

func fieldDeclaration(c *Converter, n *frontend.Node) (tree.Node, error) {
	frags, err := convertList[*tree.VariableDeclFragment](c, n.List("fragments"), "a variable fragment")
	if err != nil {
		return nil, err
	}
	return tree.NewFieldDecl(frags...), nil
}

func methodDeclaration(c *Converter, n *frontend.Node) (tree.Node, error) {
	m, err := c.Method(n)
	if err != nil {
		return nil, err
	}
	params, err := convertList[*tree.SingleVariableDecl](c, n.List("params"), "a parameter")
	if err != nil {
		return nil, err
	}
	body, err := convertAs[*tree.Block](c, n.Field("body"), "a block")
	if err != nil {
		return nil, err
	}
	return tree.NewMethodDecl(m, body, params...), nil
}

func singleVariableDeclaration(c *Converter, n *frontend.Node) (tree.Node, error) {
	v, err := c.Variable(n)
	if err != nil {
		return nil, err
	}
	return tree.NewSingleVariableDecl(v), nil
}

func variableDeclarationFragment(c *Converter, n *frontend.Node) (tree.Node, error) {
	v, err := c.Variable(n)
	if err != nil {
		return nil, err
	}
	init, err := c.Expression(n.Field("initializer"))
	if err != nil {
		return nil, err
	}
	return tree.NewVariableDeclFragment(v, init), nil
}

func variableDeclarationStatement(c *Converter, n *frontend.Node) (tree.Node, error) {
	frags, err := convertList[*tree.VariableDeclFragment](c, n.List("fragments"), "a variable fragment")
	if err != nil {
		return nil, err
	}
	return tree.NewVariableDeclStmt(frags...), nil
}

func block(c *Converter, n *frontend.Node) (tree.Node, error) {
	stmts, err := c.Statements(n, "statements")
	if err != nil {
		return nil, err
	}
	return tree.NewBlock(stmts...), nil
}

func expressionStatement(c *Converter, n *frontend.Node) (tree.Node, error) {
	e, err := c.RequiredExpression(n, "expression")
	if err != nil {
		return nil, err
	}
	return tree.NewExpressionStmt(e), nil
}

func returnStatement(c *Converter, n *frontend.Node) (tree.Node, error) {
	e, err := c.Expression(n.Field("expression"))
	if err != nil {
		return nil, err
	}
	return tree.NewReturnStmt(e), nil
}

func ifStatement(c *Converter, n *frontend.Node) (tree.Node, error) {
	cond, err := c.RequiredExpression(n, "condition")
	if err != nil {
		return nil, err
	}
	then, err := c.Statement(n.Field("then"))
	if err != nil {
		return nil, err
	}
	if then == nil {
		return nil, fmt.Errorf("%w: %s has no then", ErrShape, n.Kind)
	}
	elze, err := c.Statement(n.Field("else"))
	if err != nil {
		return nil, err
	}
	return tree.NewIfStmt(cond, then, elze), nil
}

func whileStatement(c *Converter, n *frontend.Node) (tree.Node, error) {
	cond, err := c.RequiredExpression(n, "condition")
	if err != nil {
		return nil, err
	}
	body, err := c.Statement(n.Field("body"))
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("%w: %s has no body", ErrShape, n.Kind)
	}
	return tree.NewWhileStmt(cond, body), nil
}

func literal(kind tree.LiteralKind) Func {
	return func(c *Converter, n *frontend.Node) (tree.Node, error) {
		t, err := c.Type(n)
		if err != nil {
			return nil, err
		}
		return tree.NewLiteral(kind, n.Value, t), nil
	}
}

// simpleName resolves a variable or method binding, or names a type when
// only a type reference is given.
func simpleName(c *Converter, n *frontend.Node) (tree.Node, error) {
	if n.Binding != "" {
		b, err := c.Universe().Binding(n.Binding)
		if err != nil {
			return nil, err
		}
		return tree.NewSimpleName(b), nil
	}
	t, err := c.Type(n)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %s resolves to nothing", ErrShape, n.Kind)
	}
	return tree.NewSimpleName(t), nil
}

func thisExpression(c *Converter, n *frontend.Node) (tree.Node, error) {
	t, err := c.Type(n)
	if err != nil {
		return nil, err
	}
	return tree.NewThisExpr(t), nil
}

func parenthesized(c *Converter, n *frontend.Node) (tree.Node, error) {
	e, err := c.RequiredExpression(n, "expression")
	if err != nil {
		return nil, err
	}
	return tree.NewParenthesizedExpr(e), nil
}

func prefixExpression(c *Converter, n *frontend.Node) (tree.Node, error) {
	op := tree.PrefixOperator(n.Op)
	if !op.Valid() {
		return nil, fmt.Errorf("%w: prefix operator %q", ErrShape, n.Op)
	}
	operand, err := c.RequiredExpression(n, "operand")
	if err != nil {
		return nil, err
	}
	t, err := c.Type(n)
	if err != nil {
		return nil, err
	}
	return tree.NewPrefixExpr(op, operand, t), nil
}

func infixExpression(c *Converter, n *frontend.Node) (tree.Node, error) {
	op := tree.InfixOperator(n.Op)
	if !op.Valid() {
		return nil, fmt.Errorf("%w: infix operator %q", ErrShape, n.Op)
	}
	left, err := c.RequiredExpression(n, "left")
	if err != nil {
		return nil, err
	}
	right, err := c.RequiredExpression(n, "right")
	if err != nil {
		return nil, err
	}
	extended, err := c.Expressions(n, "extended")
	if err != nil {
		return nil, err
	}
	t, err := c.Type(n)
	if err != nil {
		return nil, err
	}
	ie := tree.NewInfixExpr(left, op, right, t)
	for _, e := range extended {
		ie.Extended().Add(e)
	}
	return ie, nil
}

func assignment(c *Converter, n *frontend.Node) (tree.Node, error) {
	op := tree.AssignOperator(n.Op)
	if !op.Valid() {
		return nil, fmt.Errorf("%w: assignment operator %q", ErrShape, n.Op)
	}
	lhs, err := c.RequiredExpression(n, "lhs")
	if err != nil {
		return nil, err
	}
	rhs, err := c.RequiredExpression(n, "rhs")
	if err != nil {
		return nil, err
	}
	return tree.NewAssignment(lhs, op, rhs), nil
}

func fieldAccess(c *Converter, n *frontend.Node) (tree.Node, error) {
	v, err := c.Variable(n)
	if err != nil {
		return nil, err
	}
	if !v.IsField() {
		return nil, fmt.Errorf("%w: %s names %s, which is not a field", ErrShape, n.Kind, v.Name())
	}
	e, err := c.RequiredExpression(n, "expression")
	if err != nil {
		return nil, err
	}
	return tree.NewFieldAccess(e, v), nil
}

func methodInvocation(c *Converter, n *frontend.Node) (tree.Node, error) {
	m, err := c.Method(n)
	if err != nil {
		return nil, err
	}
	recv, err := c.Expression(n.Field("receiver"))
	if err != nil {
		return nil, err
	}
	args, err := c.Expressions(n, "arguments")
	if err != nil {
		return nil, err
	}
	if err := checkArity(m, len(args)); err != nil {
		return nil, err
	}
	return tree.NewMethodInvocation(recv, m, args...), nil
}

func classInstanceCreation(c *Converter, n *frontend.Node) (tree.Node, error) {
	ctor, err := c.Method(n)
	if err != nil {
		return nil, err
	}
	if !ctor.IsConstructor() {
		return nil, fmt.Errorf("%w: %s names %s, which is not a constructor", ErrShape, n.Kind, ctor.Name())
	}
	args, err := c.Expressions(n, "arguments")
	if err != nil {
		return nil, err
	}
	if err := checkArity(ctor, len(args)); err != nil {
		return nil, err
	}
	t, err := c.Type(n)
	if err != nil {
		return nil, err
	}
	if t == nil {
		t = ctor.DeclaringType()
	}
	return tree.NewClassInstanceCreation(t, ctor, args...), nil
}

func castExpression(c *Converter, n *frontend.Node) (tree.Node, error) {
	t, err := c.Type(n)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %s has no target type", ErrShape, n.Kind)
	}
	e, err := c.RequiredExpression(n, "expression")
	if err != nil {
		return nil, err
	}
	return tree.NewCastExpr(t, e), nil
}

func conditionalExpression(c *Converter, n *frontend.Node) (tree.Node, error) {
	cond, err := c.RequiredExpression(n, "condition")
	if err != nil {
		return nil, err
	}
	then, err := c.RequiredExpression(n, "then")
	if err != nil {
		return nil, err
	}
	elze, err := c.RequiredExpression(n, "else")
	if err != nil {
		return nil, err
	}
	t, err := c.Type(n)
	if err != nil {
		return nil, err
	}
	return tree.NewConditionalExpr(cond, then, elze, t), nil
}

// checkArity accepts any argument count for varargs methods with at least
// the fixed parameters.
func checkArity(m binding.MethodBinding, args int) error {
	params := len(m.ParameterTypes())
	if m.IsVarargs() {
		if args >= params-1 {
			return nil
		}
	} else if args == params {
		return nil
	}
	return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrShape, m.Name(), params, args)
}
