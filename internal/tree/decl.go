package tree

import "xlate/internal/binding"

// VariableDeclFragment declares one variable of a VariableDeclStmt or
// FieldDecl.
//
// Children: Initializer (optional).
type VariableDeclFragment struct {
	nodeBase
	variable    binding.VariableBinding
	initializer ChildLink[Expression]
}

func NewVariableDeclFragment(v binding.VariableBinding, init Expression) *VariableDeclFragment {
	n := &VariableDeclFragment{variable: v}
	n.initializer.init(n)
	n.initializer.Set(init)
	return n
}

func (n *VariableDeclFragment) Kind() Kind { return KindVariableDeclFragment }

func (n *VariableDeclFragment) Variable() binding.VariableBinding { return n.variable }

func (n *VariableDeclFragment) SetVariable(v binding.VariableBinding) { n.variable = v }

func (n *VariableDeclFragment) DeclaredBinding() binding.Binding { return n.variable }

func (n *VariableDeclFragment) Initializer() Expression { return n.initializer.Get() }

func (n *VariableDeclFragment) SetInitializer(e Expression) { n.initializer.Set(e) }

func (n *VariableDeclFragment) Accept(v Visitor) {
	if v.Visit(n) {
		n.initializer.Accept(v)
	}
	v.EndVisit(n)
}

func (n *VariableDeclFragment) Copy() Node {
	c := NewVariableDeclFragment(n.variable, nil)
	c.initializer.CopyFrom(&n.initializer)
	return copied(c, n)
}

func (n *VariableDeclFragment) sameAttrs(other Node) bool {
	return binding.Same(n.variable, other.(*VariableDeclFragment).variable)
}

// SingleVariableDecl declares a method parameter.
type SingleVariableDecl struct {
	nodeBase
	variable binding.VariableBinding
}

func NewSingleVariableDecl(v binding.VariableBinding) *SingleVariableDecl {
	return &SingleVariableDecl{variable: v}
}

func (n *SingleVariableDecl) Kind() Kind { return KindSingleVariableDecl }

func (n *SingleVariableDecl) Variable() binding.VariableBinding { return n.variable }

func (n *SingleVariableDecl) SetVariable(v binding.VariableBinding) { n.variable = v }

func (n *SingleVariableDecl) DeclaredBinding() binding.Binding { return n.variable }

func (n *SingleVariableDecl) Accept(v Visitor) {
	v.Visit(n)
	v.EndVisit(n)
}

func (n *SingleVariableDecl) Copy() Node {
	return copied(NewSingleVariableDecl(n.variable), n)
}

func (n *SingleVariableDecl) sameAttrs(other Node) bool {
	return binding.Same(n.variable, other.(*SingleVariableDecl).variable)
}

// MethodDecl declares a method or constructor. Abstract and native methods
// have no body.
//
// Children: Parameters in order, Body (optional).
type MethodDecl struct {
	declBase
	method binding.MethodBinding
	params ChildList[*SingleVariableDecl]
	body   ChildLink[*Block]
}

func NewMethodDecl(m binding.MethodBinding, body *Block, params ...*SingleVariableDecl) *MethodDecl {
	n := &MethodDecl{method: m}
	n.params.init(n)
	n.body.init(n)
	for _, p := range params {
		n.params.Add(p)
	}
	n.body.Set(body)
	return n
}

func (n *MethodDecl) Kind() Kind { return KindMethodDecl }

func (n *MethodDecl) Method() binding.MethodBinding { return n.method }

func (n *MethodDecl) SetMethod(m binding.MethodBinding) { n.method = m }

func (n *MethodDecl) DeclaredBinding() binding.Binding { return n.method }

func (n *MethodDecl) Parameters() *ChildList[*SingleVariableDecl] { return &n.params }

func (n *MethodDecl) Body() *Block { return n.body.Get() }

func (n *MethodDecl) SetBody(b *Block) { n.body.Set(b) }

func (n *MethodDecl) Accept(v Visitor) {
	if v.Visit(n) {
		n.params.Accept(v)
		n.body.Accept(v)
	}
	v.EndVisit(n)
}

func (n *MethodDecl) Copy() Node {
	c := NewMethodDecl(n.method, nil)
	c.params.CopyFrom(&n.params)
	c.body.CopyFrom(&n.body)
	return copied(c, n)
}

func (n *MethodDecl) sameAttrs(other Node) bool {
	return binding.Same(n.method, other.(*MethodDecl).method)
}

// FieldDecl declares one or more fields of the same type.
//
// Children: Fragments in order.
type FieldDecl struct {
	declBase
	fragments ChildList[*VariableDeclFragment]
}

func NewFieldDecl(fragments ...*VariableDeclFragment) *FieldDecl {
	n := &FieldDecl{}
	n.fragments.init(n)
	for _, f := range fragments {
		n.fragments.Add(f)
	}
	return n
}

func (n *FieldDecl) Kind() Kind { return KindFieldDecl }

func (n *FieldDecl) Fragments() *ChildList[*VariableDeclFragment] { return &n.fragments }

func (n *FieldDecl) Accept(v Visitor) {
	if v.Visit(n) {
		n.fragments.Accept(v)
	}
	v.EndVisit(n)
}

func (n *FieldDecl) Copy() Node {
	c := NewFieldDecl()
	c.fragments.CopyFrom(&n.fragments)
	return copied(c, n)
}

// TypeDecl declares a class or interface. Member types nest as body
// declarations.
//
// Children: Body declarations in order.
type TypeDecl struct {
	declBase
	typ  binding.TypeBinding
	body ChildList[BodyDeclaration]
}

func NewTypeDecl(t binding.TypeBinding, members ...BodyDeclaration) *TypeDecl {
	n := &TypeDecl{typ: t}
	n.body.init(n)
	for _, m := range members {
		n.body.Add(m)
	}
	return n
}

func (n *TypeDecl) Kind() Kind { return KindTypeDecl }

func (n *TypeDecl) Type() binding.TypeBinding { return n.typ }

func (n *TypeDecl) SetType(t binding.TypeBinding) { n.typ = t }

func (n *TypeDecl) DeclaredBinding() binding.Binding { return n.typ }

func (n *TypeDecl) Body() *ChildList[BodyDeclaration] { return &n.body }

// Methods returns the method declarations among the members.
func (n *TypeDecl) Methods() []*MethodDecl {
	var out []*MethodDecl
	for _, m := range n.body.All() {
		if md, ok := m.(*MethodDecl); ok {
			out = append(out, md)
		}
	}
	return out
}

func (n *TypeDecl) Accept(v Visitor) {
	if v.Visit(n) {
		n.body.Accept(v)
	}
	v.EndVisit(n)
}

func (n *TypeDecl) Copy() Node {
	c := NewTypeDecl(n.typ)
	c.body.CopyFrom(&n.body)
	return copied(c, n)
}

func (n *TypeDecl) sameAttrs(other Node) bool {
	return binding.Same(n.typ, other.(*TypeDecl).typ)
}

// CompilationUnit is the root of one translation unit.
//
// Children: Types in order.
type CompilationUnit struct {
	nodeBase
	name  string
	pkg   string
	types ChildList[*TypeDecl]
}

func NewCompilationUnit(name, pkg string, types ...*TypeDecl) *CompilationUnit {
	n := &CompilationUnit{name: name, pkg: pkg}
	n.types.init(n)
	for _, t := range types {
		n.types.Add(t)
	}
	return n
}

func (n *CompilationUnit) Kind() Kind { return KindCompilationUnit }

// Name is the unit's source name, usually a file path.
func (n *CompilationUnit) Name() string { return n.name }

func (n *CompilationUnit) Package() string { return n.pkg }

func (n *CompilationUnit) Types() *ChildList[*TypeDecl] { return &n.types }

func (n *CompilationUnit) Accept(v Visitor) {
	if v.Visit(n) {
		n.types.Accept(v)
	}
	v.EndVisit(n)
}

func (n *CompilationUnit) Copy() Node {
	c := NewCompilationUnit(n.name, n.pkg)
	c.types.CopyFrom(&n.types)
	return copied(c, n)
}

func (n *CompilationUnit) sameAttrs(other Node) bool {
	o := other.(*CompilationUnit)
	return n.name == o.name && n.pkg == o.pkg
}
