package tree

import (
	"reflect"

	"xlate/internal/binding"
	"xlate/internal/source"
)

// Kind enumerates node variants.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindLiteral
	KindSimpleName
	KindThis
	KindParenthesized
	KindPrefix
	KindInfix
	KindAssignment
	KindFieldAccess
	KindMethodInvocation
	KindClassInstanceCreation
	KindCast
	KindConditional
	KindBlock
	KindExpressionStmt
	KindReturnStmt
	KindIfStmt
	KindWhileStmt
	KindVariableDeclStmt
	KindVariableDeclFragment
	KindSingleVariableDecl
	KindMethodDecl
	KindFieldDecl
	KindTypeDecl
	KindCompilationUnit
)

var kindNames = [...]string{
	KindInvalid:               "Invalid",
	KindLiteral:               "Literal",
	KindSimpleName:            "SimpleName",
	KindThis:                  "This",
	KindParenthesized:         "Parenthesized",
	KindPrefix:                "Prefix",
	KindInfix:                 "Infix",
	KindAssignment:            "Assignment",
	KindFieldAccess:           "FieldAccess",
	KindMethodInvocation:      "MethodInvocation",
	KindClassInstanceCreation: "ClassInstanceCreation",
	KindCast:                  "Cast",
	KindConditional:           "Conditional",
	KindBlock:                 "Block",
	KindExpressionStmt:        "ExpressionStmt",
	KindReturnStmt:            "ReturnStmt",
	KindIfStmt:                "IfStmt",
	KindWhileStmt:             "WhileStmt",
	KindVariableDeclStmt:      "VariableDeclStmt",
	KindVariableDeclFragment:  "VariableDeclFragment",
	KindSingleVariableDecl:    "SingleVariableDecl",
	KindMethodDecl:            "MethodDecl",
	KindFieldDecl:             "FieldDecl",
	KindTypeDecl:              "TypeDecl",
	KindCompilationUnit:       "CompilationUnit",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Provenance records where a node came from.
type Provenance struct {
	Span source.Span
	Pos  source.LineCol
	// Origin is the front-end kind the node was converted from; empty for
	// nodes synthesized by a pass.
	Origin string
}

// IsSynthetic reports whether the node has no source origin.
func (p Provenance) IsSynthetic() bool {
	return p.Origin == "" && !p.Span.IsValid()
}

// Node is implemented by every tree element. The set of implementations is
// closed; switch on the concrete type to handle individual kinds.
type Node interface {
	Kind() Kind
	Provenance() Provenance
	SetProvenance(p Provenance)
	// Parent returns the node owning this one, or nil when unattached.
	Parent() Node
	// Holder returns the slot or list owning this node, or nil.
	Holder() Holder
	// Accept runs v over the subtree rooted at this node.
	Accept(v Visitor)
	// Copy returns an unattached deep clone with the same provenance.
	Copy() Node

	base() *nodeBase
	sameAttrs(other Node) bool
}

// Expression is the capability of nodes that produce a value.
type Expression interface {
	Node
	// TypeBinding is the static type of the value, nil when unknown.
	TypeBinding() binding.TypeBinding
	expression()
}

// Statement is the capability of nodes that appear in blocks.
type Statement interface {
	Node
	statement()
}

// BodyDeclaration is the capability of type members.
type BodyDeclaration interface {
	Node
	bodyDeclaration()
}

// Declaration is implemented by nodes that declare a binding.
type Declaration interface {
	Node
	DeclaredBinding() binding.Binding
}

// Reference is implemented by nodes that use a binding declared elsewhere.
type Reference interface {
	Node
	ReferencedBinding() binding.Binding
}

type nodeBase struct {
	prov   Provenance
	holder Holder
}

func (b *nodeBase) base() *nodeBase { return b }

func (b *nodeBase) Provenance() Provenance { return b.prov }

func (b *nodeBase) SetProvenance(p Provenance) { b.prov = p }

func (b *nodeBase) Holder() Holder { return b.holder }

func (b *nodeBase) Parent() Node {
	if b.holder == nil {
		return nil
	}
	return b.holder.Owner()
}

func (b *nodeBase) sameAttrs(Node) bool { return true }

type exprBase struct{ nodeBase }

func (exprBase) expression() {}

type stmtBase struct{ nodeBase }

func (stmtBase) statement() {}

type declBase struct{ nodeBase }

func (declBase) bodyDeclaration() {}

// copied finalizes a clone: it takes over src's provenance.
func copied[T Node](dst T, src Node) T {
	dst.base().prov = src.base().prov
	return dst
}

// Clone deep-copies n keeping its static type.
func Clone[T Node](n T) T {
	if isNil(n) {
		return n
	}
	return n.Copy().(T)
}

// Detach removes n from its owner and returns it unattached. Detaching an
// unattached node is a no-op.
func Detach[T Node](n T) T {
	if isNil(n) {
		return n
	}
	if h := n.base().holder; h != nil {
		h.remove(n)
	}
	return n
}

// Replace puts replacement where old is, leaving old unattached. old must be
// attached, replacement must not be, and replacement must satisfy the
// capability of old's slot.
func Replace(old, replacement Node) {
	h := old.base().holder
	if h == nil {
		panic(&OwnershipViolation{Child: old, Reason: "cannot replace a node that has no owner"})
	}
	h.replace(old, replacement)
}

// IsAttached reports whether n currently has an owner.
func IsAttached(n Node) bool {
	return n.base().holder != nil
}

// Root walks up the owner chain and returns the topmost node.
func Root(n Node) Node {
	for p := n.Parent(); p != nil; p = n.Parent() {
		n = p
	}
	return n
}

// isNil reports whether n is a nil interface or a typed nil pointer.
func isNil[T Node](n T) bool {
	v := any(n)
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
