// Package convert builds tree nodes from the original syntax nodes of a
// front-end document.
package convert

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"xlate/internal/binding"
	"xlate/internal/frontend"
	"xlate/internal/source"
	"xlate/internal/tree"
)

var (
	// ErrUnknownKind is returned for original nodes no Func is registered for.
	ErrUnknownKind = errors.New("convert: unknown node kind")
	// ErrShape is returned when an original node lacks a required child or
	// has a child of the wrong category.
	ErrShape = errors.New("convert: malformed node")
)

// DuplicateConversion is raised (as a panic) when the same original node is
// converted twice by one Converter. Two tree nodes built from one original
// would share identity-sensitive state downstream.
type DuplicateConversion struct {
	Kind string
	Pos  frontend.Pos
}

func (e *DuplicateConversion) Error() string {
	return fmt.Sprintf("convert: %s at %d:%d converted twice", e.Kind, e.Pos.Line, e.Pos.Col)
}

// Func converts one original node. Children are converted through c.
type Func func(c *Converter, n *frontend.Node) (tree.Node, error)

// Registry maps original node kinds to conversion funcs.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register installs fn for kind, replacing any previous func.
func (r *Registry) Register(kind string, fn Func) {
	r.funcs[kind] = fn
}

// Lookup returns the func registered for kind.
func (r *Registry) Lookup(kind string) (Func, bool) {
	fn, ok := r.funcs[kind]
	return fn, ok
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	return slices.Sorted(maps.Keys(r.funcs))
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	return &Registry{funcs: maps.Clone(r.funcs)}
}

// Converter turns the original tree of one unit into a tree.CompilationUnit.
// It is not safe for concurrent use; create one per unit.
type Converter struct {
	universe *frontend.Universe
	unit     *frontend.Unit
	registry *Registry
	done     map[*frontend.Node]struct{}
}

// New creates a converter for unit. A nil registry selects Default().
func New(u *frontend.Universe, unit *frontend.Unit, reg *Registry) *Converter {
	if reg == nil {
		reg = Default()
	}
	return &Converter{
		universe: u,
		unit:     unit,
		registry: reg,
		done:     make(map[*frontend.Node]struct{}),
	}
}

// Unit converts the whole unit.
func Unit(u *frontend.Universe, unit *frontend.Unit, reg *Registry) (*tree.CompilationUnit, error) {
	return New(u, unit, reg).Root()
}

// Root converts the unit's root node, which must be a compilation unit.
func (c *Converter) Root() (*tree.CompilationUnit, error) {
	n, err := c.Convert(c.unit.Root)
	if err != nil {
		return nil, err
	}
	cu, ok := n.(*tree.CompilationUnit)
	if !ok {
		return nil, fmt.Errorf("%w: unit %q root is %s, not a compilation unit", ErrShape, c.unit.Name, n.Kind())
	}
	return cu, nil
}

// Universe returns the universe bindings are resolved in.
func (c *Converter) Universe() *frontend.Universe { return c.universe }

// SourceUnit returns the unit being converted.
func (c *Converter) SourceUnit() *frontend.Unit { return c.unit }

// Converted returns how many original nodes have been converted.
func (c *Converter) Converted() int { return len(c.done) }

// Convert dispatches n to its registered func and records provenance on the
// result. Converting the same original twice panics with
// *DuplicateConversion.
func (c *Converter) Convert(n *frontend.Node) (tree.Node, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: missing node", ErrShape)
	}
	if _, dup := c.done[n]; dup {
		panic(&DuplicateConversion{Kind: n.Kind, Pos: n.Pos})
	}
	fn, ok := c.registry.Lookup(n.Kind)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, n.Kind)
	}
	c.done[n] = struct{}{}
	out, err := fn(c, n)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: %s converted to nothing", ErrShape, n.Kind)
	}
	out.SetProvenance(c.provenance(n))
	return out, nil
}

func (c *Converter) provenance(n *frontend.Node) tree.Provenance {
	p := tree.Provenance{Origin: n.Kind}
	if !n.Pos.IsZero() {
		p.Span = source.Span{File: c.unit.File, Start: n.Pos.Offset, End: n.Pos.End}
		p.Pos = source.LineCol{Line: n.Pos.Line, Col: n.Pos.Col}
	}
	return p
}

// Expression converts n and checks that it is an expression. A nil n
// converts to nil.
func (c *Converter) Expression(n *frontend.Node) (tree.Expression, error) {
	return convertAs[tree.Expression](c, n, "an expression")
}

// Statement converts n and checks that it is a statement. A nil n converts
// to nil.
func (c *Converter) Statement(n *frontend.Node) (tree.Statement, error) {
	return convertAs[tree.Statement](c, n, "a statement")
}

// RequiredExpression is Expression for mandatory children.
func (c *Converter) RequiredExpression(parent *frontend.Node, field string) (tree.Expression, error) {
	child := parent.Field(field)
	if child == nil {
		return nil, fmt.Errorf("%w: %s has no %s", ErrShape, parent.Kind, field)
	}
	return c.Expression(child)
}

// Expressions converts every node of the named list.
func (c *Converter) Expressions(parent *frontend.Node, list string) ([]tree.Expression, error) {
	return convertList[tree.Expression](c, parent.List(list), "an expression")
}

// Statements converts every node of the named list.
func (c *Converter) Statements(parent *frontend.Node, list string) ([]tree.Statement, error) {
	return convertList[tree.Statement](c, parent.List(list), "a statement")
}

func convertAs[T tree.Node](c *Converter, n *frontend.Node, want string) (T, error) {
	var zero T
	if n == nil {
		return zero, nil
	}
	out, err := c.Convert(n)
	if err != nil {
		return zero, err
	}
	typed, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is not %s", ErrShape, n.Kind, want)
	}
	return typed, nil
}

func convertList[T tree.Node](c *Converter, nodes []*frontend.Node, want string) ([]T, error) {
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			return nil, fmt.Errorf("%w: nil entry where %s is required", ErrShape, want)
		}
		typed, err := convertAs[T](c, n, want)
		if err != nil {
			return nil, err
		}
		out = append(out, typed)
	}
	return out, nil
}

// Type resolves the node's type reference; nodes without one yield nil.
func (c *Converter) Type(n *frontend.Node) (binding.TypeBinding, error) {
	if n.Type == "" {
		return nil, nil
	}
	t, err := c.universe.Type(n.Type)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Method resolves the node's binding as a method.
func (c *Converter) Method(n *frontend.Node) (binding.MethodBinding, error) {
	if n.Binding == "" {
		return nil, fmt.Errorf("%w: %s has no method binding", ErrShape, n.Kind)
	}
	m, err := c.universe.Method(n.Binding)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Variable resolves the node's binding as a variable.
func (c *Converter) Variable(n *frontend.Node) (binding.VariableBinding, error) {
	if n.Binding == "" {
		return nil, fmt.Errorf("%w: %s has no variable binding", ErrShape, n.Kind)
	}
	v, err := c.universe.Variable(n.Binding)
	if err != nil {
		return nil, err
	}
	return v, nil
}
