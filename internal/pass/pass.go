// Package pass runs ordered rewrites over converted compilation units.
package pass

import (
	"context"
	"errors"
	"fmt"

	"xlate/internal/binding"
	"xlate/internal/frontend"
	"xlate/internal/observ"
	"xlate/internal/trace"
	"xlate/internal/tree"
)

// Unit is the state one translation unit carries through the pipeline.
// Universe is shared read-only with every other unit; everything else belongs
// to this unit alone.
type Unit struct {
	Name     string
	Root     *tree.CompilationUnit
	Universe *frontend.Universe
	// Table de-duplicates the bindings passes generate for this unit.
	Table *binding.Table
	// Index is the most recent tree index, set by the Index pass.
	Index *tree.Index
	Timer *observ.Timer
}

// NewUnit wraps a converted tree.
func NewUnit(name string, root *tree.CompilationUnit, u *frontend.Universe) *Unit {
	return &Unit{
		Name:     name,
		Root:     root,
		Universe: u,
		Table:    binding.NewTable(),
		Timer:    observ.NewTimer(),
	}
}

// Pass rewrites or inspects one unit.
type Pass interface {
	Name() string
	Run(u *Unit) error
}

type funcPass struct {
	name string
	fn   func(*Unit) error
}

func (p funcPass) Name() string      { return p.name }
func (p funcPass) Run(u *Unit) error { return p.fn(u) }
func (p funcPass) String() string    { return "pass " + p.name }

// Func adapts a plain function to a Pass.
func Func(name string, fn func(*Unit) error) Pass {
	return funcPass{name: name, fn: fn}
}

// ErrDuplicatePass is returned when two passes in a pipeline share a name.
var ErrDuplicatePass = errors.New("pass: duplicate pass name")

// Pipeline runs passes in a fixed order.
type Pipeline struct {
	passes []Pass
}

// NewPipeline checks that pass names are unique.
func NewPipeline(passes ...Pass) (*Pipeline, error) {
	seen := make(map[string]struct{}, len(passes))
	for _, p := range passes {
		if _, dup := seen[p.Name()]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePass, p.Name())
		}
		seen[p.Name()] = struct{}{}
	}
	return &Pipeline{passes: append([]Pass(nil), passes...)}, nil
}

// Default is Canonicalize, Verify, Index.
func Default() *Pipeline {
	p, err := NewPipeline(Canonicalize(), Verify(), Index())
	if err != nil {
		panic(err)
	}
	return p
}

// Names lists the passes in run order.
func (p *Pipeline) Names() []string {
	out := make([]string, len(p.passes))
	for i, ps := range p.passes {
		out[i] = ps.Name()
	}
	return out
}

// Run applies every pass to u, stopping at the first failure or when ctx is
// done. Each pass gets a trace span under the span recorded in ctx and a
// phase on u.Timer.
func (p *Pipeline) Run(ctx context.Context, u *Unit) error {
	tracer := trace.FromContext(ctx)
	parent := trace.SpanFromContext(ctx)
	if u.Timer == nil {
		u.Timer = observ.NewTimer()
	}
	for _, ps := range p.passes {
		if err := ctx.Err(); err != nil {
			return err
		}
		span := trace.Begin(tracer, trace.ScopePass, ps.Name(), parent)
		err := u.Timer.Time(ps.Name(), func() error { return ps.Run(u) })
		if err != nil {
			span.End(err.Error())
			return fmt.Errorf("pass %s: %w", ps.Name(), err)
		}
		span.End("")
	}
	return nil
}
