// Package driver translates the units of a loaded document in parallel.
package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"xlate/internal/convert"
	"xlate/internal/frontend"
	"xlate/internal/observ"
	"xlate/internal/pass"
	"xlate/internal/trace"
	"xlate/internal/tree"
)

// Options configures Translate. The zero value translates with the default
// registry and pipeline on GOMAXPROCS workers, without a cache.
type Options struct {
	Jobs      int
	Registry  *convert.Registry
	Pipeline  *pass.Pipeline
	Progress  ProgressSink
	Cache     *DiskCache
	Heartbeat time.Duration
}

// Result is the outcome for one unit. Exactly one of Err and Summary is
// meaningful. Tree is nil for cache hits.
type Result struct {
	Unit    string
	Tree    *tree.CompilationUnit
	Pass    *pass.Unit
	Summary Summary
	Cached  bool
	Timing  observ.Report
	Err     error
}

// UnitError is a failure confined to one unit.
type UnitError struct {
	Unit  string
	Stage Stage
	Err   error
	// Panic holds the recovered value when the unit panicked.
	Panic any
	Stack []byte
}

func (e *UnitError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("%s: %s: panic: %v", e.Unit, e.Stage, e.Panic)
	}
	return fmt.Sprintf("%s: %s: %v", e.Unit, e.Stage, e.Err)
}

func (e *UnitError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	if err, ok := e.Panic.(error); ok {
		return err
	}
	return nil
}

// Translate converts and runs the pipeline over every unit, returning results
// in input order. A failing unit does not stop the others; its Result.Err is
// a *UnitError. The returned error is non-nil only when ctx ends first.
func Translate(ctx context.Context, u *frontend.Universe, units []*frontend.Unit, opts Options) ([]Result, error) {
	if opts.Pipeline == nil {
		opts.Pipeline = pass.Default()
	}
	if opts.Registry == nil {
		opts.Registry = convert.Default()
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "translate", trace.SpanFromContext(ctx))
	span.WithExtra("units", strconv.Itoa(len(units)))
	defer span.End("")
	hb := trace.StartHeartbeat(tracer, opts.Heartbeat)
	defer hb.Stop()
	ctx = trace.WithSpan(ctx, span)

	for _, unit := range units {
		emit(opts.Progress, Event{Unit: unit.Name, Stage: StageQueue, Status: StatusQueued})
	}

	results := make([]Result, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(units))))
	for i, unit := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Unit: unit.Name, Err: &UnitError{Unit: unit.Name, Stage: StageQueue, Err: err}}
				return err
			}
			results[i] = translateUnit(gctx, u, unit, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

type unitRun struct {
	ctx   context.Context
	u     *frontend.Universe
	unit  *frontend.Unit
	opts  Options
	stage Stage
	res   Result
}

func translateUnit(ctx context.Context, u *frontend.Universe, unit *frontend.Unit, opts Options) (res Result) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeUnit, "unit:"+unit.Name, trace.SpanFromContext(ctx))
	r := &unitRun{ctx: trace.WithSpan(ctx, span), u: u, unit: unit, opts: opts, stage: StageQueue}
	r.res.Unit = unit.Name
	started := time.Now()

	defer func() {
		if p := recover(); p != nil {
			r.res.Err = &UnitError{Unit: unit.Name, Stage: r.stage, Panic: p, Stack: debug.Stack()}
		}
		res = r.res
		status := StatusDone
		switch {
		case res.Err != nil:
			status = StatusError
			span.End(res.Err.Error())
		case res.Cached:
			status = StatusCached
			span.End("cached")
		default:
			span.End("")
		}
		emit(opts.Progress, Event{Unit: unit.Name, Stage: r.stage, Status: status, Err: res.Err, Elapsed: time.Since(started)})
	}()

	r.run()
	return r.res
}

func (r *unitRun) fail(err error) {
	var ue *UnitError
	if errors.As(err, &ue) {
		r.res.Err = ue
		return
	}
	r.res.Err = &UnitError{Unit: r.unit.Name, Stage: r.stage, Err: err}
}

func (r *unitRun) enter(stage Stage) {
	r.stage = stage
	emit(r.opts.Progress, Event{Unit: r.unit.Name, Stage: stage, Status: StatusWorking})
}

func (r *unitRun) run() {
	var digest Digest
	if r.opts.Cache != nil {
		r.enter(StageCache)
		d, err := UnitDigest(r.u, r.unit, r.opts.Pipeline.Names())
		if err != nil {
			r.fail(err)
			return
		}
		digest = d
		var cached Summary
		hit, err := r.opts.Cache.Get(digest, &cached)
		if err != nil {
			r.fail(err)
			return
		}
		if hit && cached.Unit == r.unit.Name {
			r.res.Summary = cached
			r.res.Cached = true
			return
		}
	}

	timer := observ.NewTimer()
	r.enter(StageConvert)
	var root *tree.CompilationUnit
	err := timer.Time("convert", func() error {
		var err error
		root, err = convert.Unit(r.u, r.unit, r.opts.Registry)
		return err
	})
	if err != nil {
		r.fail(err)
		return
	}

	r.enter(StagePasses)
	pu := pass.NewUnit(r.unit.Name, root, r.u)
	pu.Timer = timer
	err = r.opts.Pipeline.Run(r.ctx, pu)
	r.res.Timing = timer.Report()
	if err != nil {
		r.fail(err)
		return
	}

	r.enter(StageSummarize)
	sum, err := Summarize(pu)
	if err != nil {
		r.fail(err)
		return
	}
	sum.Digest = digest
	r.res.Tree = root
	r.res.Pass = pu
	r.res.Summary = sum
	if r.opts.Cache != nil {
		if err := r.opts.Cache.Put(digest, &sum); err != nil {
			r.fail(err)
		}
	}
}

// Summarize records the unit's binding keys and size. It builds an index
// when the pipeline did not.
func Summarize(pu *pass.Unit) (Summary, error) {
	idx := pu.Index
	if idx == nil {
		idx = tree.BuildIndex(pu.Root)
	}
	nodes, err := safecast.Conv[uint32](tree.Count(pu.Root))
	if err != nil {
		return Summary{}, fmt.Errorf("node count: %w", err)
	}
	generated, err := safecast.Conv[uint32](pu.Table.Len())
	if err != nil {
		return Summary{}, fmt.Errorf("generated bindings: %w", err)
	}
	return Summary{
		Schema:    diskCacheSchemaVersion,
		Unit:      pu.Name,
		Keys:      idx.Keys(),
		Nodes:     nodes,
		Generated: generated,
	}, nil
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
