package driver

import (
	"context"
	"errors"
	"sync"
	"testing"

	"xlate/internal/convert"
	"xlate/internal/frontend"
	"xlate/internal/pass"
	"xlate/internal/tree"
)

func loadShapes(t *testing.T) *frontend.Universe {
	t.Helper()
	doc, err := frontend.Decode("../frontend/testdata/shapes.json")
	if err != nil {
		t.Fatal(err)
	}
	u, err := frontend.Load(doc)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) final(unit string) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if e.Unit == unit && (e.Status == StatusDone || e.Status == StatusError || e.Status == StatusCached) {
			return e, true
		}
	}
	return Event{}, false
}

func TestTranslateShapes(t *testing.T) {
	u := loadShapes(t)
	rec := &recorder{}
	results, err := Translate(context.Background(), u, u.Units(), Options{Jobs: 2, Progress: rec})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].Unit != "com/example/Circle.java" || results[1].Unit != "com/example/Square.java" {
		t.Fatalf("results out of order: %+v", results)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Unit, r.Err)
		}
		if r.Tree == nil || r.Cached {
			t.Fatalf("%s: missing tree", r.Unit)
		}
		if int(r.Summary.Nodes) != tree.Count(r.Tree) || len(r.Summary.Keys) == 0 {
			t.Fatalf("%s: summary %+v", r.Unit, r.Summary)
		}
		if len(r.Timing.Phases) != 4 {
			t.Fatalf("%s: phases %+v", r.Unit, r.Timing.Phases)
		}
		if e, ok := rec.final(r.Unit); !ok || e.Status != StatusDone || e.Stage != StageSummarize {
			t.Fatalf("%s: final event %+v", r.Unit, e)
		}
	}
	if len(Failed(results)) != 0 {
		t.Fatalf("unexpected failures")
	}
}

func TestUnitFailureIsIsolated(t *testing.T) {
	u := loadShapes(t)
	reg := convert.Default()
	reg.Register("WhileStatement", func(*convert.Converter, *frontend.Node) (tree.Node, error) {
		panic("while loops unsupported")
	})
	results, err := Translate(context.Background(), u, u.Units(), Options{Registry: reg})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Err != nil {
		t.Fatalf("Circle should translate: %v", results[0].Err)
	}
	var ue *UnitError
	if !errors.As(results[1].Err, &ue) {
		t.Fatalf("Square error %v", results[1].Err)
	}
	if ue.Stage != StageConvert || ue.Panic != "while loops unsupported" || len(ue.Stack) == 0 {
		t.Fatalf("unit error %+v", ue)
	}
	if failed := Failed(results); len(failed) != 1 || failed[0].Unit != "com/example/Square.java" {
		t.Fatalf("failed %+v", failed)
	}
}

func TestPassErrorCarriesStage(t *testing.T) {
	u := loadShapes(t)
	boom := errors.New("boom")
	p, err := pass.NewPipeline(pass.Func("explode", func(*pass.Unit) error { return boom }))
	if err != nil {
		t.Fatal(err)
	}
	results, err := Translate(context.Background(), u, u.Units()[:1], Options{Pipeline: p})
	if err != nil {
		t.Fatal(err)
	}
	var ue *UnitError
	if !errors.As(results[0].Err, &ue) || ue.Stage != StagePasses || !errors.Is(results[0].Err, boom) {
		t.Fatalf("got %v", results[0].Err)
	}
}

func TestCacheHitSkipsTranslation(t *testing.T) {
	u := loadShapes(t)
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	first, err := Translate(context.Background(), u, u.Units(), Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	second, err := Translate(context.Background(), u, u.Units(), Options{Cache: cache, Progress: rec})
	if err != nil {
		t.Fatal(err)
	}
	for i := range second {
		if !second[i].Cached || second[i].Tree != nil {
			t.Fatalf("%s: expected cache hit", second[i].Unit)
		}
		if second[i].Summary.Digest != first[i].Summary.Digest || second[i].Summary.Nodes != first[i].Summary.Nodes {
			t.Fatalf("%s: cached summary differs", second[i].Unit)
		}
		if e, _ := rec.final(second[i].Unit); e.Status != StatusCached {
			t.Fatalf("%s: final status %v", second[i].Unit, e.Status)
		}
	}

	// A different pipeline must not reuse the entries.
	p, _ := pass.NewPipeline(pass.Verify())
	third, err := Translate(context.Background(), u, u.Units(), Options{Cache: cache, Pipeline: p})
	if err != nil {
		t.Fatal(err)
	}
	if third[0].Cached {
		t.Fatalf("pipeline change should miss the cache")
	}
}

func TestTranslateCancelled(t *testing.T) {
	u := loadShapes(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Translate(ctx, u, u.Units(), Options{Jobs: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
	for _, r := range results {
		if r.Err == nil {
			t.Fatalf("%s: cancelled unit reported success", r.Unit)
		}
	}
}

func TestDigestTracksReferencedBindings(t *testing.T) {
	u := loadShapes(t)
	unit, _ := u.Unit("com/example/Circle.java")
	d1, err := UnitDigest(u, unit, []string{"verify"})
	if err != nil {
		t.Fatal(err)
	}
	d2, _ := UnitDigest(u, unit, []string{"verify"})
	if d1 != d2 || d1.IsZero() {
		t.Fatalf("digest not stable")
	}
	d3, _ := UnitDigest(u, unit, []string{"verify", "index"})
	if d3 == d1 {
		t.Fatalf("pipeline not part of digest")
	}

	doc, _ := frontend.Decode("../frontend/testdata/shapes.json")
	for i := range doc.Methods {
		if doc.Methods[i].ID == "circle.grow" {
			doc.Methods[i].Name = "enlarge"
		}
	}
	renamed, err := frontend.Load(doc)
	if err != nil {
		t.Fatal(err)
	}
	runit, _ := renamed.Unit("com/example/Circle.java")
	d4, _ := UnitDigest(renamed, runit, []string{"verify"})
	if d4 == d1 {
		t.Fatalf("renaming a referenced method kept the digest")
	}
}

func TestDigestIsStable(t *testing.T) {
	u := loadShapes(t)
	unit, _ := u.Unit("com/example/Circle.java")
	want, err := UnitDigest(u, unit, []string{"verify"})
	if err != nil {
		t.Fatal(err)
	}
	for i := range 50 {
		got, err := UnitDigest(u, unit, []string{"verify"})
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("digest %d = %s, want %s", i, got, want)
		}
	}

	// Decoding the same document again builds fresh maps.
	fromYAML, err := frontend.Decode("../frontend/testdata/shapes.yaml")
	if err != nil {
		t.Fatal(err)
	}
	again, err := frontend.Load(fromYAML)
	if err != nil {
		t.Fatal(err)
	}
	other, _ := again.Unit("com/example/Circle.java")
	if got, _ := UnitDigest(again, other, []string{"verify"}); got != want {
		t.Fatalf("same unit decoded from YAML hashed to %s, want %s", got, want)
	}
}

func TestDigestTracksTreeContent(t *testing.T) {
	u := loadShapes(t)
	unit, _ := u.Unit("com/example/Square.java")
	before, _ := UnitDigest(u, unit, nil)

	var lit *frontend.Node
	unit.Root.Walk(func(n *frontend.Node) {
		if lit == nil && n.Kind == "NumberLiteral" {
			lit = n
		}
	})
	if lit == nil {
		t.Fatalf("no literal in Square")
	}
	saved := lit.Value
	lit.Value = saved + "0"
	defer func() { lit.Value = saved }()

	if after, _ := UnitDigest(u, unit, nil); after == before {
		t.Fatalf("changing a literal kept the digest")
	}
}

func TestDiskCacheRoundTripAndDrop(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Digest{1, 2, 3}
	in := &Summary{Unit: "A.java", Keys: []string{"La/A;"}, Nodes: 3}
	if err := cache.Put(key, in); err != nil {
		t.Fatal(err)
	}
	var out Summary
	if ok, err := cache.Get(key, &out); !ok || err != nil {
		t.Fatalf("get: %v %v", ok, err)
	}
	if out.Unit != "A.java" || out.Digest != key || out.Schema != diskCacheSchemaVersion {
		t.Fatalf("summary %+v", out)
	}
	if ok, _ := cache.Get(Digest{9}, &out); ok {
		t.Fatalf("unexpected hit")
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := cache.Get(key, &out); ok {
		t.Fatalf("entry survived DropAll")
	}
	var nilCache *DiskCache
	if ok, err := nilCache.Get(key, &out); ok || err != nil {
		t.Fatalf("nil cache should miss")
	}
}
