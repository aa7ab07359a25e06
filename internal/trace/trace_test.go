package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestLevelFiltersScopes(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopePass) || !LevelPhase.ShouldEmit(ScopeUnit) {
		t.Fatalf("phase level should stop at units")
	}
	if !LevelDetail.ShouldEmit(ScopePass) || LevelDetail.ShouldEmit(ScopeNode) {
		t.Fatalf("detail level should stop at passes")
	}
	if LevelError.ShouldEmit(ScopeDriver) || !LevelDebug.ShouldEmit(ScopeNode) {
		t.Fatalf("error/debug filtering wrong")
	}
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel: %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)

	root := Begin(tr, ScopeDriver, "translate", 0)
	unit := Begin(tr, ScopeUnit, "unit:A.java", root.ID())
	Begin(tr, ScopeNode, "ignored", unit.ID()).End("")
	unit.WithExtra("nodes", "12").End("ok")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Scope != "unit" || ev.ParentID != root.ID() || ev.Extra["nodes"] != "12" || ev.Detail != "ok" {
		t.Fatalf("unit end event %+v", ev)
	}
}

func TestInertSpanPassesParentThrough(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	unit := Begin(tr, ScopeUnit, "unit", 0)
	pass := Begin(tr, ScopePass, "verify", unit.ID())
	if pass.ID() != unit.ID() {
		t.Fatalf("filtered span id %d, want parent %d", pass.ID(), unit.ID())
	}
	if d := pass.End(""); d != 0 {
		t.Fatalf("inert span reported duration %v", d)
	}
	unit.End("")
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Fatalf("lines = %d:\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "→ unit") {
		t.Fatalf("text format: %s", buf.String())
	}
}

func TestRingKeepsNewest(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeNode, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Name != "c" || snap[2].Name != "e" {
		t.Fatalf("snapshot %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "•") != 3 {
		t.Fatalf("dump: %s", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	var buf bytes.Buffer
	m := NewMultiTracer(LevelDetail, NewStreamTracer(&buf, LevelDetail, FormatText), NewRingTracer(8, LevelDetail))
	Begin(m, ScopePass, "index", 0).End("")
	ring, ok := m.Ring()
	if !ok || len(ring.Snapshot()) != 2 {
		t.Fatalf("ring did not receive events")
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("stream did not receive events")
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context should yield Nop")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	span := Begin(FromContext(ctx), ScopeDriver, "translate", 0)
	ctx = WithSpan(ctx, span)
	if SpanFromContext(ctx) != span.ID() {
		t.Fatalf("span id not propagated")
	}
}

func TestNewSelectsTracer(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("off level should yield Nop")
	}
	tr, err = New(Config{Level: LevelDetail, Mode: ModeRing, RingSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*RingTracer); !ok {
		t.Fatalf("ring mode built %T", tr)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelDetail, Mode: ModeBoth, Output: &buf, OutputPath: "trace.ndjson"})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeDriver, "hello", "", 0)
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected NDJSON from path suffix, got %q", buf.String())
	}
	if FormatFromPath("t.log") != FormatText {
		t.Fatalf("plain path should select text")
	}
}

func TestHeartbeatStopIsIdempotent(t *testing.T) {
	var h *Heartbeat
	h.Stop()
	h = StartHeartbeat(NewRingTracer(4, LevelPhase), 0)
	if h != nil {
		t.Fatalf("zero interval should not start a heartbeat")
	}
}
