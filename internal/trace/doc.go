// Package trace records what the translator is doing while it runs.
//
// Events are grouped into spans. The driver opens one span per run, one per
// translation unit and one per pass, so a stuck pass shows up as a begin
// event without its matching end.
//
// # Usage
//
//	xlate run --trace=- --trace-level=detail shapes.json
//
// # Tracers
//
//   - Nop: used when tracing is off
//   - StreamTracer: writes each event as it arrives
//   - RingTracer: keeps the most recent events for a post-mortem dump
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: ring dumps on failure only
//   - LevelPhase: driver and unit boundaries
//   - LevelDetail: adds pass boundaries
//   - LevelDebug: adds node-level events
//
// # Context
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "verify", parent)
//	defer span.End("")
package trace
