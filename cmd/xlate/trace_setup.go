package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"xlate/internal/trace"
)

// traceSession owns the tracer for one command invocation.
type traceSession struct {
	tracer    trace.Tracer
	heartbeat *trace.Heartbeat
	toStderr  bool
}

// setupTracing builds a tracer from the --trace* flags, falling back to the
// [trace] table of xlate.toml for flags left unset, and stores it in the
// command context.
func setupTracing(cmd *cobra.Command) (*traceSession, error) {
	flags := cmd.Flags()
	output, _ := flags.GetString("trace")
	levelName, _ := flags.GetString("trace-level")
	modeName, _ := flags.GetString("trace-mode")
	formatName, _ := flags.GetString("trace-format")
	ringSize, _ := flags.GetInt("trace-ring-size")
	heartbeat, _ := flags.GetDuration("trace-heartbeat")

	if cfg, ok := configFromContext(cmd.Context()); ok {
		if !flags.Changed("trace") && cfg.Trace.Output != "" {
			output = cfg.Trace.Output
		}
		if !flags.Changed("trace-level") && cfg.Trace.Level != "" {
			levelName = cfg.Trace.Level
		}
		if !flags.Changed("trace-mode") && cfg.Trace.Mode != "" {
			modeName = cfg.Trace.Mode
		}
	}

	level, err := trace.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	// --trace alone implies the phase level.
	if level == trace.LevelOff && output != "" && !flags.Changed("trace-level") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return &traceSession{tracer: trace.Nop}, nil
	}
	mode, err := trace.ParseMode(modeName)
	if err != nil {
		return nil, err
	}
	format, err := trace.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
		Heartbeat:  heartbeat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	return &traceSession{
		tracer:    tracer,
		heartbeat: trace.StartHeartbeat(tracer, heartbeat),
		toStderr:  mode != trace.ModeRing && (output == "" || output == "-"),
	}, nil
}

// DumpRing writes the ring buffer, when there is one, to w.
func (s *traceSession) DumpRing(w io.Writer) {
	if s == nil {
		return
	}
	var ring *trace.RingTracer
	switch t := s.tracer.(type) {
	case *trace.RingTracer:
		ring = t
	case *trace.MultiTracer:
		ring, _ = t.Ring()
	}
	if ring == nil {
		return
	}
	fmt.Fprintln(w, "trace: last events before failure")
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}

// Close stops the heartbeat and flushes the tracer.
func (s *traceSession) Close(errOut io.Writer) {
	if s == nil {
		return
	}
	s.heartbeat.Stop()
	if err := s.tracer.Flush(); err != nil {
		fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
	}
	if err := s.tracer.Close(); err != nil {
		fmt.Fprintf(errOut, "trace: close error: %v\n", err)
	}
}
