package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"xlate/internal/driver"
	"xlate/internal/observ"
)

type runFlags struct {
	jobs     int
	ui       string
	cache    bool
	cacheDir string
	clear    bool
	units    []string
	passes   []string
}

// errUnitsFailed makes the process exit non-zero after the summary printed
// the individual failures.
var errUnitsFailed = errors.New("some units failed to translate")

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run <document>",
		Short: "Translate every unit of a document in parallel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, args[0], f)
		},
	}
	fl := cmd.Flags()
	fl.IntVarP(&f.jobs, "jobs", "j", 0, "parallel units (0 = GOMAXPROCS)")
	fl.StringVar(&f.ui, "ui", "auto", "live progress view (auto|on|off)")
	fl.BoolVar(&f.cache, "cache", false, "reuse summaries of unchanged units")
	fl.StringVar(&f.cacheDir, "cache-dir", "", "cache directory (default $XDG_CACHE_HOME/xlate)")
	fl.BoolVar(&f.clear, "clear-cache", false, "drop every cached summary first")
	fl.StringSliceVar(&f.units, "unit", nil, "only translate the named units")
	fl.StringSliceVar(&f.passes, "passes", nil, "pass pipeline, in order (canonicalize,verify,index)")
	return cmd
}

func runTranslate(cmd *cobra.Command, docPath string, f runFlags) error {
	cfg, _ := configFromContext(cmd.Context())
	flags := cmd.Flags()
	if !flags.Changed("jobs") && cfg.Translate.Jobs > 0 {
		f.jobs = cfg.Translate.Jobs
	}
	if !flags.Changed("passes") && len(cfg.Translate.Passes) > 0 {
		f.passes = cfg.Translate.Passes
	}
	if !flags.Changed("ui") && cfg.Translate.UI != "" {
		f.ui = cfg.Translate.UI
	}
	if !flags.Changed("cache") && cfg.Cache.Enabled {
		f.cache = true
	}
	if !flags.Changed("cache-dir") && cfg.Cache.Dir != "" {
		f.cacheDir = cfg.Cache.Dir
	}

	session := sessionFromContext(cmd.Context())
	live, err := useLiveUI(f.ui, os.Stdout, session != nil && session.toStderr)
	if err != nil {
		return err
	}
	u, err := loadUniverse(docPath)
	if err != nil {
		return err
	}
	units, err := selectUnits(u, f.units)
	if err != nil {
		return err
	}
	pipeline, err := buildPipeline(f.passes)
	if err != nil {
		return err
	}
	opts := driver.Options{Jobs: f.jobs, Pipeline: pipeline}
	if f.cache || f.clear {
		cache, err := openCache(f.cacheDir)
		if err != nil {
			return err
		}
		if f.clear {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
		}
		if f.cache {
			opts.Cache = cache
		}
	}

	started := time.Now()
	var results []driver.Result
	if live {
		results, err = translateWithUI(cmd.Context(), "translating "+docPath, u, units, opts)
	} else {
		results, err = driver.Translate(cmd.Context(), u, units, opts)
	}
	elapsed := time.Since(started)

	out := cmd.OutOrStdout()
	if !quiet(cmd) || len(driver.Failed(results)) > 0 {
		printSummary(out, results, elapsed)
	}
	if timings, _ := flags.GetBool("timings"); timings {
		printTimings(out, results)
	}
	if err != nil {
		session.DumpRing(cmd.ErrOrStderr())
		return err
	}
	if len(driver.Failed(results)) > 0 {
		session.DumpRing(cmd.ErrOrStderr())
		return errUnitsFailed
	}
	return nil
}

func openCache(dir string) (*driver.DiskCache, error) {
	if dir == "" {
		return driver.OpenDiskCache("xlate")
	}
	return driver.NewDiskCache(dir)
}

func printSummary(w io.Writer, results []driver.Result, elapsed time.Duration) {
	ok := color.New(color.FgGreen).SprintFunc()
	cached := color.New(color.FgBlue).SprintFunc()
	bad := color.New(color.FgRed, color.Bold).SprintFunc()

	var translated, hits, failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(w, "%s %s\n", bad("FAIL"), r.Err)
		case r.Cached:
			hits++
			fmt.Fprintf(w, "%s %s  nodes=%d keys=%d\n", cached("HIT "), r.Unit, r.Summary.Nodes, len(r.Summary.Keys))
		default:
			translated++
			fmt.Fprintf(w, "%s %s  nodes=%d keys=%d generated=%d\n", ok("OK  "), r.Unit, r.Summary.Nodes, len(r.Summary.Keys), r.Summary.Generated)
		}
	}
	fmt.Fprintf(w, "%d translated, %d cached, %d failed in %.1f ms\n",
		translated, hits, failed, float64(elapsed)/float64(time.Millisecond))
}

func printTimings(w io.Writer, results []driver.Result) {
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		if len(r.Timing.Phases) > 0 {
			reports = append(reports, r.Timing)
		}
	}
	if len(reports) == 0 {
		return
	}
	fmt.Fprint(w, observ.Merge(reports...).String())
}
