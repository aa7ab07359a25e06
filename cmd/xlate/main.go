package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"xlate/internal/version"
)

func newRootCmd() *cobra.Command {
	var session *traceSession
	root := &cobra.Command{
		Use:           "xlate",
		Short:         "Translate front-end documents through the xlate IR",
		Long:          "xlate converts the original syntax trees of a front-end document into its mutable IR, runs the pass pipeline and reports the bindings each unit declares and uses.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyColorMode(cmd); err != nil {
				return err
			}
			if len(args) > 0 {
				cfg, ok, err := discoverConfig(args[0])
				if err != nil {
					return err
				}
				if ok {
					cmd.SetContext(withConfig(cmd.Context(), cfg))
				}
			}
			s, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			session = s
			cmd.SetContext(withSession(cmd.Context(), s))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			session.Close(cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show per-phase timings")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.Duration("trace-heartbeat", 0, "heartbeat interval, 0 to disable")

	root.AddCommand(newDumpCmd(), newKeysCmd(), newRunCmd(), newVersionCmd())
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func applyColorMode(cmd *cobra.Command) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	switch strings.ToLower(mode) {
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Flags().GetBool("quiet")
	return err == nil && q
}
