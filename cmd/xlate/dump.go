package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xlate/internal/convert"
	"xlate/internal/tree"
)

func newDumpCmd() *cobra.Command {
	var (
		units      []string
		keys       bool
		provenance bool
	)
	cmd := &cobra.Command{
		Use:   "dump <document>",
		Short: "Print the converted tree of each unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := loadUniverse(args[0])
			if err != nil {
				return err
			}
			selected, err := selectUnits(u, units)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			opts := tree.DumpOptions{Keys: keys, Provenance: provenance}
			for i, unit := range selected {
				root, err := convert.Unit(u, unit, nil)
				if err != nil {
					return fmt.Errorf("%s: %w", unit.Name, err)
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				if !quiet(cmd) {
					fmt.Fprintf(out, "# %s\n", unit.Name)
				}
				if err := tree.FprintWithOptions(out, root, opts); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&units, "unit", nil, "only dump the named units")
	cmd.Flags().BoolVar(&keys, "keys", false, "append binding keys")
	cmd.Flags().BoolVar(&provenance, "provenance", false, "append source spans")
	return cmd
}
