package main

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"xlate/internal/binding"
	"xlate/internal/convert"
	"xlate/internal/frontend"
	"xlate/internal/tree"
)

type keyRow struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

func newKeysCmd() *cobra.Command {
	var (
		unitName string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "keys <document>",
		Short: "List binding keys",
		Long:  "List the key of every type, method and variable the document declares, or with --unit the keys one unit declares or uses, in order of first appearance.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := loadUniverse(args[0])
			if err != nil {
				return err
			}
			var rows []keyRow
			if unitName != "" {
				rows, err = unitKeyRows(u, unitName)
				if err != nil {
					return err
				}
			} else {
				rows = universeKeyRows(u)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			writeKeyTable(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&unitName, "unit", "", "only keys declared or used by this unit")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func universeKeyRows(u *frontend.Universe) []keyRow {
	var rows []keyRow
	for _, t := range u.DeclaredTypes() {
		rows = append(rows, rowFor(t))
	}
	for _, m := range u.Methods() {
		rows = append(rows, rowFor(m))
	}
	for _, v := range u.Variables() {
		rows = append(rows, rowFor(v))
	}
	return rows
}

func unitKeyRows(u *frontend.Universe, name string) ([]keyRow, error) {
	unit, ok := u.Unit(name)
	if !ok {
		return nil, fmt.Errorf("no unit %q in document", name)
	}
	root, err := convert.Unit(u, unit, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	idx := tree.BuildIndex(root)
	var rows []keyRow
	for _, key := range idx.Keys() {
		if b, ok := u.Lookup(key); ok {
			rows = append(rows, rowFor(b))
			continue
		}
		rows = append(rows, keyRow{Kind: "?", Key: key})
	}
	return rows, nil
}

func rowFor(b binding.Binding) keyRow {
	return keyRow{Kind: b.Kind().String(), Name: b.Name(), Key: b.Key()}
}

// writeKeyTable aligns by display width so wide identifiers line up.
func writeKeyTable(w io.Writer, rows []keyRow) {
	kindW, nameW := len("KIND"), len("NAME")
	for _, r := range rows {
		kindW = max(kindW, runewidth.StringWidth(r.Kind))
		nameW = max(nameW, runewidth.StringWidth(r.Name))
	}
	line := func(kind, name, key string) {
		fmt.Fprintf(w, "%s  %s  %s\n", runewidth.FillRight(kind, kindW), runewidth.FillRight(name, nameW), key)
	}
	line("KIND", "NAME", "KEY")
	line(strings.Repeat("-", kindW), strings.Repeat("-", nameW), "---")
	for _, r := range rows {
		line(r.Kind, r.Name, r.Key)
	}
}
