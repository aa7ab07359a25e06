package main

import (
	"fmt"
	"slices"

	"xlate/internal/frontend"
	"xlate/internal/pass"
)

// loadUniverse decodes and loads the document at path.
func loadUniverse(path string) (*frontend.Universe, error) {
	doc, err := frontend.Decode(path)
	if err != nil {
		return nil, err
	}
	u, err := frontend.Load(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return u, nil
}

// selectUnits returns the named units in document order, or all of them
// when names is empty.
func selectUnits(u *frontend.Universe, names []string) ([]*frontend.Unit, error) {
	all := u.Units()
	if len(names) == 0 {
		return all, nil
	}
	for _, name := range names {
		if _, ok := u.Unit(name); !ok {
			return nil, fmt.Errorf("no unit %q in document", name)
		}
	}
	out := make([]*frontend.Unit, 0, len(names))
	for _, unit := range all {
		if slices.Contains(names, unit.Name) {
			out = append(out, unit)
		}
	}
	return out, nil
}

var knownPasses = map[string]func() pass.Pass{
	"canonicalize": pass.Canonicalize,
	"verify":       pass.Verify,
	"index":        pass.Index,
}

// buildPipeline assembles the named passes; no names selects the default
// pipeline.
func buildPipeline(names []string) (*pass.Pipeline, error) {
	if len(names) == 0 {
		return pass.Default(), nil
	}
	passes := make([]pass.Pass, 0, len(names))
	for _, name := range names {
		mk, ok := knownPasses[name]
		if !ok {
			return nil, fmt.Errorf("unknown pass %q (known: canonicalize, verify, index)", name)
		}
		passes = append(passes, mk())
	}
	return pass.NewPipeline(passes...)
}
