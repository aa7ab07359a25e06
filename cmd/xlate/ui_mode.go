package main

import (
	"fmt"
	"os"
	"strings"
)

// useLiveUI decides whether run draws the progress view. "auto" draws only
// when out is a terminal and tracing is not also writing to stderr.
func useLiveUI(value string, out *os.File, tracingToStderr bool) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return out != nil && isTerminal(out) && !tracingToStderr, nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}
