// Package version holds build metadata for the xlate CLI. The variables are
// meant to be set with -ldflags "-X xlate/internal/version.Version=...".
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	Version    = "0.1.0-dev"
	GitCommit  = ""
	GitMessage = ""
	BuildDate  = "" // ISO-8601
)

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders Version with major, minor and patch in distinct colours.
// Anything after the patch number is left plain.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", len(partColors))
	for i, p := range parts {
		parts[i] = partColors[i].Sprint(p)
	}
	out := strings.Join(parts, ".")
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Info is the multi-line text printed by "xlate version".
func Info() string {
	var sb strings.Builder
	sb.WriteString("xlate ")
	sb.WriteString(Colored())
	sb.WriteByte('\n')
	if GitCommit != "" {
		sb.WriteString("commit: " + GitCommit)
		if GitMessage != "" {
			sb.WriteString(" (" + GitMessage + ")")
		}
		sb.WriteByte('\n')
	}
	if BuildDate != "" {
		sb.WriteString("built:  " + BuildDate + "\n")
	}
	return sb.String()
}
