package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestColoredKeepsText(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	if got := Colored(); got != Version {
		t.Fatalf("Colored() = %q, want %q", got, Version)
	}
}

func TestInfoIncludesOverrides(t *testing.T) {
	origVersion, origCommit, origMsg, origDate := Version, GitCommit, GitMessage, BuildDate
	defer func() { Version, GitCommit, GitMessage, BuildDate = origVersion, origCommit, origMsg, origDate }()

	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()
	Version, GitCommit, GitMessage, BuildDate = "1.2.3", "abc123", "fix keys", "2024-01-15T10:30:00Z"
	info := Info()
	for _, want := range []string{"xlate 1.2.3", "commit: abc123 (fix keys)", "built:  2024-01-15T10:30:00Z"} {
		if !strings.Contains(info, want) {
			t.Fatalf("Info() missing %q:\n%s", want, info)
		}
	}

	GitCommit, BuildDate = "", ""
	if strings.Contains(Info(), "commit") {
		t.Fatalf("empty commit should be omitted")
	}
}
