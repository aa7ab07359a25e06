package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"xlate/internal/driver"
)

func TestProgressModelTracksUnits(t *testing.T) {
	m := NewProgressModel("translate", []string{"A.java", "B.java"}, nil)
	feed := func(ev driver.Event) {
		m.Update(eventMsg(ev))
	}
	feed(driver.Event{Unit: "A.java", Stage: driver.StagePasses, Status: driver.StatusWorking})
	if got := m.Percent(); got != 0.25 {
		t.Fatalf("percent = %v", got)
	}
	feed(driver.Event{Unit: "A.java", Stage: driver.StageSummarize, Status: driver.StatusDone})
	feed(driver.Event{Unit: "B.java", Stage: driver.StageConvert, Status: driver.StatusError, Err: errors.New("x")})
	feed(driver.Event{Unit: "B.java", Stage: driver.StagePasses, Status: driver.StatusWorking})
	feed(driver.Event{Unit: "missing", Stage: driver.StagePasses, Status: driver.StatusWorking})

	if m.Percent() != 1 || m.Failed() != 1 {
		t.Fatalf("percent %v failed %d", m.Percent(), m.Failed())
	}
	view := m.View()
	if !strings.Contains(view, "(2/2)") || !strings.Contains(view, "error") || !strings.Contains(view, "done") {
		t.Fatalf("view:\n%s", view)
	}

	_, cmd := m.Update(closedMsg{})
	if cmd == nil {
		t.Fatalf("closing should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("com/example/Circle.java", 10); got != "com/exa..." {
		t.Fatalf("got %q", got)
	}
	if got := Truncate("短い名前です", 6); got != "短..." {
		t.Fatalf("wide runes: %q", got)
	}
	if Truncate("abc", 0) != "abc" || Truncate("abcdef", 2) != "ab" {
		t.Fatalf("edge widths")
	}
}
