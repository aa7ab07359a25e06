// Package ui renders live translation progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"xlate/internal/driver"
)

const statusWidth = 12

type unitRow struct {
	name   string
	label  string
	stage  driver.Stage
	status driver.Status
}

func (r unitRow) finished() bool {
	switch r.status {
	case driver.StatusDone, driver.StatusCached, driver.StatusError:
		return true
	}
	return false
}

// ProgressModel is a Bubble Tea model showing one row per unit. It consumes
// driver events from a channel and quits once the channel is closed.
type ProgressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []unitRow
	index   map[string]int
	failed  int
	width   int
	done    bool
}

type eventMsg driver.Event

type closedMsg struct{}

// NewProgressModel returns a model for units, in display order.
func NewProgressModel(title string, units []string, events <-chan driver.Event) *ProgressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	rows := make([]unitRow, len(units))
	index := make(map[string]int, len(units))
	for i, name := range units {
		rows[i] = unitRow{name: name, label: "queued", status: driver.StatusQueued}
		index[name] = i
	}
	return &ProgressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    rows,
		index:   index,
		width:   80,
	}
}

func (m *ProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case closedMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(10, msg.Width-4)
		}
		return m, nil
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *ProgressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.rows))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).Render(header))
	b.WriteString("\n\n")
	nameWidth := max(20, m.width-statusWidth-4)
	for _, r := range m.rows {
		status := statusStyle(r.status).Render(fmt.Sprintf("%*s", statusWidth, r.label))
		fmt.Fprintf(&b, "  %s %s\n", status, Truncate(r.name, nameWidth))
	}
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// Failed returns how many units ended in error.
func (m *ProgressModel) Failed() int { return m.failed }

func (m *ProgressModel) finished() int {
	n := 0
	for _, r := range m.rows {
		if r.finished() {
			n++
		}
	}
	return n
}

func (m *ProgressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *ProgressModel) apply(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.Unit]
	if !ok {
		return nil
	}
	r := &m.rows[idx]
	if r.finished() {
		return nil
	}
	r.stage, r.status = ev.Stage, ev.Status
	r.label = label(ev.Stage, ev.Status)
	if ev.Status == driver.StatusError {
		m.failed++
	}
	return m.bar.SetPercent(m.Percent())
}

// Percent is the overall completion, counting partial credit for units
// still in flight.
func (m *ProgressModel) Percent() float64 {
	if len(m.rows) == 0 {
		return 1
	}
	total := 0.0
	for _, r := range m.rows {
		if r.finished() {
			total++
			continue
		}
		total += stageWeight(r.stage)
	}
	return total / float64(len(m.rows))
}

func stageWeight(stage driver.Stage) float64 {
	switch stage {
	case driver.StageCache:
		return 0.05
	case driver.StageConvert:
		return 0.2
	case driver.StagePasses:
		return 0.5
	case driver.StageSummarize:
		return 0.9
	default:
		return 0
	}
}

func label(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusWorking:
		switch stage {
		case driver.StageCache:
			return "checking"
		case driver.StageConvert:
			return "converting"
		case driver.StagePasses:
			return "rewriting"
		case driver.StageSummarize:
			return "indexing"
		}
		return string(stage)
	default:
		return string(status)
	}
}

func statusStyle(status driver.Status) lipgloss.Style {
	switch status {
	case driver.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case driver.StatusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	case driver.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case driver.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

// Truncate shortens value to width display columns, marking the cut with an
// ellipsis when there is room for one.
func Truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
