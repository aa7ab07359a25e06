package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"xlate/internal/driver"
	"xlate/internal/frontend"
	"xlate/internal/ui"
)

type translateOutcome struct {
	results []driver.Result
	err     error
}

// translateWithUI runs the driver in the background while the progress view
// consumes its events.
func translateWithUI(ctx context.Context, title string, u *frontend.Universe, units []*frontend.Unit, opts driver.Options) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	done := make(chan translateOutcome, 1)
	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.Translate(ctx, u, units, opts)
		close(events)
		done <- translateOutcome{results: results, err: err}
	}()

	names := make([]string, len(units))
	for i, unit := range units {
		names[i] = unit.Name
	}
	program := tea.NewProgram(ui.NewProgressModel(title, names, events), tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// Keep draining so the driver never blocks on a full channel.
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-done
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
