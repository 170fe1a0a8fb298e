package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"asmfmt/internal/driver"
	"asmfmt/internal/ui"
)

type formatOutcome struct {
	results []driver.FormatResult
	err     error
}

func runFormatWithUI(ctx context.Context, paths []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.FormatPaths(ctx, paths, optsCopy)
		outcomeCh <- formatOutcome{results: res, err: err}
		close(events)
	}()

	// Directories expand into files as they are queued.
	model := ui.NewProgressModel("asmfmt", nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// The view may quit early; keep the workers unblocked.
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
