package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"kangaroo/internal/driver"
	"kangaroo/internal/repl"
	"kangaroo/internal/source"
	"kangaroo/internal/ui"
)

type parseDirOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	err     error
}

// runParseDirWithUI runs ParseDir while a progress view follows its events.
func runParseDirWithUI(ctx context.Context, dir string, opts driver.Options, jobs int, out io.Writer) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan parseDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.ParseDir(ctx, dir, optsCopy, jobs)
		outcomeCh <- parseDirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("parse "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out))
	_, uiErr := program.Run()
	// UI мог выйти раньше (ctrl+c): дочитываем события, чтобы ParseDir не заблокировался
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}

// runREPLWithUI runs the full-screen shell until the user quits.
func runREPLWithUI(ctx context.Context, cfg repl.Config, in io.Reader, out io.Writer) error {
	model := ui.NewREPLModel(ctx, cfg)
	program := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return err
	}
	if withErr, ok := final.(interface{ Err() error }); ok {
		return withErr.Err()
	}
	return nil
}
