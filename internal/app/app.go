package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/atomicstack/mention-popup/internal/directory"
	"github.com/atomicstack/mention-popup/internal/logging/events"
	"github.com/atomicstack/mention-popup/internal/popup"
	"github.com/atomicstack/mention-popup/internal/ui"
)

const watchInterval = 500 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	DirectoryPath  string
	WatchDirectory bool
	Trigger        rune
	MaxCandidates  int
	Match          directory.MatchMode
	Dark           bool
	LoadPath       string
	Export         ExportFormat
	Width          int
	Height         int
	FallbackX      int
	FallbackY      int
}

// Run bootstraps and executes the Bubble Tea program, then writes the
// document to stdout in the configured export format.
func Run(cfg Config) error {
	return run(cfg, os.Stdout)
}

func run(cfg Config, out io.Writer) error {
	entries, err := directory.Load(cfg.DirectoryPath)
	if err != nil {
		return fmt.Errorf("load directory: %w", err)
	}
	dir := directory.New(entries, directory.WithMatchMode(cfg.Match), directory.WithLimit(cfg.MaxCandidates))
	events.Directory.Load(cfg.DirectoryPath, dir.Len(), string(dir.Mode()), dir.Limit())

	doc, err := LoadDocument(cfg.LoadPath, cfg.Trigger)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	var watcher *directory.Watcher
	if cfg.WatchDirectory && cfg.DirectoryPath != "" {
		watcher, err = directory.NewWatcher(cfg.DirectoryPath, watchInterval)
		if err != nil {
			return fmt.Errorf("watch directory: %w", err)
		}
		defer watcher.Stop()
	}

	zones := zone.New()
	defer zones.Close()

	positioner := popup.DefaultPositioner()
	positioner.Fallback = popup.Point{X: cfg.FallbackX, Y: cfg.FallbackY}

	model := ui.NewModel(ui.Options{
		Document:   doc,
		Directory:  dir,
		Watcher:    watcher,
		Trigger:    cfg.Trigger,
		Dark:       cfg.Dark,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Positioner: positioner,
		Zones:      zones,
	})
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}

	final := model.Document()
	rendered, err := Export(final, cfg.Export, model.Trigger())
	if err != nil {
		return fmt.Errorf("export document: %w", err)
	}
	events.App.Export(string(cfg.Export), len(rendered), len(final.Mentions()), !doc.Equal(final))
	_, err = fmt.Fprintln(out, rendered)
	return err
}
