package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/mention-popup/internal/app"
	"github.com/atomicstack/mention-popup/internal/config"
	"github.com/atomicstack/mention-popup/internal/logging"
	"github.com/atomicstack/mention-popup/internal/logging/events"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg, probeTerminal(os.Stdout)))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload records the editor settings the session starts with.
func startupTracePayload(cfg config.Config, tty terminal) map[string]interface{} {
	directoryPath := cfg.App.DirectoryPath
	if directoryPath == "" {
		directoryPath = "builtin"
	}
	return map[string]interface{}{
		"argv":           cfg.Args,
		"flags":          cfg.Flags,
		"trigger":        string(cfg.App.Trigger),
		"directory":      directoryPath,
		"watchDirectory": cfg.App.WatchDirectory,
		"match":          string(cfg.App.Match),
		"maxCandidates":  cfg.App.MaxCandidates,
		"load":           cfg.App.LoadPath,
		"export":         string(cfg.App.Export),
		"dark":           cfg.App.Dark,
		"popupFallback":  []int{cfg.App.FallbackX, cfg.App.FallbackY},
		"viewport":       resolveViewport(cfg.App, tty),
		"logFile":        cfg.Logging.FilePath,
	}
}

// terminal describes the descriptor the editor is drawn on.
type terminal struct {
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

func probeTerminal(f *os.File) terminal {
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return terminal{}
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return terminal{IsTerminal: true, Error: err.Error()}
	}
	return terminal{IsTerminal: true, Width: width, Height: height}
}

type viewport struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Source string `json:"source"`
}

// resolveViewport reports the size the editor starts drawing at. Explicit
// -width/-height win per dimension; a missing one comes from the terminal,
// and without a terminal it stays 0 until the first resize event.
func resolveViewport(cfg app.Config, tty terminal) viewport {
	v := viewport{Width: cfg.Width, Height: cfg.Height, Source: "flags"}
	if v.Width > 0 && v.Height > 0 {
		return v
	}
	if !tty.IsTerminal || tty.Error != "" {
		v.Source = "window"
		return v
	}
	if v.Width == 0 {
		v.Width = tty.Width
	}
	if v.Height == 0 {
		v.Height = tty.Height
	}
	v.Source = "terminal"
	return v
}
