package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/atomicstack/mention-popup/internal/app"
	"github.com/atomicstack/mention-popup/internal/directory"
	"github.com/atomicstack/mention-popup/internal/mention"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envDirectory      = "MENTION_POPUP_DIRECTORY"
	envWatchDirectory = "MENTION_POPUP_WATCH_DIRECTORY"
	envTrigger        = "MENTION_POPUP_TRIGGER"
	envMaxCandidates  = "MENTION_POPUP_MAX_CANDIDATES"
	envMatch          = "MENTION_POPUP_MATCH"
	envDark           = "MENTION_POPUP_DARK"
	envLoad           = "MENTION_POPUP_LOAD"
	envExport         = "MENTION_POPUP_EXPORT"
	envWidth          = "MENTION_POPUP_WIDTH"
	envHeight         = "MENTION_POPUP_HEIGHT"
	envPopupOffsetX   = "MENTION_POPUP_POPUP_OFFSET_X"
	envPopupOffsetY   = "MENTION_POPUP_POPUP_OFFSET_Y"
	envTrace          = "MENTION_POPUP_TRACE"
	envLogFile        = "MENTION_POPUP_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("mention-popup", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	dirPath := fs.String("directory", envOrDefault(env, envDirectory, ""), "path to a TOML or JSON directory of mentionable users (built-in list when empty)")
	watch := fs.Bool("watch-directory", envOrBool(env, envWatchDirectory, false), "reload the directory file when it changes")
	trigger := fs.String("trigger", envOrDefault(env, envTrigger, string(mention.DefaultTrigger)), "character that opens the mention popup")
	maxCandidates := fs.Int("max-candidates", envOrInt(env, envMaxCandidates, directory.MaxCandidates), "maximum number of candidates shown")
	match := fs.String("match", envOrDefault(env, envMatch, string(directory.MatchSubstring)), "candidate matching: substring or fuzzy")
	dark := fs.Bool("dark", envOrBool(env, envDark, false), "start in dark mode")
	load := fs.String("load", envOrDefault(env, envLoad, ""), "document to open (.html keeps mentions, anything else is plain text)")
	export := fs.String("export", envOrDefault(env, envExport, string(app.ExportHTML)), "format written to stdout on exit: html, text or markdown")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	offsetX := fs.Int("popup-offset-x", envOrInt(env, envPopupOffsetX, 2), "popup column used when the trigger cannot be located on screen")
	offsetY := fs.Int("popup-offset-y", envOrInt(env, envPopupOffsetY, 2), "popup row used when the trigger cannot be located on screen")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *maxCandidates < 1 {
		return Config{}, fmt.Errorf("max-candidates must be >= 1 (got %d)", *maxCandidates)
	}
	if *offsetX < 0 || *offsetY < 0 {
		return Config{}, fmt.Errorf("popup offsets must be >= 0 (got %d,%d)", *offsetX, *offsetY)
	}
	triggerRune, err := parseTrigger(*trigger)
	if err != nil {
		return Config{}, err
	}
	matchMode, err := directory.ParseMatchMode(*match)
	if err != nil {
		return Config{}, err
	}
	exportFormat, err := app.ParseExportFormat(*export)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			DirectoryPath:  *dirPath,
			WatchDirectory: *watch,
			Trigger:        triggerRune,
			MaxCandidates:  *maxCandidates,
			Match:          matchMode,
			Dark:           *dark,
			LoadPath:       *load,
			Export:         exportFormat,
			Width:          *width,
			Height:         *height,
			FallbackX:      *offsetX,
			FallbackY:      *offsetY,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"directory":      *dirPath,
			"watchDirectory": strconv.FormatBool(*watch),
			"trigger":        string(triggerRune),
			"maxCandidates":  strconv.Itoa(*maxCandidates),
			"match":          string(matchMode),
			"dark":           strconv.FormatBool(*dark),
			"load":           *load,
			"export":         string(exportFormat),
			"width":          strconv.Itoa(*width),
			"height":         strconv.Itoa(*height),
			"popupOffsetX":   strconv.Itoa(*offsetX),
			"popupOffsetY":   strconv.Itoa(*offsetY),
			"trace":          strconv.FormatBool(*trace),
			"logFile":        *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseTrigger(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("trigger must be a single character (got %q)", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if unicode.IsSpace(r) || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return 0, fmt.Errorf("trigger must not be whitespace, a letter or a digit (got %q)", s)
	}
	return r, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// ErrWatchWithoutDirectory is returned when file watching is requested for
// the built-in directory.
var ErrWatchWithoutDirectory = errors.New("watch-directory requires -directory")

// Validate ensures the options make sense together.
func Validate(cfg Config) error {
	if cfg.App.WatchDirectory && strings.TrimSpace(cfg.App.DirectoryPath) == "" {
		return ErrWatchWithoutDirectory
	}
	if path := cfg.App.DirectoryPath; path != "" {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("directory file: %w", err)
		}
	}
	return nil
}
