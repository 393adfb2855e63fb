package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"tubescript/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
	Development bool
}

// New constructs a slog logger using the provided options. Each output
// gets its own handler; console output is colorized only on terminals.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	writers, err := openWriters(defaultSlice(opts.OutputPaths, []string{"stderr"}))
	if err != nil {
		return nil, err
	}

	addSource := opts.Development || level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	handlers := make([]slog.Handler, 0, len(writers))
	for _, w := range writers {
		switch format {
		case "json":
			handlers = append(handlers, newJSONHandler(w, levelVar, addSource))
		case "console":
			handlers = append(handlers, newConsoleHandler(w, levelVar, addSource, isTerminal(w)))
		default:
			return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
		}
	}
	if len(handlers) == 1 {
		return slog.New(handlers[0]), nil
	}
	return slog.New(fanoutHandler(handlers)), nil
}

// NewFromConfig creates a logger using application config defaults. Interactive
// commands log to stderr and the log file; when console is false (native
// messaging, where stdout and stderr belong to the browser) only the log file
// receives output.
func NewFromConfig(cfg *config.Config, console bool) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console", OutputPaths: []string{"stderr"}})
	}

	var outputPaths []string
	if console {
		outputPaths = append(outputPaths, "stderr")
	}
	if cfg.Paths.LogDir != "" {
		if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
		outputPaths = append(outputPaths, cfg.LogPath())
	}
	if len(outputPaths) == 0 {
		return NewNop(), nil
	}

	return New(Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputPaths,
	})
}

// parseLevel accepts slog level names (with offsets such as "debug+2") and
// "warning". Unknown values fall back to info.
func parseLevel(value string) slog.Level {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "warning") {
		return slog.LevelWarn
	}
	var level slog.Level
	if value == "" || level.UnmarshalText([]byte(value)) != nil {
		return slog.LevelInfo
	}
	return level
}

func defaultSlice(value []string, fallback []string) []string {
	if len(value) == 0 {
		return append([]string(nil), fallback...)
	}
	return append([]string(nil), value...)
}

func openWriters(paths []string) ([]io.Writer, error) {
	seen := map[string]struct{}{}
	var writers []io.Writer

	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}

		switch trimmed {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if err := ensureLogDir(trimmed); err != nil {
				return nil, err
			}
			file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
			if err != nil {
				return nil, fmt.Errorf("open log file %s: %w", trimmed, err)
			}
			writers = append(writers, file)
		}
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}
	return writers, nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
