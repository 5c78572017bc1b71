// Package logs sets up structured logging.
package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
)

// ParseLevel maps a config level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Options configures New.
type Options struct {
	Level  slog.Level
	Writer io.Writer // terminal output, usually stderr
	File   string    // optional JSON log file, always at debug level
}

// New builds a logger that fans out to a text handler on Writer and, when
// File is set, a JSON handler on that file. The returned close func
// releases the file.
func New(o Options) (*slog.Logger, func() error, error) {
	var handlers []slog.Handler

	w := o.Writer
	if w == nil {
		w = os.Stderr
	}
	handlers = append(handlers, slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: o.Level,
	}))

	closeFn := func() error { return nil }
	if o.File != "" {
		if err := os.MkdirAll(filepath.Dir(o.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log dir: %w", err)
		}
		f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		closeFn = f.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}
