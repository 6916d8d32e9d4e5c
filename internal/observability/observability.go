// Package observability configures the tool's own diagnostic logging.
// Debugging reports (the actual command output) go to stdout; slog output
// goes to stderr so the two never interleave in a pipe.
package observability

import (
	"fmt"
	"log/slog"
	"os"
)

// Instrument installs the global slog logger with the given level and
// format ("text" or "json").
func Instrument(level slog.Level, format string) error {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("unsupported log format: %s", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
