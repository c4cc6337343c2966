package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"

	"tagfill/src/features/config"
)

// Setup builds the application logger on top of the given sink. The
// sink is injectable so tests can capture and assert on emitted events
// instead of parsing stdout.
func Setup(w io.Writer, cfg config.Logger) *slog.Logger {
	var formatter log.Formatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		formatter = log.TextFormatter
	}

	level := log.InfoLevel
	switch cfg.Level {
	case "debug":
		level = log.DebugLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "tagfill",
		Formatter:       formatter,
		Level:           level,
	})

	return slog.New(handler)
}
