package shared

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// SetupLogger configures a charmbracelet logger on stderr. Unknown levels
// fall back to info.
func SetupLogger(level, format string) *log.Logger {
	return NewLogger(os.Stderr, level, format)
}

// NewLogger builds a logger writing to w
func NewLogger(w io.Writer, level, format string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	formatter := log.TextFormatter
	if format == "json" {
		formatter = log.JSONFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// SetColor switches lipgloss styling on or off for the whole process
func SetColor(enabled bool) {
	if enabled {
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}
