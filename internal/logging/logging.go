// Package logging builds the charmbracelet logger shared by the hosts.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a timestamped logger writing to w. Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "vrarcade",
	})
}

// Discard returns a logger that drops everything. Used by tests and by
// the local terminal host, whose stdout belongs to the canvas.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
