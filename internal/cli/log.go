// Package cli implements the labeller command-line interface.
//
// The root command enumerates the storage locations of a building and
// writes their labels as a comma-separated grid, or as an HTML page of
// Code 39 barcodes. Subcommands list the known buildings, browse them
// interactively, manage the barcode image directory and serve the same
// pipeline over HTTP. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - labeller: Generate labels for a building
//   - buildings: List the known buildings and their label counts
//   - browse: Pick a building interactively and generate its labels
//   - cache: Manage the barcode image directory
//   - serve: Serve labels, sheets and barcodes over HTTP
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Status lines
// and logs go to stderr so that stdout carries only label output.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Generated 27372 labels (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
