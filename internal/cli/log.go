// Package cli implements the jsoninvert command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log.
// Diagnostics meant for the user (collisions, success, failures) are
// printed to standard output; log lines go to standard error.
//
// # Commands
//
// The main commands are:
//   - convert: Invert a JSON object file
//   - config: Show the configuration file location and effective settings
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Setting
// verbose = true in the config file has the same effect for convert.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsoninvert/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level along with the elapsed time since progress was created.
// Example output: "Converted 42 entries (3ms)"
func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Observability
// =============================================================================

// LogHooks reports conversion events to a logger at debug level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks creates hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

// OnConvertStart logs the input being converted.
func (h *LogHooks) OnConvertStart(_ context.Context, input string) {
	h.Logger.Debug("convert start", "input", input)
}

// OnCollision logs an overwritten entry.
func (h *LogHooks) OnCollision(_ context.Context, key, previous, current string) {
	h.Logger.Debug("collision", "value", key, "previous", previous, "current", current)
}

// OnConvertComplete logs the outcome of a conversion.
func (h *LogHooks) OnConvertComplete(_ context.Context, input, output string, entries int, duration time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("convert failed", "input", input, "duration", duration, "err", err)
		return
	}
	h.Logger.Debug("convert complete", "input", input, "output", output, "entries", entries, "duration", duration)
}

var _ observability.ConvertHooks = (*LogHooks)(nil)
