package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured JSON logging for engine runs
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new structured logger
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{Logger: slog.New(handler)}
}

// RunStarted logs the start of a detection run
func (l *Logger) RunStarted(runID string, awards, contracts, patents int) {
	l.Info("Run Started",
		"run_id", runID,
		"awards", awards,
		"contracts", contracts,
		"patents", patents,
	)
}

// RunCompleted logs the end of a detection run with its summary counts
func (l *Logger) RunCompleted(runID string, detections int, duration time.Duration) {
	l.Info("Run Completed",
		"run_id", runID,
		"detections", detections,
		"duration_ms", duration.Milliseconds(),
	)
}

// IndexBuilt logs contract index construction
func (l *Logger) IndexBuilt(contracts, vendors int, duration time.Duration) {
	l.Info("Contract Index Built",
		"contracts", contracts,
		"vendors", vendors,
		"duration_ms", duration.Milliseconds(),
	)
}

// RecordSkipped logs a malformed input record that was isolated
func (l *Logger) RecordSkipped(kind, id, reason string) {
	l.Warn("Record Skipped",
		"kind", kind,
		"id", id,
		"reason", reason,
	)
}
