// Package monitoring carries structured logging and Prometheus metrics for
// the pipeline and the API.
package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging with pipeline-aware helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger at the given level.
func NewLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
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

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// StageLogger logs one completed pipeline stage.
func (l *Logger) StageLogger(stage string, items int, duration time.Duration) {
	l.Info("Pipeline Stage Completed",
		"stage", stage,
		"items", items,
		"duration_ms", duration.Milliseconds(),
	)
}

// RunLogger logs one completed pipeline run.
func (l *Logger) RunLogger(version int, actors int, duration time.Duration, err error) {
	if err != nil {
		l.Error("Pipeline Run Failed",
			"error", err.Error(),
			"duration_ms", duration.Milliseconds(),
		)
		return
	}
	l.Info("Pipeline Run Completed",
		"version", version,
		"actors", actors,
		"duration_ms", duration.Milliseconds(),
	)
}

// RequestLogger logs HTTP request details.
func (l *Logger) RequestLogger(method, path, ip string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}
