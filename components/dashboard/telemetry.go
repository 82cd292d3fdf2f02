package dashboard

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// LoggerTelemetry writes telemetry events as structured log entries.
// Events ending in "_error" are logged at warn level.
type LoggerTelemetry struct {
	logger *zap.Logger
}

// NewLoggerTelemetry wraps a zap logger. A nil logger discards events.
func NewLoggerTelemetry(logger *zap.Logger) *LoggerTelemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggerTelemetry{logger: logger.Named("telemetry")}
}

// Record implements Telemetry.
func (t *LoggerTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys)+1)
	fields = append(fields, zap.String("event", event))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, payload[k]))
	}
	if strings.HasSuffix(event, "_error") {
		t.logger.Warn(event, fields...)
		return
	}
	t.logger.Debug(event, fields...)
}
