package commands

import (
	"context"
	"maps"

	"github.com/goliatone/go-backoffice/components/tableview"
)

// Telemetry receives an event after a command changed table state.
// dashboard.LoggerTelemetry satisfies it.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// Table command events.
const (
	EventTableChanged  = "backoffice.table.event"
	EventTableFiltered = "backoffice.table.filter"
)

// tableRecorder reports the table code with the paging counters of the
// resulting snapshot. A nil telemetry drops every event.
type tableRecorder struct {
	telemetry Telemetry
}

func (r tableRecorder) record(ctx context.Context, event, table string, snap tableview.Snapshot, fields map[string]any) {
	if r.telemetry == nil {
		return
	}
	payload := map[string]any{
		"table":      table,
		"page_index": snap.PageIndex,
		"page_size":  snap.PageSize,
		"filtered":   snap.Filtered,
		"total":      snap.Total,
	}
	maps.Copy(payload, fields)
	r.telemetry.Record(ctx, event, payload)
}
