package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-backoffice/components/records"
)

var testNow = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

func testDataset() *records.Dataset {
	return records.NewDataset(records.DatasetOptions{
		Seed:     7,
		Now:      testNow,
		Orders:   40,
		Sellers:  8,
		Team:     6,
		Sessions: 20,
	})
}

func widgetContext(def string, cfg map[string]any) WidgetContext {
	return WidgetContext{
		Instance: WidgetInstance{ID: "w-" + def, DefinitionID: def, Configuration: cfg},
		Now:      testNow,
	}
}

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func (r *recordingTelemetry) has(event string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == event {
			return true
		}
	}
	return false
}
