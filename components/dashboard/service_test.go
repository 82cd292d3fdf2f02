package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, doc *LayoutDocument, telemetry Telemetry) *Service {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, RegisterProviders(reg, ProviderDeps{Dataset: testDataset()}))
	return NewService(Options{
		Providers: reg,
		Telemetry: telemetry,
		Layout:    StaticLayout{Doc: doc},
		Now:       func() time.Time { return testNow },
	})
}

func TestConfigureLayoutResolvesDefaultLayout(t *testing.T) {
	t.Parallel()
	telemetry := &recordingTelemetry{}
	service := newTestService(t, nil, telemetry)

	layout, err := service.ConfigureLayout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{AreaMain, AreaSidebar, AreaFooter}, layout.AreaOrder)
	assert.Equal(t, testNow, layout.GeneratedAt)
	for _, area := range layout.AreaOrder {
		for _, w := range layout.Areas[area] {
			_, ok := w.Data()
			assert.True(t, ok, w.ID)
			assert.NotContains(t, w.Metadata, "error", w.ID)
			assert.Equal(t, area, w.AreaCode)
		}
	}
	profile, ok := layout.Widget("top-seller")
	require.True(t, ok)
	data, _ := profile.Data()
	assert.Equal(t, false, data["not_found"])
	assert.True(t, telemetry.has("dashboard.layout.resolve"))
}

func TestConfigureLayoutIsolatesFailingWidgets(t *testing.T) {
	t.Parallel()
	telemetry := &recordingTelemetry{}
	doc := &LayoutDocument{Version: LayoutVersion, Areas: []LayoutArea{{
		Code: AreaMain,
		Widgets: []LayoutWidget{
			{ID: "bad-size", Definition: WidgetTable, Configuration: map[string]any{"table": TableOrders, "page_size": 7}},
			{ID: "unknown", Definition: "backoffice.widget.nope"},
			{ID: "stats", Definition: WidgetStats},
		},
	}}}
	service := newTestService(t, doc, telemetry)

	layout, err := service.ConfigureLayout(context.Background())
	require.NoError(t, err)
	widgets := layout.Areas[AreaMain]
	require.Len(t, widgets, 3)
	assert.Contains(t, widgets[0].Metadata["error"], "failed validation")
	assert.Contains(t, widgets[1].Metadata["error"], "unknown widget definition")
	_, ok := widgets[2].Data()
	assert.True(t, ok)
	assert.True(t, telemetry.has("dashboard.widget.config_error"))
	assert.True(t, telemetry.has("dashboard.widget.definition_error"))
}

func TestConfigureLayoutRecordsProviderErrors(t *testing.T) {
	t.Parallel()
	telemetry := &recordingTelemetry{}
	reg := NewRegistry()
	require.NoError(t, reg.RegisterDefinition(WidgetDefinition{Code: "test.widget.broken", Name: "Broken"}))
	require.NoError(t, reg.RegisterProvider("test.widget.broken", ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return nil, errors.New("upstream down")
	})))
	service := NewService(Options{
		Providers: reg,
		Telemetry: telemetry,
		Layout: StaticLayout{Doc: &LayoutDocument{Version: LayoutVersion, Areas: []LayoutArea{{
			Code: AreaMain, Widgets: []LayoutWidget{{ID: "b", Definition: "test.widget.broken"}},
		}}}},
	})
	layout, err := service.ConfigureLayout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "upstream down", layout.Areas[AreaMain][0].Metadata["error"])
	assert.True(t, telemetry.has("dashboard.widget.provider_error"))
}

func TestServiceWidget(t *testing.T) {
	t.Parallel()
	service := newTestService(t, nil, nil)
	w, err := service.Widget(context.Background(), "revenue")
	require.NoError(t, err)
	data, ok := w.Data()
	require.True(t, ok)
	assert.Equal(t, ChartLine, data["chart_type"])
	assert.Equal(t, AreaMain, w.AreaCode)

	_, err = service.Widget(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrWidgetNotFound)
}

func TestServiceValidateLayoutJoinsErrors(t *testing.T) {
	t.Parallel()
	doc := &LayoutDocument{Version: LayoutVersion, Areas: []LayoutArea{{
		Code: AreaMain,
		Widgets: []LayoutWidget{
			{ID: "a", Definition: WidgetSellerProfile},
			{ID: "b", Definition: WidgetCalendar, Configuration: map[string]any{"month": "2024-13"}},
		},
	}}}
	err := newTestService(t, doc, nil).ValidateLayout(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widget a")
	assert.Contains(t, err.Error(), "widget b")
	assert.NoError(t, newTestService(t, nil, nil).ValidateLayout(context.Background()))
}
