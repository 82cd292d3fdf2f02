package dashboard

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"
)

// ErrWidgetNotFound is returned when a widget id is not in the layout.
var ErrWidgetNotFound = errors.New("dashboard: widget not found")

// Options configures the dashboard Service.
type Options struct {
	Providers       ProviderRegistry
	ConfigValidator ConfigValidator
	Telemetry       Telemetry
	Layout          LayoutSource
	Now             func() time.Time
}

// Service resolves layouts and attaches provider data to every widget.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	if opts.Layout == nil {
		opts.Layout = StaticLayout{Doc: DefaultLayout()}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// Definitions lists the registered widget definitions.
func (s *Service) Definitions() []WidgetDefinition {
	return s.opts.Providers.Definitions()
}

// ConfigureLayout resolves every area of the layout with provider data
// attached. A widget whose configuration is invalid or whose provider fails
// carries the error in its metadata; the other widgets still render.
func (s *Service) ConfigureLayout(ctx context.Context) (Layout, error) {
	doc, err := s.opts.Layout.Layout(ctx)
	if err != nil {
		return Layout{}, err
	}
	now := s.opts.Now()
	layout := Layout{
		Areas:       make(map[string][]WidgetInstance, len(doc.Areas)),
		AreaOrder:   make([]string, 0, len(doc.Areas)),
		GeneratedAt: now,
	}
	widgets := 0
	for _, area := range doc.Areas {
		resolved := make([]WidgetInstance, 0, len(area.Widgets))
		for _, widget := range area.Widgets {
			resolved = append(resolved, s.resolve(ctx, area.Code, widget, now))
		}
		layout.Areas[area.Code] = resolved
		layout.AreaOrder = append(layout.AreaOrder, area.Code)
		widgets += len(resolved)
	}
	s.recordTelemetry(ctx, "dashboard.layout.resolve", map[string]any{
		"areas":   len(layout.AreaOrder),
		"widgets": widgets,
	})
	return layout, nil
}

// Widget resolves a single widget by id, running only its provider.
func (s *Service) Widget(ctx context.Context, id string) (WidgetInstance, error) {
	doc, err := s.opts.Layout.Layout(ctx)
	if err != nil {
		return WidgetInstance{}, err
	}
	for _, area := range doc.Areas {
		for _, widget := range area.Widgets {
			if widget.ID == id {
				return s.resolve(ctx, area.Code, widget, s.opts.Now()), nil
			}
		}
	}
	return WidgetInstance{}, fmt.Errorf("%w: %s", ErrWidgetNotFound, id)
}

// ValidateLayout checks every widget configuration of the current layout.
func (s *Service) ValidateLayout(ctx context.Context) error {
	doc, err := s.opts.Layout.Layout(ctx)
	if err != nil {
		return err
	}
	return ValidateLayout(doc, s.opts.Providers, s.opts.ConfigValidator)
}

func (s *Service) resolve(ctx context.Context, areaCode string, widget LayoutWidget, now time.Time) WidgetInstance {
	inst := WidgetInstance{
		ID:            widget.ID,
		DefinitionID:  widget.Definition,
		AreaCode:      areaCode,
		Configuration: maps.Clone(widget.Configuration),
		Metadata:      map[string]any{},
	}
	if inst.Configuration == nil {
		inst.Configuration = map[string]any{}
	}
	def, ok := s.opts.Providers.Definition(widget.Definition)
	if !ok {
		return s.fail(ctx, inst, "dashboard.widget.definition_error", fmt.Errorf("dashboard: unknown widget definition %s", widget.Definition))
	}
	inst.Metadata["name"] = def.Name
	if err := s.opts.ConfigValidator.Validate(def, inst.Configuration); err != nil {
		return s.fail(ctx, inst, "dashboard.widget.config_error", err)
	}
	provider, ok := s.opts.Providers.Provider(widget.Definition)
	if !ok || provider == nil {
		return inst
	}
	started := time.Now()
	data, err := provider.Fetch(ctx, WidgetContext{Instance: inst, Now: now})
	if err != nil {
		return s.fail(ctx, inst, "dashboard.widget.provider_error", err)
	}
	inst.Metadata["data"] = data
	s.recordTelemetry(ctx, "dashboard.widget.fetch", map[string]any{
		"widget_id":     inst.ID,
		"definition_id": inst.DefinitionID,
		"duration_ms":   time.Since(started).Milliseconds(),
	})
	return inst
}

func (s *Service) fail(ctx context.Context, inst WidgetInstance, event string, err error) WidgetInstance {
	inst.Metadata["error"] = err.Error()
	s.recordTelemetry(ctx, event, map[string]any{
		"widget_id":     inst.ID,
		"definition_id": inst.DefinitionID,
		"error":         err.Error(),
	})
	return inst
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}
