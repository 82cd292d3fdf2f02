package dashboard

import (
	"context"
	"time"
)

// ProviderRegistry stores widget definitions and the providers that feed them.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []WidgetDefinition
}

// LayoutSource returns the widget instances to render per area.
type LayoutSource interface {
	Layout(ctx context.Context) (*LayoutDocument, error)
}

// WidgetAreaDefinition models a dashboard area (main/sidebar/footer).
type WidgetAreaDefinition struct {
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// WidgetDefinition describes a widget type and the schema of its configuration.
type WidgetDefinition struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
	// Tables lists the table codes the widget reads. Widgets configured with
	// a table, such as the data table, leave it empty.
	Tables []string `json:"tables,omitempty" yaml:"tables,omitempty"`
}

// WidgetInstance is a configured widget placed in an area.
type WidgetInstance struct {
	ID            string         `json:"id"`
	DefinitionID  string         `json:"definition"`
	AreaCode      string         `json:"area"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// Data returns the provider payload attached by the service, if any.
func (w WidgetInstance) Data() (WidgetData, bool) {
	data, ok := w.Metadata["data"].(WidgetData)
	return data, ok
}

// Layout describes the resolved widget instances per dashboard area.
type Layout struct {
	Areas       map[string][]WidgetInstance `json:"areas"`
	AreaOrder   []string                    `json:"area_order"`
	GeneratedAt time.Time                   `json:"generated_at"`
}

// Widget finds an instance by id across every area.
func (l Layout) Widget(id string) (WidgetInstance, bool) {
	for _, code := range l.AreaOrder {
		for _, w := range l.Areas[code] {
			if w.ID == id {
				return w, true
			}
		}
	}
	return WidgetInstance{}, false
}
