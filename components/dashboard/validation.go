package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator validates widget configuration payloads against their schema.
type ConfigValidator interface {
	Validate(def WidgetDefinition, config map[string]any) error
}

// JSONSchemaValidator compiles widget schemas once and validates configuration maps.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures the provided configuration satisfies the widget schema.
func (v *JSONSchemaValidator) Validate(def WidgetDefinition, config map[string]any) error {
	if len(def.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(def)
	if err != nil {
		return err
	}
	payload, err := normalizeConfig(def.Code, config)
	if err != nil {
		return err
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashboard: configuration for %s failed validation: %w", def.Code, err)
	}
	return nil
}

// normalizeConfig round-trips through JSON so Go ints and typed slices match
// the JSON types the schema describes.
func normalizeConfig(code string, config map[string]any) (map[string]any, error) {
	payload := map[string]any{}
	if config == nil {
		return payload, nil
	}
	data, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal config for %s: %w", code, err)
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("dashboard: normalize config for %s: %w", code, err)
	}
	return payload, nil
}

func (v *JSONSchemaValidator) schemaFor(def WidgetDefinition) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[def.Code]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal schema %s: %w", def.Code, err)
	}
	compiler := jsonschema.NewCompiler()
	name := def.Code + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", def.Code, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", def.Code, err)
	}
	v.mu.Lock()
	v.compiled[def.Code] = compiled
	v.mu.Unlock()
	return compiled, nil
}

// ValidateLayout checks every widget of doc against its definition and
// returns all problems joined.
func ValidateLayout(doc *LayoutDocument, providers ProviderRegistry, validator ConfigValidator) error {
	if doc == nil {
		return errors.New("dashboard: layout document is nil")
	}
	if validator == nil {
		validator = NewJSONSchemaValidator()
	}
	var errs []error
	for _, area := range doc.Areas {
		for _, widget := range area.Widgets {
			def, ok := providers.Definition(widget.Definition)
			if !ok {
				errs = append(errs, fmt.Errorf("dashboard: widget %s uses unknown definition %s", widget.ID, widget.Definition))
				continue
			}
			if err := validator.Validate(def, widget.Configuration); err != nil {
				errs = append(errs, fmt.Errorf("dashboard: widget %s: %w", widget.ID, err))
			}
		}
	}
	return errors.Join(errs...)
}
