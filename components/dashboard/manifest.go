package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	layoutVersionV1 = "1"
	// LayoutVersion exposes the current layout format version for tooling.
	LayoutVersion = layoutVersionV1
)

// LayoutDocument models a YAML layout listing widget instances per area.
type LayoutDocument struct {
	Version string       `json:"version" yaml:"version"`
	Name    string       `json:"name,omitempty" yaml:"name,omitempty"`
	Areas   []LayoutArea `json:"areas" yaml:"areas"`
	Source  string       `json:"-" yaml:"-"`
}

// LayoutArea is one area of the layout with its widgets in display order.
type LayoutArea struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Widgets     []LayoutWidget `json:"widgets" yaml:"widgets"`
}

// LayoutWidget places a configured widget definition in an area.
type LayoutWidget struct {
	ID            string         `json:"id" yaml:"id"`
	Definition    string         `json:"definition" yaml:"definition"`
	Configuration map[string]any `json:"configuration,omitempty" yaml:"configuration,omitempty"`
}

// ReadLayout loads a layout file from disk.
func ReadLayout(path string) (*LayoutDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open layout %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeLayout(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode layout %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeLayout reads a layout from any reader. Unknown keys are rejected.
func DecodeLayout(r io.Reader) (*LayoutDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc LayoutDocument
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dashboard: layout is empty")
		}
		return nil, fmt.Errorf("dashboard: parse layout: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures required fields are present and ids are unique.
func (doc *LayoutDocument) Validate() error {
	if doc.Version != layoutVersionV1 {
		return fmt.Errorf("dashboard: unsupported layout version %q", doc.Version)
	}
	areas := make(map[string]struct{}, len(doc.Areas))
	widgets := map[string]struct{}{}
	for idx, area := range doc.Areas {
		if area.Code == "" {
			return fmt.Errorf("dashboard: layout area at index %d is missing code", idx)
		}
		if _, dup := areas[area.Code]; dup {
			return fmt.Errorf("dashboard: layout duplicates area %s", area.Code)
		}
		areas[area.Code] = struct{}{}
		for widx, widget := range area.Widgets {
			if widget.ID == "" {
				return fmt.Errorf("dashboard: widget %d in area %s is missing id", widx, area.Code)
			}
			if widget.Definition == "" {
				return fmt.Errorf("dashboard: widget %s is missing definition", widget.ID)
			}
			if _, dup := widgets[widget.ID]; dup {
				return fmt.Errorf("dashboard: layout duplicates widget id %s", widget.ID)
			}
			widgets[widget.ID] = struct{}{}
		}
	}
	return nil
}

func (doc *LayoutDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = layoutVersionV1
	}
}

// StaticLayout serves a fixed document.
type StaticLayout struct {
	Doc *LayoutDocument
}

// Layout implements LayoutSource.
func (s StaticLayout) Layout(context.Context) (*LayoutDocument, error) {
	if s.Doc == nil {
		return DefaultLayout(), nil
	}
	return s.Doc, nil
}

// FileLayout re-reads a layout file on every resolution so edits show up
// without a restart.
type FileLayout struct {
	Path string
}

// Layout implements LayoutSource.
func (f FileLayout) Layout(context.Context) (*LayoutDocument, error) {
	return ReadLayout(f.Path)
}
