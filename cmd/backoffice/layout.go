package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-backoffice/components/dashboard"
)

type layoutCmd struct {
	Init     layoutInitCmd     `cmd:"" help:"Write the default layout to a file."`
	Validate layoutValidateCmd `cmd:"" help:"Check a layout file against the widget schemas."`
	Add      layoutAddCmd      `cmd:"" help:"Add a widget to a layout file."`
}

type layoutInitCmd struct {
	Path      string `arg:"" type:"path" help:"Layout file to create."`
	Overwrite bool   `help:"Replace an existing file."`
}

func (cmd *layoutInitCmd) Run() error {
	if _, err := os.Stat(cmd.Path); err == nil && !cmd.Overwrite {
		return fmt.Errorf("backoffice: layout %s already exists (use --overwrite to replace)", cmd.Path)
	}
	if err := writeLayout(cmd.Path, dashboard.DefaultLayout()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Wrote default layout to %s\n", cmd.Path)
	return nil
}

type layoutValidateCmd struct {
	Path string `arg:"" type:"existingfile" help:"Layout file to check."`
}

func (cmd *layoutValidateCmd) Run() error {
	return validateLayoutFile(os.Stdout, cmd.Path)
}

func validateLayoutFile(w io.Writer, path string) error {
	doc, err := dashboard.ReadLayout(path)
	if err != nil {
		return err
	}
	if err := dashboard.ValidateLayout(doc, dashboard.NewRegistry(), nil); err != nil {
		return err
	}
	widgets := 0
	for _, area := range doc.Areas {
		widgets += len(area.Widgets)
	}
	_, err = fmt.Fprintf(w, "✓ %s: %d areas, %d widgets\n", path, len(doc.Areas), widgets)
	return err
}

type layoutAddCmd struct {
	Path       string            `arg:"" type:"path" help:"Layout file to update; created when missing."`
	Definition string            `required:"" help:"Widget definition code (e.g. backoffice.widget.table)."`
	Area       string            `default:"backoffice.dashboard.main" help:"Area code to place the widget in."`
	ID         string            `help:"Widget id (defaults to a kebab-case name derived from the definition)."`
	Set        map[string]string `help:"Configuration values as key=value (repeatable)."`
	Overwrite  bool              `help:"Replace a widget with the same id."`
}

func (cmd *layoutAddCmd) Run() error {
	id, err := addWidget(cmd.Path, cmd.widget(), cmd.Area, cmd.Overwrite)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s (%s) to %s in %s\n", id, cmd.Definition, cmd.Area, cmd.Path)
	return nil
}

func (cmd *layoutAddCmd) widget() dashboard.LayoutWidget {
	id := cmd.ID
	if id == "" {
		id = deriveWidgetID(cmd.Definition)
	}
	cfg := make(map[string]any, len(cmd.Set))
	for k, v := range cmd.Set {
		cfg[k] = parseValue(v)
	}
	if len(cfg) == 0 {
		cfg = nil
	}
	return dashboard.LayoutWidget{ID: id, Definition: cmd.Definition, Configuration: cfg}
}

// addWidget validates widget against its schema and writes it into the
// layout file at path.
func addWidget(path string, widget dashboard.LayoutWidget, areaCode string, overwrite bool) (string, error) {
	registry := dashboard.NewRegistry()
	def, ok := registry.Definition(widget.Definition)
	if !ok {
		return "", fmt.Errorf("backoffice: unknown widget definition %s", widget.Definition)
	}
	if err := dashboard.NewJSONSchemaValidator().Validate(def, widget.Configuration); err != nil {
		return "", err
	}
	doc, err := loadOrInitLayout(path)
	if err != nil {
		return "", err
	}
	if err := placeWidget(doc, widget, areaCode, overwrite); err != nil {
		return "", err
	}
	if err := doc.Validate(); err != nil {
		return "", err
	}
	return widget.ID, writeLayout(path, doc)
}

func placeWidget(doc *dashboard.LayoutDocument, widget dashboard.LayoutWidget, areaCode string, overwrite bool) error {
	for ai := range doc.Areas {
		for wi, existing := range doc.Areas[ai].Widgets {
			if existing.ID != widget.ID {
				continue
			}
			if !overwrite {
				return fmt.Errorf("backoffice: layout already has widget %s (use --overwrite to replace)", widget.ID)
			}
			doc.Areas[ai].Widgets = append(doc.Areas[ai].Widgets[:wi], doc.Areas[ai].Widgets[wi+1:]...)
			break
		}
	}
	for ai := range doc.Areas {
		if doc.Areas[ai].Code == areaCode {
			doc.Areas[ai].Widgets = append(doc.Areas[ai].Widgets, widget)
			return nil
		}
	}
	doc.Areas = append(doc.Areas, dashboard.LayoutArea{Code: areaCode, Widgets: []dashboard.LayoutWidget{widget}})
	return nil
}

func loadOrInitLayout(path string) (*dashboard.LayoutDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &dashboard.LayoutDocument{Version: dashboard.LayoutVersion, Source: path}, nil
		}
		return nil, fmt.Errorf("backoffice: stat layout: %w", err)
	}
	return dashboard.ReadLayout(path)
}

func writeLayout(path string, doc *dashboard.LayoutDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("backoffice: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("backoffice: create layout %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("backoffice: write layout: %w", err)
	}
	return encoder.Close()
}

func deriveWidgetID(code string) string {
	parts := strings.Split(code, ".")
	slug := strings.TrimSpace(parts[len(parts)-1])
	if slug == "" {
		slug = code
	}
	return strcase.ToKebab(slug)
}

// parseValue keeps numbers and booleans typed so schemas see JSON types.
func parseValue(v string) any {
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	return v
}
