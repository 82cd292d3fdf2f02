package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-backoffice/components/records"
)

// BootstrapOptions configures Bootstrap.
type BootstrapOptions struct {
	Layout         LayoutSource
	Telemetry      Telemetry
	ChartOptions   []EChartsProviderOption
	PageSize       int
	FilterDebounce time.Duration
	Now            func() time.Time
}

// Backoffice bundles the wired dashboard collaborators.
type Backoffice struct {
	Dataset  *records.Dataset
	Catalog  *TableCatalog
	Registry *Registry
	Service  *Service

	workspaceDefaults OpenOptions
}

// Bootstrap registers definitions, hooks and providers over ds and checks
// the layout against the widget schemas.
func Bootstrap(ctx context.Context, ds *records.Dataset, opts BootstrapOptions) (*Backoffice, error) {
	if ds == nil {
		return nil, errors.New("dashboard: dataset is required")
	}
	registry := NewRegistry()
	catalog := NewTableCatalog(ds)
	if err := RegisterProviders(registry, ProviderDeps{
		Dataset:      ds,
		Catalog:      catalog,
		ChartOptions: opts.ChartOptions,
	}); err != nil {
		return nil, fmt.Errorf("dashboard: register providers: %w", err)
	}
	if err := registry.ApplyHooks(); err != nil {
		return nil, err
	}
	if err := registry.CheckTables(catalog.Codes()); err != nil {
		return nil, err
	}
	service := NewService(Options{
		Providers: registry,
		Telemetry: opts.Telemetry,
		Layout:    opts.Layout,
		Now:       opts.Now,
	})
	if err := service.ValidateLayout(ctx); err != nil {
		return nil, err
	}
	return &Backoffice{
		Dataset:  ds,
		Catalog:  catalog,
		Registry: registry,
		Service:  service,
		workspaceDefaults: OpenOptions{
			PageSize:       opts.PageSize,
			FilterDebounce: opts.FilterDebounce,
		},
	}, nil
}

// Tables lists the catalog with the widgets reading each table.
func (b *Backoffice) Tables() []TableInfo {
	tables := b.Catalog.Tables()
	for i := range tables {
		tables[i].Widgets = b.Registry.ForTable(tables[i].Code)
	}
	return tables
}

// NewWorkspace opens a session workspace with the configured table defaults.
func (b *Backoffice) NewWorkspace() *Workspace {
	return NewWorkspace(b.Catalog, b.workspaceDefaults)
}
