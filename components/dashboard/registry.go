package dashboard

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// WidgetHook lets packages add widget definitions and providers during init().
type WidgetHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []WidgetHook
)

// RegisterWidgetHook registers a hook applied by every Bootstrap.
func RegisterWidgetHook(h WidgetHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry holds widget definitions, their providers and the tables each
// definition reads.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]WidgetDefinition
	providers   map[string]Provider
	byTable     map[string][]string
}

var _ ProviderRegistry = (*Registry)(nil)

// NewRegistry builds a registry holding the built-in widget definitions.
// Providers are attached separately since they need a dataset.
func NewRegistry() *Registry {
	reg := &Registry{
		definitions: map[string]WidgetDefinition{},
		providers:   map[string]Provider{},
		byTable:     map[string][]string{},
	}
	for _, def := range DefaultWidgetDefinitions() {
		_ = reg.RegisterDefinition(def)
	}
	return reg
}

// ApplyHooks runs the registered widget hooks against r.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	hooks := slices.Clone(globalHooks)
	globalHookMu.Unlock()
	for _, hook := range hooks {
		if err := hook(r); err != nil {
			return fmt.Errorf("dashboard: widget hook: %w", err)
		}
	}
	return nil
}

// RegisterDefinition stores a definition, replacing one with the same code.
func (r *Registry) RegisterDefinition(def WidgetDefinition) error {
	if strings.TrimSpace(def.Code) == "" {
		return errors.New("dashboard: widget definition code is required")
	}
	for _, table := range def.Tables {
		if strings.TrimSpace(table) == "" {
			return fmt.Errorf("dashboard: widget definition %s lists an empty table code", def.Code)
		}
	}
	def.Tables = slices.Clone(def.Tables)
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.definitions[def.Code]; ok {
		r.unindexLocked(prev)
	}
	r.definitions[def.Code] = def
	for _, table := range def.Tables {
		if !slices.Contains(r.byTable[table], def.Code) {
			r.byTable[table] = append(r.byTable[table], def.Code)
		}
	}
	return nil
}

func (r *Registry) unindexLocked(def WidgetDefinition) {
	for _, table := range def.Tables {
		codes := slices.DeleteFunc(r.byTable[table], func(code string) bool { return code == def.Code })
		if len(codes) == 0 {
			delete(r.byTable, table)
			continue
		}
		r.byTable[table] = codes
	}
}

// RegisterProvider attaches a provider to a registered definition.
func (r *Registry) RegisterProvider(code string, provider Provider) error {
	if code == "" {
		return errors.New("dashboard: widget definition code is required to register provider")
	}
	if provider == nil {
		return fmt.Errorf("dashboard: provider for %s cannot be nil", code)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[code]; !ok {
		return fmt.Errorf("dashboard: widget definition %s not found", code)
	}
	r.providers[code] = provider
	return nil
}

// Definition fetches a widget definition by code.
func (r *Registry) Definition(code string) (WidgetDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Provider fetches a widget provider by code.
func (r *Registry) Provider(code string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[code]
	return provider, ok
}

// Definitions returns all registered definitions ordered by code.
func (r *Registry) Definitions() []WidgetDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]WidgetDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	slices.SortFunc(defs, func(a, b WidgetDefinition) int { return strings.Compare(a.Code, b.Code) })
	return defs
}

// ForTable returns the codes of definitions that read table, sorted.
func (r *Registry) ForTable(table string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := slices.Clone(r.byTable[table])
	slices.Sort(codes)
	return codes
}

// CheckTables reports every definition that reads a table outside known.
func (r *Registry) CheckTables(known []string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tables := make([]string, 0, len(r.byTable))
	for table := range r.byTable {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	var errs []error
	for _, table := range tables {
		if slices.Contains(known, table) {
			continue
		}
		for _, code := range r.byTable[table] {
			errs = append(errs, fmt.Errorf("%w: %s, read by widget %s", ErrUnknownTable, table, code))
		}
	}
	return errors.Join(errs...)
}
