package dashboard

import (
	"errors"
	"sync"

	"github.com/goliatone/go-backoffice/components/tableview"
)

// ErrWorkspaceClosed is returned by a workspace after Close.
var ErrWorkspaceClosed = errors.New("dashboard: workspace closed")

// Workspace owns the mounted tables of one session. Each table code maps to
// a single view whose state survives between requests until Reset or Close.
type Workspace struct {
	catalog  *TableCatalog
	defaults OpenOptions

	mu     sync.Mutex
	tables map[string]tableview.Table
	closed bool
}

// NewWorkspace builds a workspace that opens tables with defaults.
func NewWorkspace(catalog *TableCatalog, defaults OpenOptions) *Workspace {
	return &Workspace{
		catalog:  catalog,
		defaults: defaults,
		tables:   map[string]tableview.Table{},
	}
}

// Catalog exposes the underlying table catalog.
func (w *Workspace) Catalog() *TableCatalog {
	return w.catalog
}

// Table returns the mounted view for code, mounting it on first use.
func (w *Workspace) Table(code string) (tableview.Table, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrWorkspaceClosed
	}
	if table, ok := w.tables[code]; ok {
		return table, nil
	}
	table, err := w.catalog.Open(code, w.defaults)
	if err != nil {
		return nil, err
	}
	w.tables[code] = table
	return table, nil
}

// Snapshot renders the current page of a table.
func (w *Workspace) Snapshot(code string) (tableview.Snapshot, error) {
	table, err := w.Table(code)
	if err != nil {
		return tableview.Snapshot{}, err
	}
	return table.Snapshot(), nil
}

// Dispatch applies an event to a table.
func (w *Workspace) Dispatch(code string, ev tableview.Event) (tableview.Snapshot, error) {
	table, err := w.Table(code)
	if err != nil {
		return tableview.Snapshot{}, err
	}
	return table.Dispatch(ev), nil
}

// SetFilter schedules filter text on a table. With flush set the text is
// applied before returning.
func (w *Workspace) SetFilter(code, text string, flush bool) (tableview.Snapshot, error) {
	table, err := w.Table(code)
	if err != nil {
		return tableview.Snapshot{}, err
	}
	table.SetGlobalFilter(text)
	if flush {
		table.FlushFilter()
	}
	return table.Snapshot(), nil
}

// Reset unmounts a table so the next access starts from a fresh state.
func (w *Workspace) Reset(code string) {
	w.mu.Lock()
	table, ok := w.tables[code]
	delete(w.tables, code)
	w.mu.Unlock()
	if ok {
		table.Close()
	}
}

// Open lists the mounted table codes.
func (w *Workspace) Open() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	codes := make([]string, 0, len(w.tables))
	for code := range w.tables {
		codes = append(codes, code)
	}
	return codes
}

// Close unmounts every table, cancelling pending filters.
func (w *Workspace) Close() {
	w.mu.Lock()
	tables := w.tables
	w.tables = map[string]tableview.Table{}
	w.closed = true
	w.mu.Unlock()
	for _, table := range tables {
		table.Close()
	}
}
