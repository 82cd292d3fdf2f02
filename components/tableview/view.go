package tableview

import (
	"slices"
	"sync"
	"time"
)

// Table is the record-type independent surface of a View, used by transports.
type Table interface {
	Snapshot() Snapshot
	Dispatch(ev Event) Snapshot
	SetGlobalFilter(text string)
	FlushFilter() bool
	Close()
}

// ViewOption customizes a View.
type ViewOption[R any] func(*View[R])

// WithPageSize sets the initial page size.
func WithPageSize[R any](size int) ViewOption[R] {
	return func(v *View[R]) {
		if size > 0 {
			v.state.PageSize = size
		}
	}
}

// WithFilterDebounce sets how long SetGlobalFilter waits before applying.
func WithFilterDebounce[R any](delay time.Duration) ViewOption[R] {
	return func(v *View[R]) {
		v.debounce = delay
	}
}

// WithRowID sets how rows are identified for selection.
func WithRowID[R any](fn func(R) string) ViewOption[R] {
	return func(v *View[R]) {
		v.rowID = fn
	}
}

// WithInitialState seeds the view with a previously built state.
func WithInitialState[R any](state State) ViewOption[R] {
	return func(v *View[R]) {
		if state.PageSize <= 0 {
			state.PageSize = v.state.PageSize
		}
		v.state = state
	}
}

// WithChangeListener is called with the new snapshot after every recomputation.
func WithChangeListener[R any](fn func(Snapshot)) ViewOption[R] {
	return func(v *View[R]) {
		v.listener = fn
	}
}

// View owns the view state of one table instance over a fixed record sequence.
// Every change recomputes the full filter, sort and paginate pipeline.
type View[R any] struct {
	mu       sync.Mutex
	records  []R
	columns  []Column[R]
	rowID    func(R) string
	state    State
	page     Page[R]
	debounce time.Duration
	filter   *Debouncer
	listener func(Snapshot)
}

var _ Table = (*View[struct{}])(nil)

// NewView mounts a view over records with the given column set.
func NewView[R any](records []R, columns []Column[R], opts ...ViewOption[R]) *View[R] {
	v := &View[R]{
		records:  slices.Clone(records),
		columns:  slices.Clone(columns),
		state:    NewState(DefaultPageSize),
		debounce: DefaultFilterDebounce,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.filter = NewDebouncer(v.debounce)
	v.page = Project(v.records, v.columns, v.state)
	v.state = v.page.State
	return v
}

// Dispatch applies ev and recomputes the page.
func (v *View[R]) Dispatch(ev Event) Snapshot {
	v.mu.Lock()
	if toggle, ok := ev.(ToggleAllOnPage); ok && toggle.RowIDs == nil {
		ev = ToggleAllOnPage{RowIDs: v.pageRowIDsLocked()}
	}
	if sort, ok := ev.(ToggleSort); ok && !v.sortableLocked(sort.Column) {
		ev = nil
	}
	v.state = Reduce(v.state, ev, v.page.Filtered)
	v.page = Project(v.records, v.columns, v.state)
	v.state = v.page.State
	snap := v.snapshotLocked()
	listener := v.listener
	v.mu.Unlock()
	if listener != nil {
		listener(snap)
	}
	return snap
}

// SetGlobalFilter schedules the filter text after the debounce delay,
// superseding any pending text.
func (v *View[R]) SetGlobalFilter(text string) {
	v.filter.Trigger(func() {
		v.Dispatch(SetGlobalFilter{Text: text})
	})
}

// FlushFilter applies a pending filter immediately.
func (v *View[R]) FlushFilter() bool {
	return v.filter.Flush()
}

// ToggleSort cycles the sort of a sortable column.
func (v *View[R]) ToggleSort(column string) {
	v.Dispatch(ToggleSort{Column: column})
}

// SetPageIndex jumps to a page; out-of-range requests are ignored.
func (v *View[R]) SetPageIndex(index int) {
	v.Dispatch(SetPageIndex{Index: index})
}

// NextPage advances and reports whether the page changed.
func (v *View[R]) NextPage() bool {
	before := v.State().PageIndex
	return v.Dispatch(NextPage{}).PageIndex != before
}

// PreviousPage goes back and reports whether the page changed.
func (v *View[R]) PreviousPage() bool {
	before := v.State().PageIndex
	return v.Dispatch(PreviousPage{}).PageIndex != before
}

// SetPageSize changes rows per page.
func (v *View[R]) SetPageSize(size int) {
	v.Dispatch(SetPageSize{Size: size})
}

// ToggleRowSelected flips the selection of a row.
func (v *View[R]) ToggleRowSelected(rowID string) {
	v.Dispatch(ToggleRowSelected{RowID: rowID})
}

// ToggleAllOnPage toggles every row on the visible page.
func (v *View[R]) ToggleAllOnPage() {
	v.Dispatch(ToggleAllOnPage{})
}

// Page returns the current page.
func (v *View[R]) Page() Page[R] {
	v.mu.Lock()
	defer v.mu.Unlock()
	page := v.page
	page.Rows = slices.Clone(page.Rows)
	return page
}

// State returns the current view state.
func (v *View[R]) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Snapshot renders the current page for transports.
func (v *View[R]) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Close cancels any pending filter. The view stays readable.
func (v *View[R]) Close() {
	v.filter.Stop()
}

func (v *View[R]) sortableLocked(column string) bool {
	col, ok := findColumn(v.columns, column)
	return ok && col.Sortable
}

func (v *View[R]) pageRowIDsLocked() []string {
	ids := make([]string, 0, len(v.page.Rows))
	for _, row := range v.page.Rows {
		ids = append(ids, v.rowIDFor(row))
	}
	return ids
}

// rowIDFor falls back to the first column's value when no row id is configured.
func (v *View[R]) rowIDFor(row R) string {
	if v.rowID != nil {
		return v.rowID(row)
	}
	if len(v.columns) > 0 {
		return Stringify(v.columns[0].value(row))
	}
	return ""
}
