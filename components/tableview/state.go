package tableview

import (
	"fmt"
	"strings"
)

// DefaultPageSize is used when a view is created without an explicit size.
const DefaultPageSize = 10

// PageSizeOptions lists the page sizes offered by the page size selector.
var PageSizeOptions = []int{5, 10, 20, 30, 40, 50}

// SortDirection is the tri-state sort of a single column.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

func (d SortDirection) String() string {
	switch d {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return ""
	}
}

// next cycles none -> asc -> desc -> none.
func (d SortDirection) next() SortDirection {
	switch d {
	case SortNone:
		return SortAscending
	case SortAscending:
		return SortDescending
	default:
		return SortNone
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d SortDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *SortDirection) UnmarshalText(text []byte) error {
	dir, err := ParseSortDirection(string(text))
	if err != nil {
		return err
	}
	*d = dir
	return nil
}

// ParseSortDirection accepts "", "none", "asc" and "desc".
func ParseSortDirection(value string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none":
		return SortNone, nil
	case "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	default:
		return SortNone, fmt.Errorf("tableview: unknown sort direction %q", value)
	}
}

// SortState is the single active sort column.
type SortState struct {
	Column    string        `json:"column,omitempty"`
	Direction SortDirection `json:"direction"`
}

// Active reports whether a column is being sorted.
func (s SortState) Active() bool {
	return s.Column != "" && s.Direction != SortNone
}

// DirectionFor returns the sort direction applied to column.
func (s SortState) DirectionFor(column string) SortDirection {
	if s.Column != column {
		return SortNone
	}
	return s.Direction
}

// State is the transient view state of one table instance.
type State struct {
	GlobalFilter string
	Sort         SortState
	PageIndex    int
	PageSize     int
	Selected     map[string]struct{}
}

// NewState returns the initial state for a freshly mounted table.
func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{PageSize: pageSize}
}

// IsSelected reports whether a row id is in the selection set.
func (s State) IsSelected(rowID string) bool {
	_, ok := s.Selected[rowID]
	return ok
}

// SelectedIDs returns the selection in no particular order.
func (s State) SelectedIDs() []string {
	ids := make([]string, 0, len(s.Selected))
	for id := range s.Selected {
		ids = append(ids, id)
	}
	return ids
}

func (s State) withSelection(update func(map[string]struct{})) State {
	next := make(map[string]struct{}, len(s.Selected)+1)
	for id := range s.Selected {
		next[id] = struct{}{}
	}
	update(next)
	s.Selected = next
	return s
}

// Event is a user interaction applied to a State by Reduce.
type Event interface {
	reduce(s State, filtered int) State
}

// Reduce applies ev to s. filtered is the number of records that pass the
// current filter; it bounds page navigation. Reduce never mutates s.
func Reduce(s State, ev Event, filtered int) State {
	if ev == nil {
		return s
	}
	return ev.reduce(s, filtered)
}

// SetGlobalFilter replaces the filter text and returns to the first page.
type SetGlobalFilter struct {
	Text string
}

func (e SetGlobalFilter) reduce(s State, _ int) State {
	if s.GlobalFilter == e.Text {
		return s
	}
	s.GlobalFilter = e.Text
	s.PageIndex = 0
	return s
}

// ToggleSort cycles the sort of Column and clears any other column's sort.
type ToggleSort struct {
	Column string
}

func (e ToggleSort) reduce(s State, _ int) State {
	if e.Column == "" {
		return s
	}
	current := s.Sort.DirectionFor(e.Column)
	next := current.next()
	if next == SortNone {
		s.Sort = SortState{}
		return s
	}
	s.Sort = SortState{Column: e.Column, Direction: next}
	return s
}

// SetPageIndex jumps to a page. Out-of-range indexes are ignored.
type SetPageIndex struct {
	Index int
}

func (e SetPageIndex) reduce(s State, filtered int) State {
	if e.Index < 0 || e.Index >= PageCount(filtered, s.PageSize) {
		return s
	}
	s.PageIndex = e.Index
	return s
}

// NextPage advances one page when possible.
type NextPage struct{}

func (NextPage) reduce(s State, filtered int) State {
	return SetPageIndex{Index: s.PageIndex + 1}.reduce(s, filtered)
}

// PreviousPage goes back one page when possible.
type PreviousPage struct{}

func (PreviousPage) reduce(s State, filtered int) State {
	return SetPageIndex{Index: s.PageIndex - 1}.reduce(s, filtered)
}

// SetPageSize changes rows per page and clamps the page index.
type SetPageSize struct {
	Size int
}

func (e SetPageSize) reduce(s State, filtered int) State {
	if e.Size <= 0 {
		return s
	}
	s.PageSize = e.Size
	s.PageIndex = clampPage(s.PageIndex, filtered, s.PageSize)
	return s
}

// ToggleRowSelected flips one row's selection.
type ToggleRowSelected struct {
	RowID string
}

func (e ToggleRowSelected) reduce(s State, _ int) State {
	if e.RowID == "" {
		return s
	}
	return s.withSelection(func(sel map[string]struct{}) {
		if _, ok := sel[e.RowID]; ok {
			delete(sel, e.RowID)
			return
		}
		sel[e.RowID] = struct{}{}
	})
}

// ToggleAllOnPage selects every row on the visible page, or clears them when
// they are all selected already. Rows on other pages are left alone.
type ToggleAllOnPage struct {
	RowIDs []string
}

func (e ToggleAllOnPage) reduce(s State, _ int) State {
	if len(e.RowIDs) == 0 {
		return s
	}
	allSelected := true
	for _, id := range e.RowIDs {
		if !s.IsSelected(id) {
			allSelected = false
			break
		}
	}
	return s.withSelection(func(sel map[string]struct{}) {
		for _, id := range e.RowIDs {
			if allSelected {
				delete(sel, id)
			} else {
				sel[id] = struct{}{}
			}
		}
	})
}

// PageCount is ceil(n/size), and 1 for an empty result.
func PageCount(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

func clampPage(index, n, size int) int {
	last := PageCount(n, size) - 1
	if index > last {
		index = last
	}
	if index < 0 {
		index = 0
	}
	return index
}
