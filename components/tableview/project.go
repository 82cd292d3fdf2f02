package tableview

import (
	"slices"
	"strings"
)

// Page is the derived, displayable subset of a record sequence.
type Page[R any] struct {
	Rows      []R
	State     State
	Total     int
	Filtered  int
	PageCount int
}

// CanPreviousPage reports whether PreviousPage would move.
func (p Page[R]) CanPreviousPage() bool {
	return p.State.PageIndex > 0
}

// CanNextPage reports whether NextPage would move.
func (p Page[R]) CanNextPage() bool {
	return p.State.PageIndex < p.PageCount-1
}

// Empty is true when no record passes the filter.
func (p Page[R]) Empty() bool {
	return p.Filtered == 0
}

// Project runs filter, sort and paginate in that order and returns the page
// together with the state clamped to the new page count. records is not modified.
func Project[R any](records []R, columns []Column[R], state State) Page[R] {
	if state.PageSize <= 0 {
		state.PageSize = DefaultPageSize
	}
	filtered := Filter(records, columns, state.GlobalFilter)
	sorted := Sort(filtered, columns, state.Sort)
	state.PageIndex = clampPage(state.PageIndex, len(sorted), state.PageSize)
	return Page[R]{
		Rows:      Paginate(sorted, state.PageIndex, state.PageSize),
		State:     state,
		Total:     len(records),
		Filtered:  len(sorted),
		PageCount: PageCount(len(sorted), state.PageSize),
	}
}

// Filter keeps records where any column's text contains text, ignoring case.
// An empty filter returns a copy of records in the same order.
func Filter[R any](records []R, columns []Column[R], text string) []R {
	if text == "" {
		return slices.Clone(records)
	}
	needle := strings.ToLower(text)
	out := make([]R, 0, len(records))
	for _, record := range records {
		if matches(record, columns, needle) {
			out = append(out, record)
		}
	}
	return out
}

func matches[R any](record R, columns []Column[R], needle string) bool {
	for _, col := range columns {
		if strings.Contains(strings.ToLower(Stringify(col.value(record))), needle) {
			return true
		}
	}
	return false
}

// Sort returns a stably sorted copy. Unknown or unsortable columns leave the
// order untouched.
func Sort[R any](records []R, columns []Column[R], sort SortState) []R {
	out := slices.Clone(records)
	if !sort.Active() {
		return out
	}
	col, ok := findColumn(columns, sort.Column)
	if !ok || !col.Sortable {
		return out
	}
	slices.SortStableFunc(out, func(a, b R) int {
		cmp := Compare(col.value(a), col.value(b))
		if sort.Direction == SortDescending {
			return -cmp
		}
		return cmp
	})
	return out
}

// Paginate returns the rows of page index for the given size.
func Paginate[R any](records []R, index, size int) []R {
	if size <= 0 {
		size = DefaultPageSize
	}
	start := index * size
	if index < 0 || start >= len(records) {
		return []R{}
	}
	end := min(start+size, len(records))
	return slices.Clone(records[start:end])
}
