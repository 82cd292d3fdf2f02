package tableview

import "slices"

// ColumnMeta describes a rendered column header.
type ColumnMeta struct {
	ID       string        `json:"id"`
	Header   string        `json:"header"`
	Sortable bool          `json:"sortable"`
	Sort     SortDirection `json:"sort"`
}

// RowView is a rendered row.
type RowView struct {
	ID       string   `json:"id"`
	Cells    []string `json:"cells"`
	Selected bool     `json:"selected"`
}

// Snapshot is the render model of a table: headers, visible rows and the
// state needed to draw filter, sort and pagination controls.
type Snapshot struct {
	Columns         []ColumnMeta `json:"columns"`
	Rows            []RowView    `json:"rows"`
	GlobalFilter    string       `json:"globalFilter"`
	Sort            SortState    `json:"sort"`
	PageIndex       int          `json:"pageIndex"`
	PageSize        int          `json:"pageSize"`
	PageCount       int          `json:"pageCount"`
	Total           int          `json:"total"`
	Filtered        int          `json:"filtered"`
	CanPreviousPage bool         `json:"canPreviousPage"`
	CanNextPage     bool         `json:"canNextPage"`
	Empty           bool         `json:"empty"`
	SelectedCount   int          `json:"selectedCount"`
	PageSizeOptions []int        `json:"pageSizeOptions"`
}

// Headers returns the column headers in display order.
func (s Snapshot) Headers() []string {
	headers := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		headers[i] = col.Header
	}
	return headers
}

// RowIDs returns the ids of the visible rows.
func (s Snapshot) RowIDs() []string {
	ids := make([]string, len(s.Rows))
	for i, row := range s.Rows {
		ids[i] = row.ID
	}
	return ids
}

func (v *View[R]) snapshotLocked() Snapshot {
	page := v.page
	columns := make([]ColumnMeta, len(v.columns))
	for i, col := range v.columns {
		id := col.ColumnID()
		columns[i] = ColumnMeta{
			ID:       id,
			Header:   col.Header,
			Sortable: col.Sortable,
			Sort:     page.State.Sort.DirectionFor(id),
		}
	}
	rows := make([]RowView, len(page.Rows))
	for i, record := range page.Rows {
		cells := make([]string, len(v.columns))
		for j, col := range v.columns {
			cells[j] = col.cell(record)
		}
		id := v.rowIDFor(record)
		rows[i] = RowView{
			ID:       id,
			Cells:    cells,
			Selected: page.State.IsSelected(id),
		}
	}
	return Snapshot{
		Columns:         columns,
		Rows:            rows,
		GlobalFilter:    page.State.GlobalFilter,
		Sort:            page.State.Sort,
		PageIndex:       page.State.PageIndex,
		PageSize:        page.State.PageSize,
		PageCount:       page.PageCount,
		Total:           page.Total,
		Filtered:        page.Filtered,
		CanPreviousPage: page.CanPreviousPage(),
		CanNextPage:     page.CanNextPage(),
		Empty:           page.Empty(),
		SelectedCount:   len(page.State.Selected),
		PageSizeOptions: slices.Clone(PageSizeOptions),
	}
}
