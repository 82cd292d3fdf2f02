package tableview

import "github.com/ettle/strcase"

// Column describes one displayed attribute of a record type.
type Column[R any] struct {
	ID       string
	Header   string
	Accessor func(R) any
	// Render overrides the displayed cell text. Filtering and sorting still
	// use the accessor value.
	Render   func(R) string
	Sortable bool
}

// ColumnID returns the explicit id or one derived from the header.
func (c Column[R]) ColumnID() string {
	if c.ID != "" {
		return c.ID
	}
	return strcase.ToSnake(c.Header)
}

func (c Column[R]) value(record R) any {
	if c.Accessor == nil {
		return nil
	}
	return c.Accessor(record)
}

func (c Column[R]) cell(record R) string {
	if c.Render != nil {
		return c.Render(record)
	}
	return Stringify(c.value(record))
}

// SelectColumns keeps the columns named in allow, in allow-list order.
// An empty allow-list keeps every column.
func SelectColumns[R any](all []Column[R], allow ...string) []Column[R] {
	if len(allow) == 0 {
		out := make([]Column[R], len(all))
		copy(out, all)
		return out
	}
	byID := make(map[string]Column[R], len(all))
	for _, col := range all {
		byID[col.ColumnID()] = col
	}
	out := make([]Column[R], 0, len(allow))
	seen := make(map[string]struct{}, len(allow))
	for _, id := range allow {
		col, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, col)
	}
	return out
}

func findColumn[R any](columns []Column[R], id string) (Column[R], bool) {
	for _, col := range columns {
		if col.ColumnID() == id {
			return col, true
		}
	}
	return Column[R]{}, false
}
