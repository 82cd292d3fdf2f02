package records

import "sort"

// Record is a loosely shaped row: field name to scalar or nested value.
type Record map[string]any

// Get returns the raw value stored under field.
func (r Record) Get(field string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns the field as a string when it holds one.
func (r Record) String(field string) (string, bool) {
	v, ok := r.Get(field)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// FieldNames lists the record's fields alphabetically.
func (r Record) FieldNames() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fielder is implemented by typed models that can be viewed as a Record.
type Fielder interface {
	Fields() Record
}

// ToRecords converts typed models into field maps.
func ToRecords[R Fielder](items []R) []Record {
	out := make([]Record, len(items))
	for i, item := range items {
		out[i] = item.Fields()
	}
	return out
}
