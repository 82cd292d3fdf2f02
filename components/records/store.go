package records

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound is returned when a lookup names an identity the store does not hold.
var ErrRecordNotFound = errors.New("records: record not found")

// Store is an in-memory, read-mostly ordered sequence of records.
// Keys are expected to be unique but this is never validated.
type Store[R any] struct {
	key     func(R) string
	records []R
}

// NewStore builds a store over the given records using key to identify rows.
func NewStore[R any](key func(R) string, records ...R) *Store[R] {
	out := make([]R, len(records))
	copy(out, records)
	return &Store[R]{key: key, records: out}
}

// All returns a copy of the records in insertion order.
func (s *Store[R]) All() []R {
	if s == nil {
		return nil
	}
	out := make([]R, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the number of records.
func (s *Store[R]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Key returns the identity of a record.
func (s *Store[R]) Key(record R) string {
	return s.key(record)
}

// Keys lists record identities in order.
func (s *Store[R]) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, len(s.records))
	for i, record := range s.records {
		keys[i] = s.key(record)
	}
	return keys
}

// Lookup returns the first record whose key matches id.
func (s *Store[R]) Lookup(id string) (R, error) {
	var zero R
	if s == nil {
		return zero, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	for _, record := range s.records {
		if s.key(record) == id {
			return record, nil
		}
	}
	return zero, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
}
