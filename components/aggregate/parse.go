package aggregate

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotNumeric is returned when a value cannot be read as an amount.
	ErrNotNumeric = errors.New("aggregate: value is not numeric")
	// ErrNotDate is returned when a value cannot be read as a date.
	ErrNotDate = errors.New("aggregate: value is not a date")
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"Jan 2, 2006",
}

// ParseAmount reads Go numerics, decimals and numeric strings. Strings may
// carry a leading currency symbol and thousands separators, e.g. "$1,250.50".
func ParseAmount(v any) (decimal.Decimal, error) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, nil
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero, ErrNotNumeric
		}
		return *val, nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int8:
		return decimal.NewFromInt(int64(val)), nil
	case int16:
		return decimal.NewFromInt(int64(val)), nil
	case int32:
		return decimal.NewFromInt(int64(val)), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case uint:
		return fromUint(uint64(val)), nil
	case uint8:
		return fromUint(uint64(val)), nil
	case uint16:
		return fromUint(uint64(val)), nil
	case uint32:
		return fromUint(uint64(val)), nil
	case uint64:
		return fromUint(val), nil
	case float32:
		return fromFloat(float64(val))
	case float64:
		return fromFloat(val)
	case string:
		return parseAmountString(val)
	default:
		return decimal.Zero, fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
}

func fromUint(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

func fromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, ErrNotNumeric
	}
	return decimal.NewFromFloat(f), nil
}

func parseAmountString(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	negative := strings.HasPrefix(clean, "-")
	clean = strings.TrimPrefix(clean, "-")
	clean = strings.TrimLeft(clean, "$€£¥ ")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// ParseDate reads a time.Time or a string in one of the accepted layouts.
func ParseDate(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return time.Time{}, ErrNotDate
		}
		return val, nil
	case *time.Time:
		if val == nil || val.IsZero() {
			return time.Time{}, ErrNotDate
		}
		return *val, nil
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrNotDate, val)
	default:
		return time.Time{}, fmt.Errorf("%w: %T", ErrNotDate, v)
	}
}
