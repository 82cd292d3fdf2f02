package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-backoffice/components/records"
)

// MonthKey buckets a time by calendar month. Keys order chronologically
// across years; labels are short month names.
func MonthKey(t time.Time) (string, int64) {
	return t.Month().String()[:3], int64(t.Year())*12 + int64(t.Month()) - 1
}

// MonthLabel formats a bucket key with its year, e.g. "Jan 2024".
func MonthLabel(key int64) string {
	year := key / 12
	month := time.Month(key%12 + 1)
	return time.Date(int(year), month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// ByMonth returns a KeyFunc reading a date through fn.
func ByMonth[R any](fn func(R) (time.Time, bool)) KeyFunc[R] {
	return func(r R) (string, int64, bool) {
		t, ok := fn(r)
		if !ok || t.IsZero() {
			return "", 0, false
		}
		label, key := MonthKey(t)
		return label, key, true
	}
}

// DateField reads a date-like field of a Record.
func DateField(field string) func(records.Record) (time.Time, bool) {
	return func(r records.Record) (time.Time, bool) {
		v, ok := r.Get(field)
		if !ok {
			return time.Time{}, false
		}
		t, err := ParseDate(v)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
}

// AmountField reads a numeric field of a Record. Present values that do not
// parse as a number count as zero.
func AmountField(field string) ValueFunc[records.Record] {
	return func(r records.Record) (decimal.Decimal, bool) {
		v, ok := r.Get(field)
		if !ok {
			return decimal.Zero, false
		}
		amount, err := ParseAmount(v)
		if err != nil {
			return decimal.Zero, true
		}
		return amount, true
	}
}

// SumByMonth groups records by the month of dateField and sums amountField.
func SumByMonth(rs []records.Record, dateField, amountField string) []BucketSum {
	return GroupSum(rs, ByMonth(DateField(dateField)), AmountField(amountField))
}
