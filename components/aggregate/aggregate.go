// Package aggregate groups records into keyed buckets and sums a value per bucket.
package aggregate

import (
	"slices"

	"github.com/shopspring/decimal"
)

// BucketSum is one group of an aggregation. Key is the bucket's ordering
// value; Label is what charts display.
type BucketSum struct {
	Label string          `json:"label"`
	Key   int64           `json:"key"`
	Sum   decimal.Decimal `json:"sum"`
	Count int             `json:"count"`
}

// KeyFunc derives the bucket of a record. ok is false when the record has no
// usable grouping value.
type KeyFunc[R any] func(R) (label string, key int64, ok bool)

// ValueFunc extracts the summed value. ok is false when the field is absent.
type ValueFunc[R any] func(R) (decimal.Decimal, bool)

// GroupSum buckets records by key and sums value per bucket. Records missing
// either the key or the value are skipped. The result is ordered by Key
// ascending, whatever the input order.
func GroupSum[R any](records []R, key KeyFunc[R], value ValueFunc[R]) []BucketSum {
	if key == nil || value == nil {
		return []BucketSum{}
	}
	index := make(map[int64]int)
	buckets := make([]BucketSum, 0)
	for _, record := range records {
		label, k, ok := key(record)
		if !ok {
			continue
		}
		amount, ok := value(record)
		if !ok {
			continue
		}
		i, seen := index[k]
		if !seen {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, BucketSum{Label: label, Key: k, Sum: decimal.Zero})
		}
		buckets[i].Sum = buckets[i].Sum.Add(amount)
		buckets[i].Count++
	}
	slices.SortFunc(buckets, func(a, b BucketSum) int {
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		}
		return 0
	})
	return buckets
}

// Total sums every bucket.
func Total(buckets []BucketSum) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Sum)
	}
	return total
}

// Labels returns the bucket labels in order.
func Labels(buckets []BucketSum) []string {
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	return labels
}

// Sums returns the bucket sums as floats, rounded to cents, for chart series.
func Sums(buckets []BucketSum) []float64 {
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = b.Sum.Round(2).InexactFloat64()
	}
	return out
}
