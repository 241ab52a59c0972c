// internal/report/aggregate.go
package report

import (
	"math"
	"sort"
	"time"
)

// round2 rounds to two decimal places; every percentage and cycle
// statistic the engine reports goes through it.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// percent computes num/den*100 rounded to two decimals. A zero
// denominator yields 0, never NaN or infinity.
func percent(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return round2(num / den * 100)
}

// monthKey buckets a date into its calendar month.
func monthKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01")
}

// daysBetween returns the whole days from a to b. Both values come out
// of date parsing at midnight, so the division is exact.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// mean returns the average of xs rounded to two decimals, 0 when empty.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return round2(sum / float64(len(xs)))
}

// percentile returns the p-th percentile of xs (0..100) with linear
// interpolation between closest ranks, 0 when empty.
func percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return round2(sorted[0])
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return round2(sorted[lo])
	}
	frac := rank - float64(lo)
	return round2(sorted[lo] + frac*(sorted[hi]-sorted[lo]))
}

// median is the 50th percentile.
func median(xs []float64) float64 {
	return percentile(xs, 50)
}

// shareAtMost returns the percentage of xs that are <= limit.
func shareAtMost(xs []float64, limit float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	count := 0
	for _, x := range xs {
		if x <= limit {
			count++
		}
	}
	return percent(float64(count), float64(len(xs)))
}

// sortedMonths returns the keys of a month-keyed map in calendar order.
func sortedMonths[V any](m map[string]V) []string {
	months := make([]string, 0, len(m))
	for month := range m {
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}
