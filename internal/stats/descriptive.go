package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// =============================================================================
// 기술 통계
// =============================================================================

// Sum returns the plain float64 sum (0 for empty input)
func Sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values)
}

// Mean returns the arithmetic mean (0 for empty input)
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// StdDev sample standard deviation (n-1).
// Returns 0 for fewer than two values; callers that need to tell
// "undefined" apart check the count themselves.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Variance sample variance (n-1), 0 for fewer than two values
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sumSq float64
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(values)-1)
}

// Min returns the smallest value (0 for empty input)
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Min(values)
}

// Max returns the largest value (0 for empty input)
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Max(values)
}

// Sorted returns an ascending copy
func Sorted(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}

// Percentile on an ascending slice, p in [0, 100].
// Linear interpolation between closest ranks: idx = p/100 * (n-1).
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	idx := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	// 선형 보간
	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Quantile is Percentile over unsorted input with q in [0, 1]
func Quantile(values []float64, q float64) float64 {
	return Percentile(Sorted(values), q*100)
}

// Median of unsorted input
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Round rounds half away from zero to the given number of decimals
func Round(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}
