package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrInsufficientData a group is too small for the test
	ErrInsufficientData = errors.New("insufficient data")
	// ErrZeroVariance the test statistic is undefined because there is no spread
	ErrZeroVariance = errors.New("zero variance")
)

// TestResult is a test statistic with its two-tailed p-value
type TestResult struct {
	Statistic float64
	PValue    float64
	DF1       float64
	DF2       float64 // 0 for the t-test
}

// TTestInd two-sample Student t-test with pooled variance (equal variances assumed).
// Both groups need more than one observation.
func TTestInd(a, b []float64) (TestResult, error) {
	n1, n2 := float64(len(a)), float64(len(b))
	if len(a) < 2 || len(b) < 2 {
		return TestResult{}, ErrInsufficientData
	}

	df := n1 + n2 - 2
	pooled := ((n1-1)*Variance(a) + (n2-1)*Variance(b)) / df
	if pooled == 0 {
		return TestResult{}, ErrZeroVariance
	}

	se := math.Sqrt(pooled * (1/n1 + 1/n2))
	t := (Mean(a) - Mean(b)) / se

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))

	return TestResult{Statistic: t, PValue: clampP(p), DF1: df}, nil
}

// OneWayANOVA F-test across groups.
// Needs at least two non-empty groups and more observations than groups.
func OneWayANOVA(groups ...[]float64) (TestResult, error) {
	var (
		k      int
		n      int
		sumAll float64
	)
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		k++
		n += len(g)
		sumAll += Sum(g)
	}
	if k < 2 || n-k <= 0 {
		return TestResult{}, ErrInsufficientData
	}

	grand := sumAll / float64(n)
	var ssb, ssw float64
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		m := Mean(g)
		ssb += float64(len(g)) * (m - grand) * (m - grand)
		for _, v := range g {
			ssw += (v - m) * (v - m)
		}
	}
	if ssw == 0 {
		return TestResult{}, ErrZeroVariance
	}

	df1 := float64(k - 1)
	df2 := float64(n - k)
	f := (ssb / df1) / (ssw / df2)

	dist := distuv.F{D1: df1, D2: df2}
	p := dist.Survival(f)

	return TestResult{Statistic: f, PValue: clampP(p), DF1: df1, DF2: df2}, nil
}

func clampP(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 1
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
