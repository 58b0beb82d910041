package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Pearson correlation coefficient.
// ok is false when the lengths differ, there are fewer than two points,
// or either series has zero variance.
func Pearson(x, y []float64) (r float64, ok bool) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, false
	}
	if Variance(x) == 0 || Variance(y) == 0 {
		return 0, false
	}
	r = stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0, false
	}
	return r, true
}

// CorrelationMatrix is a symmetric Pearson matrix; Defined marks computable cells
type CorrelationMatrix struct {
	Labels  []string
	Values  [][]float64
	Defined [][]bool
}

// NewCorrelationMatrix computes pairwise Pearson coefficients of equally long columns
func NewCorrelationMatrix(labels []string, columns [][]float64) CorrelationMatrix {
	k := len(columns)
	m := CorrelationMatrix{
		Labels:  labels,
		Values:  make([][]float64, k),
		Defined: make([][]bool, k),
	}
	for i := range columns {
		m.Values[i] = make([]float64, k)
		m.Defined[i] = make([]bool, k)
	}

	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			var (
				r  float64
				ok bool
			)
			if i == j {
				// 분산 0이면 자기상관도 정의 불가
				r, ok = 1, len(columns[i]) >= 2 && Variance(columns[i]) > 0
				if !ok {
					r = 0
				}
			} else {
				r, ok = Pearson(columns[i], columns[j])
			}
			m.Values[i][j], m.Values[j][i] = r, r
			m.Defined[i][j], m.Defined[j][i] = ok, ok
		}
	}
	return m
}
