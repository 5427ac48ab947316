package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

type (
	Stats []float64

	StatsSummary struct {
		ZValue
		Count int
		CLow  float64
		CHigh float64
		Mean  float64
		Min   float64
		P50   float64
		P90   float64
		P99   float64
		Max   float64
	}

	ZValue struct {
		C float64
		Z float64
	}
)

var (
	C90 = ZValue{C: 90, Z: 1.645}
	C95 = ZValue{C: 95, Z: 1.96}
	C99 = ZValue{C: 99, Z: 2.58}
)

func (s *Stats) Update(v float64) {
	*s = append(*s, v)
}

func (s Stats) Count() int {
	return len(s)
}

func (s Stats) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	return stat.Mean(s, nil)
}

// Summary does not reorder s. An empty Stats yields a zero summary.
func (s Stats) Summary(z ZValue) StatsSummary {
	if len(s) == 0 {
		return StatsSummary{ZValue: z}
	}
	sorted := make([]float64, len(s))
	copy(sorted, s)
	sort.Float64s(sorted)

	m, std := stat.MeanStdDev(sorted, nil)
	se := 0.0
	if len(sorted) > 1 {
		se = stat.StdErr(std, float64(len(sorted)))
	}

	return StatsSummary{
		ZValue: z,
		Count:  len(sorted),
		CLow:   m - z.Z*se,
		CHigh:  m + z.Z*se,
		Mean:   m,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P50:    stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.90, stat.Empirical, sorted, nil),
		P99:    stat.Quantile(0.99, stat.Empirical, sorted, nil),
	}
}

// Slope fits y = a + b*x by least squares and returns b and R². Fewer than
// two points give a zero fit.
func Slope(x, y []float64) (slope, rsquared float64) {
	if len(x) < 2 || len(x) != len(y) {
		return 0, 0
	}
	a, b := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(b) || math.IsInf(b, 0) {
		return 0, 0
	}
	r2 := stat.RSquared(x, y, nil, a, b)
	if math.IsNaN(r2) {
		r2 = 0
	}
	return b, r2
}
