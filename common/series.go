package common

import "math"

// Series is a two-column time series as captured by the simulator: X holds
// nanosecond epoch timestamps (or relative seconds once adjusted) and Y the
// sampled values. The slices always have equal length.
type Series struct {
	X []float64
	Y []float64
}

func (s *Series) Add(x, y float64) {
	s.X = append(s.X, x)
	s.Y = append(s.Y, y)
}

func (s Series) Len() int {
	return len(s.X)
}

func (s Series) Empty() bool {
	return len(s.X) == 0
}

// MaxY returns the largest value, or 0 for an empty series.
func (s Series) MaxY() float64 {
	return maxOf(s.Y)
}

// MaxX returns the latest timestamp, or 0 for an empty series.
func (s Series) MaxX() float64 {
	return maxOf(s.X)
}

// MaxValue returns the largest Y across all given series, 0 if they are
// all empty.
func MaxValue(series ...Series) float64 {
	m, seen := 0.0, false
	for _, s := range series {
		for _, y := range s.Y {
			if !seen || y > m {
				m, seen = y, true
			}
		}
	}
	return m
}

func maxOf(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	m := math.Inf(-1)
	for _, v := range vs {
		m = math.Max(m, v)
	}
	return m
}
