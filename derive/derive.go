// Package derive computes per-sample metrics from captured series.
package derive

import (
	"errors"
	"fmt"

	"github.com/gangmuk/bufferbloater/common"
)

// DefaultInterval is the simulator's stats dump interval, in seconds.
const DefaultInterval = 1.0

var ErrInterval = errors.New("sampling interval must be positive")

// CheckInterval rejects intervals that cannot divide a count series.
func CheckInterval(interval float64) error {
	if !(interval > 0) {
		return fmt.Errorf("%w: %v", ErrInterval, interval)
	}
	return nil
}

// Rate divides each value of a count series by the sampling interval. The
// input is not modified.
func Rate(s common.Series, interval float64) (common.Series, error) {
	if err := CheckInterval(interval); err != nil {
		return common.Series{}, err
	}
	out := common.Series{
		X: make([]float64, len(s.X)),
		Y: make([]float64, len(s.Y)),
	}
	copy(out.X, s.X)
	for i, y := range s.Y {
		out.Y[i] = y / interval
	}
	return out, nil
}

// Completion pairs relative request start times with their latencies and
// returns when each request finished, in the same unit as start.
func Completion(start []float64, latency []float64) []float64 {
	n := len(start)
	if len(latency) < n {
		n = len(latency)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = start[i] + latency[i]
	}
	return out
}
