package common

import (
	"errors"
	"fmt"
	"math"

	"github.com/gangmuk/bufferbloater/env"
)

const NanosPerSecond = 1e9

var ErrNoTimestamps = errors.New("no timestamps to establish a time origin")

// Origin is the shared zero of a chart's time axis, in nanoseconds. It is
// only meaningful when returned by NewOrigin; adjusting timestamps with the
// zero Origin is a programming error and panics.
type Origin struct {
	nanos float64
	valid bool
}

// NewOrigin returns the minimum timestamp over the union of all series.
// Every series drawn on the same axis must be adjusted with the result.
func NewOrigin(series ...Series) (Origin, error) {
	min, seen := math.Inf(1), false
	for _, s := range series {
		for _, x := range s.X {
			if x < min {
				min = x
			}
			seen = true
		}
	}
	if !seen {
		return Origin{}, ErrNoTimestamps
	}
	return Origin{nanos: min, valid: true}, nil
}

func (o Origin) Valid() bool {
	return o.valid
}

// Nanos returns the origin timestamp.
func (o Origin) Nanos() float64 {
	o.check()
	return o.nanos
}

// Seconds converts a nanosecond timestamp to seconds since the origin.
func (o Origin) Seconds(ts float64) float64 {
	o.check()
	return (ts - o.nanos) / NanosPerSecond
}

func (o Origin) Adjust(xs []float64) []float64 {
	o.check()
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = (x - o.nanos) / NanosPerSecond
	}
	return out
}

// AdjustSeries returns a copy of s whose X values are relative seconds.
func (o Origin) AdjustSeries(s Series) Series {
	y := make([]float64, len(s.Y))
	copy(y, s.Y)
	return Series{X: o.Adjust(s.X), Y: y}
}

// Duration returns the time from the origin to the latest timestamp of the
// given series, in seconds. It is 0 when the series are all empty.
func (o Origin) Duration(series ...Series) float64 {
	o.check()
	end, seen := math.Inf(-1), false
	for _, s := range series {
		if s.Empty() {
			continue
		}
		end, seen = math.Max(end, s.MaxX()), true
	}
	if !seen {
		return 0
	}
	return o.Seconds(end)
}

func (o Origin) String() string {
	if !o.valid {
		return "origin(unset)"
	}
	return fmt.Sprintf("origin(%.0fns)", o.nanos)
}

func (o Origin) check() {
	if !o.valid {
		env.Fatal("time origin used before it was established")
	}
}
