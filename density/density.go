// Package density turns bursts of discrete timeout events into one
// vertical marker per time bucket, whose opacity tracks how many events the
// bucket holds relative to the densest bucket of the same class.
package density

import (
	"image/color"
	"math"
	"sort"
)

// DefaultResolution is the bucket width, in seconds.
const DefaultResolution = 0.1

const (
	minIntensity  = 0.2
	intensityGain = 0.9
)

// Band is the vertical extent of a class's markers, as fractions of the
// panel height.
type Band struct {
	Low, High float64
}

var (
	UpperBand = Band{Low: 0.5, High: 1.0}
	LowerBand = Band{Low: 0.0, High: 0.5}
)

// Class is one kind of timeout event. Each class is encoded on its own.
type Class struct {
	Name  string
	Color color.RGBA
	Band  Band
}

var (
	Timeout       = Class{Name: "timeout", Color: color.RGBA{R: 255, A: 255}, Band: UpperBand}
	TimeoutOrigin = Class{Name: "timeout_origin", Color: color.RGBA{R: 255, G: 165, A: 255}, Band: LowerBand}
)

// Histogram maps a bucket index to its event count. Bucket i covers the
// times that round to i*resolution.
type Histogram map[int64]int

// Marker is one drawn bucket.
type Marker struct {
	Class     Class
	Bucket    int64
	Time      float64
	Count     int
	Intensity float64
}

// Quantize rounds t to the nearest multiple of resolution, ties to even.
func Quantize(t, resolution float64) int64 {
	return int64(math.RoundToEven(t / resolution))
}

func Build(times []float64, resolution float64) Histogram {
	h := make(Histogram)
	for _, t := range times {
		h[Quantize(t, resolution)]++
	}
	return h
}

// Max returns the largest bucket count, 0 for an empty histogram.
func (h Histogram) Max() int {
	m := 0
	for _, c := range h {
		if c > m {
			m = c
		}
	}
	return m
}

// Buckets returns the populated bucket indexes in ascending order.
func (h Histogram) Buckets() []int64 {
	keys := make([]int64, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Intensity maps a bucket count to an opacity in [0.2, 1]. The densest
// bucket is fully opaque. A non-positive maxCount yields 0.
func Intensity(count, maxCount int) float64 {
	if maxCount <= 0 {
		return 0
	}
	return math.Min(1.0, float64(count)/float64(maxCount)*intensityGain+minIntensity)
}

// Encode buckets the relative event times of one class and returns its
// markers sorted by time. No markers are produced for an empty input.
func Encode(class Class, rel []float64, resolution float64) []Marker {
	if len(rel) == 0 {
		return nil
	}
	h := Build(rel, resolution)
	max := h.Max()
	markers := make([]Marker, 0, len(h))
	for _, b := range h.Buckets() {
		markers = append(markers, Marker{
			Class:     class,
			Bucket:    b,
			Time:      float64(b) * resolution,
			Count:     h[b],
			Intensity: Intensity(h[b], max),
		})
	}
	return markers
}

// Alpha returns the marker's class color at the marker's intensity.
func (m Marker) Alpha() color.NRGBA {
	c := m.Class.Color
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(m.Intensity * 255))}
}
