package report

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/gangmuk/bufferbloater/common"
	"github.com/gangmuk/bufferbloater/density"
	"github.com/gangmuk/bufferbloater/derive"
	"github.com/gangmuk/bufferbloater/telemetry"
)

const (
	// headroom keeps the tallest marker off the top edge of a panel.
	headroom = 1.3
	loadYMin = -50.0
	loadTick = 100.0
)

// Options control a render pass.
type Options struct {
	Interval   float64
	Resolution float64
	Format     string
	Title      string
	Strict     bool
}

func DefaultOptions() Options {
	return Options{
		Interval:   derive.DefaultInterval,
		Resolution: density.DefaultResolution,
		Format:     "pdf",
	}
}

// Bounds is one panel's visible data range.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Layout is everything needed to draw a report, with every timestamp
// already relative to the shared origin. Two layouts built from the same
// replicate are equal.
type Layout struct {
	Title    string
	Origin   common.Origin
	Duration float64

	LatencyBounds Bounds
	LoadBounds    Bounds

	Latency common.Series
	Load    common.Series
	Goodput common.Series
	Failure common.Series
	Retry   common.Series

	Timeouts       []density.Marker
	TimeoutOrigins []density.Marker
}

// axisChannels share the time axis and therefore the origin.
var axisChannels = []telemetry.Channel{
	telemetry.IncomingRate,
	telemetry.OutgoingTotal,
	telemetry.RetryCount,
	telemetry.Latency,
	telemetry.SuccessCount,
	telemetry.FailureCount,
	telemetry.Timeout,
	telemetry.TimeoutOrigin,
}

// NewLayout establishes the origin over every axis channel of rep, then
// adjusts, derives and encodes each plotted series with it.
func NewLayout(rep *telemetry.Replicate, opts Options) (*Layout, error) {
	if err := derive.CheckInterval(opts.Interval); err != nil {
		return nil, err
	}
	if !(opts.Resolution > 0) {
		return nil, fmt.Errorf("quantization resolution must be positive: %v", opts.Resolution)
	}

	axis := make([]common.Series, 0, len(axisChannels))
	for _, c := range axisChannels {
		axis = append(axis, rep.Get(c))
	}

	l := &Layout{Title: opts.Title}
	origin, err := common.NewOrigin(axis...)
	if errors.Is(err, common.ErrNoTimestamps) {
		glog.Warningf("%s: replicate %d has no samples, rendering an empty report", rep.Dir, rep.Index)
		l.setBounds()
		return l, nil
	} else if err != nil {
		return nil, err
	}
	l.Origin = origin
	l.Duration = origin.Duration(axis...)

	goodput, err := derive.Rate(rep.Get(telemetry.SuccessCount), opts.Interval)
	if err != nil {
		return nil, err
	}

	l.Latency = origin.AdjustSeries(rep.Get(telemetry.Latency))
	l.Load = origin.AdjustSeries(rep.Get(telemetry.IncomingRate))
	l.Goodput = origin.AdjustSeries(goodput)
	l.Failure = origin.AdjustSeries(rep.Get(telemetry.FailureCount))
	l.Retry = origin.AdjustSeries(rep.Get(telemetry.RetryCount))

	l.Timeouts = density.Encode(density.Timeout,
		origin.Adjust(rep.Get(telemetry.Timeout).X), opts.Resolution)
	l.TimeoutOrigins = density.Encode(density.TimeoutOrigin,
		origin.Adjust(rep.Get(telemetry.TimeoutOrigin).X), opts.Resolution)

	l.setBounds()
	return l, nil
}

func (l *Layout) setBounds() {
	xmax := l.Duration
	if xmax <= 0 {
		xmax = 1
	}

	latMax := headroom * l.Latency.MaxY()
	if latMax <= 0 {
		latMax = 1
	}
	l.LatencyBounds = Bounds{XMin: 0, XMax: xmax, YMin: 0, YMax: latMax}

	loadMax := headroom * common.MaxValue(l.Load, l.Goodput, l.Failure, l.Retry)
	if loadMax <= loadYMin {
		loadMax = 0
	}
	l.LoadBounds = Bounds{XMin: 0, XMax: xmax, YMin: loadYMin, YMax: loadMax}
}

// Classes returns the timeout classes that have at least one marker, in
// drawing order.
func (l *Layout) Classes() []density.Class {
	var out []density.Class
	if len(l.Timeouts) > 0 {
		out = append(out, density.Timeout)
	}
	if len(l.TimeoutOrigins) > 0 {
		out = append(out, density.TimeoutOrigin)
	}
	return out
}

// bandY converts a class band into data coordinates of the load panel.
func (b Bounds) bandY(band density.Band) (float64, float64) {
	h := b.YMax - b.YMin
	return b.YMin + band.Low*h, b.YMin + band.High*h
}
