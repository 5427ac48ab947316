package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gangmuk/bufferbloater/common"
	"github.com/gangmuk/bufferbloater/derive"
	"github.com/gangmuk/bufferbloater/telemetry"
)

// Summary condenses one replicate into the numbers an engineer checks
// first when a run looks congested.
type Summary struct {
	Replicate int
	Duration  float64

	Latency common.StatsSummary
	// LatencySlope is the least-squares growth of latency, in seconds of
	// latency per second of run time.
	LatencySlope    float64
	LatencyRSquared float64
	LastCompletion  float64

	Requests  float64
	Successes float64
	Failures  float64
	Retries   float64

	Timeouts           int
	TimeoutOrigins     int
	TimeoutBuckets     int
	PeakTimeoutsBucket int

	MissingChannels []string
	MalformedRows   int
}

func Summarize(rep *telemetry.Replicate, l *Layout) Summary {
	s := Summary{
		Replicate:      rep.Index,
		Duration:       l.Duration,
		Requests:       sum(rep.Get(telemetry.OutgoingTotal).Y),
		Successes:      sum(rep.Get(telemetry.SuccessCount).Y),
		Failures:       sum(rep.Get(telemetry.FailureCount).Y),
		Retries:        sum(rep.Get(telemetry.RetryCount).Y),
		Timeouts:       rep.Get(telemetry.Timeout).Len(),
		TimeoutOrigins: rep.Get(telemetry.TimeoutOrigin).Len(),
		TimeoutBuckets: len(l.Timeouts),
		MalformedRows:  rep.Malformed(),
	}
	for _, c := range rep.Missing() {
		s.MissingChannels = append(s.MissingChannels, c.String())
	}
	for _, m := range l.Timeouts {
		if m.Count > s.PeakTimeoutsBucket {
			s.PeakTimeoutsBucket = m.Count
		}
	}

	s.Latency = common.Stats(l.Latency.Y).Summary(common.C95)
	s.LatencySlope, s.LatencyRSquared = common.Slope(l.Latency.X, l.Latency.Y)
	for _, t := range derive.Completion(l.Latency.X, l.Latency.Y) {
		if t > s.LastCompletion {
			s.LastCompletion = t
		}
	}
	return s
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "replicate %d: %.1fs\n", s.Replicate, s.Duration)
	fmt.Fprintf(&b, "  latency: n=%d mean=%.4fs p50=%.4fs p99=%.4fs max=%.4fs slope=%.4f (r2 %.2f)\n",
		s.Latency.Count, s.Latency.Mean, s.Latency.P50, s.Latency.P99, s.Latency.Max,
		s.LatencySlope, s.LatencyRSquared)
	fmt.Fprintf(&b, "  requests=%.0f success=%.0f failure=%.0f retries=%.0f\n",
		s.Requests, s.Successes, s.Failures, s.Retries)
	fmt.Fprintf(&b, "  timeouts=%d timeout_origin=%d buckets=%d peak=%d\n",
		s.Timeouts, s.TimeoutOrigins, s.TimeoutBuckets, s.PeakTimeoutsBucket)
	if len(s.MissingChannels) > 0 {
		fmt.Fprintf(&b, "  missing: %s\n", strings.Join(s.MissingChannels, ", "))
	}
	if s.MalformedRows > 0 {
		fmt.Fprintf(&b, "  malformed rows skipped: %d\n", s.MalformedRows)
	}
	return b.String()
}

func (s Summary) WriteJSON(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func sum(vs []float64) float64 {
	t := 0.0
	for _, v := range vs {
		t += v
	}
	return t
}
