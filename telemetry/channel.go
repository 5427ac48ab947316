package telemetry

import "fmt"

// Channel names one telemetry stream written by the simulator. Files are
// laid out as "<channel>.<replicate>.csv" in the run directory.
type Channel string

const (
	IncomingRate    Channel = "client.rps"
	OutgoingTotal   Channel = "client.rq.total.count"
	RetryCount      Channel = "client.rq.retry.count"
	Latency         Channel = "client.rq.latency"
	SuccessMarker   Channel = "client.rq.success_hist"
	SuccessCount    Channel = "client.rq.success.count"
	FailureCount    Channel = "client.rq.failure.count"
	Timeout         Channel = "client.rq.timeout"
	TimeoutOrigin   Channel = "client.rq.timeout_origin"
	ExpectedLatency Channel = "server.expected_latency"
)

// Channels lists every channel loaded for a replicate, in load order.
var Channels = []Channel{
	IncomingRate,
	OutgoingTotal,
	RetryCount,
	Latency,
	SuccessMarker,
	SuccessCount,
	FailureCount,
	Timeout,
	TimeoutOrigin,
	ExpectedLatency,
}

func (c Channel) File(replicate int) string {
	return fmt.Sprintf("%s.%d.csv", c, replicate)
}

func (c Channel) String() string {
	return string(c)
}
