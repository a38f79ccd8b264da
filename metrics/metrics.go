package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the process's Prometheus registry and instruments.
type Collector struct {
	reg *prometheus.Registry

	PollCycles     *prometheus.CounterVec // feed, result labels
	SkippedTicks   prometheus.Counter
	LastFeedUpdate *prometheus.GaugeVec // feed label, epoch seconds

	SnapshotVehicles    prometheus.Gauge
	SnapshotTripUpdates prometheus.Gauge

	StreamSubscribers prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		PollCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "metrolive_poll_cycles_total",
			Help: "Feed refresh outcomes per cycle.",
		}, []string{"feed", "result"}),
		SkippedTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "metrolive_poll_ticks_skipped_total",
			Help: "Poll ticks skipped because a cycle was still in flight.",
		}),
		LastFeedUpdate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "metrolive_feed_last_update_epoch",
			Help: "Header timestamp of the last successfully decoded feed.",
		}, []string{"feed"}),
		SnapshotVehicles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "metrolive_snapshot_vehicles",
			Help: "Vehicle reports in the current snapshot.",
		}),
		SnapshotTripUpdates: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "metrolive_snapshot_trip_updates",
			Help: "Trip-update reports in the current snapshot.",
		}),
		StreamSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "metrolive_stream_subscribers",
			Help: "Open websocket subscriptions.",
		}),
	}

	reg.MustRegister(
		c.PollCycles,
		c.SkippedTicks,
		c.LastFeedUpdate,
		c.SnapshotVehicles,
		c.SnapshotTripUpdates,
		c.StreamSubscribers,
	)
	return c
}

// Handler exposes the registry for the /metrics route.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
