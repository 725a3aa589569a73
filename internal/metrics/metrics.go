package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phishhook_scans_total",
		Help: "URL classifications by verdict.",
	}, []string{"verdict"})

	EventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phishhook_events_published_total",
		Help: "Scan events broadcast to subscribers.",
	})

	WSSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "phishhook_ws_subscribers",
		Help: "Currently connected websocket subscribers.",
	})
)
