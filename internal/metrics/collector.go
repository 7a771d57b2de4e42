package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/snarg/langdetect/internal/detect"
)

// DetectionStats provides the metrics collector access to live
// coordinator state.
type DetectionStats interface {
	Stats() detect.Stats
}

// Collector implements prometheus.Collector to read live gauges at scrape time.
type Collector struct {
	stats DetectionStats

	registeredProviders *prometheus.Desc
	completedDetections *prometheus.Desc
	failedDetections    *prometheus.Desc
}

// NewCollector creates a collector that reads coordinator state at
// scrape time. stats may be nil (gauges report 0).
func NewCollector(stats DetectionStats) *Collector {
	return &Collector{
		stats: stats,
		registeredProviders: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "registered_providers"),
			"Number of providers in the registry.",
			nil, nil,
		),
		completedDetections: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "completed_detections_total"),
			"Lifetime successful provider invocations.",
			nil, nil,
		),
		failedDetections: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "failed_detections_total"),
			"Lifetime failed provider invocations.",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.registeredProviders
	ch <- c.completedDetections
	ch <- c.failedDetections
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	var s detect.Stats
	if c.stats != nil {
		s = c.stats.Stats()
	}
	ch <- prometheus.MustNewConstMetric(c.registeredProviders, prometheus.GaugeValue, float64(s.Providers))
	ch <- prometheus.MustNewConstMetric(c.completedDetections, prometheus.CounterValue, float64(s.Completed))
	ch <- prometheus.MustNewConstMetric(c.failedDetections, prometheus.CounterValue, float64(s.Failed))
}
