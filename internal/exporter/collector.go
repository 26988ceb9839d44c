package exporter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"auto-monocle/internal/discovery"
	"auto-monocle/internal/logging"
)

// Runner performs one discovery run. *discovery.Discoverer satisfies it.
type Runner interface {
	Run(ctx context.Context, filter discovery.Filter) *discovery.Result
}

var (
	upDesc = prometheus.NewDesc(
		"monocle_discovery_up", "Whether the entity states could be fetched on the last scrape.", nil, nil,
	)
	durationDesc = prometheus.NewDesc(
		"monocle_discovery_duration_seconds", "Time taken by the discovery run.", nil, nil,
	)
	discoveredDesc = prometheus.NewDesc(
		"monocle_cameras_discovered", "Camera entities passing the filters.", nil, nil,
	)
	resolvedDesc = prometheus.NewDesc(
		"monocle_cameras_resolved", "Camera entities with a stream URL.", nil, nil,
	)
	candidatesDesc = prometheus.NewDesc(
		"monocle_candidates", "Stream candidates offered by each source.", []string{"source"}, nil,
	)
	sourceUpDesc = prometheus.NewDesc(
		"monocle_source_up", "Whether the source query succeeded.", []string{"source"}, nil,
	)
	cameraResolvedDesc = prometheus.NewDesc(
		"monocle_camera_resolved", "1 when the camera has a stream URL.", []string{"entity_id", "name", "source"}, nil,
	)
)

// Collector runs discovery on every scrape. Scrapes are serialized so two
// runs never overlap.
type Collector struct {
	Runner  Runner
	Filter  discovery.Filter
	Timeout time.Duration

	mu  sync.Mutex
	log *slog.Logger
}

func NewCollector(runner Runner, filter discovery.Filter, timeout time.Duration, log *slog.Logger) *Collector {
	return &Collector{
		Runner:  runner,
		Filter:  filter,
		Timeout: timeout,
		log:     logging.Component(log, "exporter"),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- durationDesc
	ch <- discoveredDesc
	ch <- resolvedDesc
	ch <- candidatesDesc
	ch <- sourceUpDesc
	ch <- cameraResolvedDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := context.Background()
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	start := time.Now()
	res := c.Runner.Run(ctx, c.Filter)
	elapsed := time.Since(start)

	up := 1.0
	if res.CatalogError != nil {
		up = 0.0
		c.log.Warn("scrape could not fetch entity states", "error", res.CatalogError)
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, up)
	ch <- prometheus.MustNewConstMetric(durationDesc, prometheus.GaugeValue, elapsed.Seconds())
	ch <- prometheus.MustNewConstMetric(discoveredDesc, prometheus.GaugeValue, float64(res.Discovered()))
	ch <- prometheus.MustNewConstMetric(resolvedDesc, prometheus.GaugeValue, float64(res.Resolved()))

	for _, kind := range discovery.PassOrder {
		ch <- prometheus.MustNewConstMetric(candidatesDesc, prometheus.GaugeValue, float64(res.Candidates[kind]), kind.String())

		sourceUp := 1.0
		if res.Failed[kind] {
			sourceUp = 0.0
		}
		ch <- prometheus.MustNewConstMetric(sourceUpDesc, prometheus.GaugeValue, sourceUp, kind.String())
	}

	for _, e := range res.Entities {
		resolved := 0.0
		if e.Bound() {
			resolved = 1.0
		}
		ch <- prometheus.MustNewConstMetric(cameraResolvedDesc, prometheus.GaugeValue, resolved,
			e.ID, e.DisplayName, e.BoundSource.String())
	}
}
