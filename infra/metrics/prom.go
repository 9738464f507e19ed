package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/energydash/core/metrics"
)

// PromSink records chart renders and source fetches in Prometheus metrics.
type PromSink struct {
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	fetches  *prometheus.CounterVec
}

// NewPromSink registers dashboard metrics on the default Prometheus registerer.
// The metrics server is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	renders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_renders_total",
		Help: "Total number of chart renders by outcome",
	}, []string{"chart", "kind", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_render_duration_seconds",
		Help:    "Time spent building and drawing one chart",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"chart"})
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_source_fetches_total",
		Help: "Total number of data source fetches by outcome",
	}, []string{"source", "outcome"})

	var err error
	if renders, err = register(reg, renders); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if fetches, err = register(reg, fetches); err != nil {
		return nil, err
	}
	return &PromSink{renders: renders, duration: duration, fetches: fetches}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRender counts the render and observes its duration.
func (s *PromSink) RecordRender(ev coremetrics.RenderEvent) error {
	s.renders.WithLabelValues(ev.Placeholder, ev.Kind, ev.Outcome).Inc()
	s.duration.WithLabelValues(ev.Placeholder).Observe(ev.Duration.Seconds())
	return nil
}

// RecordFetch counts a source fetch.
func (s *PromSink) RecordFetch(ev coremetrics.FetchEvent) error {
	s.fetches.WithLabelValues(ev.Source, ev.Outcome).Inc()
	return nil
}
