// Package metrics counts factory builds with Prometheus.
//
//	reg := prometheus.NewRegistry()
//	m, err := metrics.New(reg)
//	f := factory.New(factory.WithObserver(m))
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/SilvertipSoftware/factorygirl/pkg/factory"
)

var _ factory.Observer = (*Metrics)(nil)

// Metrics implements factory.Observer.
type Metrics struct {
	built         *prometheus.CounterVec
	created       *prometheus.CounterVec
	failed        *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		built: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "factorygirl",
				Name:      "builds_total",
				Help:      "Models built, by factory",
			},
			[]string{"factory"},
		),
		created: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "factorygirl",
				Name:      "creates_total",
				Help:      "Models saved, by factory",
			},
			[]string{"factory"},
		),
		failed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "factorygirl",
				Name:      "failures_total",
				Help:      "Failed builds and creates, by factory, operation and reason",
			},
			[]string{"factory", "op", "reason"},
		),
		buildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "factorygirl",
				Name:      "build_duration_seconds",
				Help:      "Time spent building a model, including associations",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"factory"},
		),
	}

	for _, c := range []prometheus.Collector{m.built, m.created, m.failed, m.buildDuration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

// Built records a successful build.
func (m *Metrics) Built(name string, elapsed time.Duration) {
	m.built.WithLabelValues(name).Inc()
	m.buildDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// Created records a successful save.
func (m *Metrics) Created(name string) {
	m.created.WithLabelValues(name).Inc()
}

// Failed records a failed build or create.
func (m *Metrics) Failed(name, op string, err error) {
	m.failed.WithLabelValues(name, op, Reason(err)).Inc()
}

// Reason maps an error to a low-cardinality label value.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, factory.ErrUnknownFactory):
		return "unknown_factory"
	case errors.Is(err, factory.ErrMissingClassOption):
		return "missing_class"
	case errors.Is(err, factory.ErrUnknownClass):
		return "unknown_class"
	case errors.Is(err, factory.ErrUnknownSequence):
		return "unknown_sequence"
	case errors.Is(err, factory.ErrParentCycle):
		return "parent_cycle"
	case errors.Is(err, factory.ErrResolveLimit):
		return "resolve_limit"
	case errors.Is(err, factory.ErrPersistenceFailed):
		return "persistence"
	case errors.Is(err, factory.ErrNoStore):
		return "no_store"
	default:
		return "other"
	}
}
