package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	Casts        *prometheus.CounterVec
	CastDuration *prometheus.HistogramVec
	NodeVisits   *prometheus.CounterVec
	SkillsLoaded prometheus.Gauge
	LoadErrors   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Casts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skilltree_casts_total",
				Help: "Total number of casts by skill and outcome",
			},
			[]string{"skill_id", "success", "reason"},
		),
		CastDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skilltree_cast_duration_seconds",
				Help:    "Duration of tree traversals",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"skill_id"},
		),
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skilltree_node_visits_total",
				Help: "Total number of node visits by category and outcome",
			},
			[]string{"category", "passed"},
		),
		SkillsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "skilltree_skills_loaded",
				Help: "Number of installed skill definitions",
			},
		),
		LoadErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skilltree_load_errors_total",
				Help: "Total number of load errors by code",
			},
			[]string{"code"},
		),
	}
	reg.MustRegister(m.Casts, m.CastDuration, m.NodeVisits, m.SkillsLoaded, m.LoadErrors)
	return m
}

// Hooks returns lifecycle hooks that record cast and node metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeLeave: func(_ context.Context, e *domain.NodeEvent) {
			m.NodeVisits.WithLabelValues(e.Category.Tag(), strconv.FormatBool(e.Passed)).Inc()
		},
		OnCast: func(_ context.Context, e *domain.CastEvent) {
			m.Casts.WithLabelValues(e.SkillID, strconv.FormatBool(e.Success), e.Reason).Inc()
			m.CastDuration.WithLabelValues(e.SkillID).Observe(e.Duration.Seconds())
		},
	}
}

// ObserveLoad records the outcome of a load pass.
func (m *Metrics) ObserveLoad(installed int, reports []*domain.Report) {
	m.SkillsLoaded.Set(float64(installed))
	for _, r := range reports {
		for _, e := range r.Errors {
			m.LoadErrors.WithLabelValues(string(e.Code)).Inc()
		}
	}
}
