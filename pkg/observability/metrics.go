package observability

import (
	"context"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts editing activity.
type Metrics struct {
	Commits     *prometheus.CounterVec
	Rejections  *prometheus.CounterVec
	History     *prometheus.CounterVec
	Synchronize prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Commits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pageforge_commits_total",
				Help: "Total number of operations that produced a new document",
			},
			[]string{"op"},
		),
		Rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pageforge_rejections_total",
				Help: "Total number of illegal operations",
			},
			[]string{"op"},
		),
		History: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pageforge_history_moves_total",
				Help: "Total number of undo and redo steps",
			},
			[]string{"direction"},
		),
		Synchronize: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pageforge_synchronizations_total",
			Help: "Total number of commits that regenerated or propagated header/footer content",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Commits, m.Rejections, m.History, m.Synchronize)
	}
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(_ context.Context, e *domain.EditEvent) {
			m.Commits.WithLabelValues(e.Op).Inc()
			if e.Synchronized {
				m.Synchronize.Inc()
			}
		},
		OnReject: func(_ context.Context, e *domain.EditEvent) {
			m.Rejections.WithLabelValues(e.Op).Inc()
		},
		OnUndo: func(context.Context, *domain.HistoryEvent) {
			m.History.WithLabelValues(string(domain.EventUndo)).Inc()
		},
		OnRedo: func(context.Context, *domain.HistoryEvent) {
			m.History.WithLabelValues(string(domain.EventRedo)).Inc()
		},
	}
}
