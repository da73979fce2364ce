package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the task module.
type Metrics struct {
	TasksCreated  prometheus.Counter
	TasksUpdated  prometheus.Counter
	TasksDeleted  prometheus.Counter
	DeniedOps     *prometheus.CounterVec
	ListDuration  prometheus.Histogram
	WriteDuration prometheus.Histogram
}

// New creates a Metrics instance with all task module metrics registered.
func New() *Metrics {
	return &Metrics{
		TasksCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taskdeck_tasks_created_total",
			Help: "Total number of tasks created",
		}),
		TasksUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taskdeck_tasks_updated_total",
			Help: "Total number of tasks updated",
		}),
		TasksDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taskdeck_tasks_deleted_total",
			Help: "Total number of tasks deleted",
		}),
		DeniedOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_task_ops_denied_total",
			Help: "Task operations rejected by role policy or tenant scope",
		}, []string{"action"}),
		ListDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "taskdeck_task_list_duration_seconds",
			Help:    "Duration of org-scoped task list queries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		WriteDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "taskdeck_task_write_duration_seconds",
			Help:    "Duration of task create/update/delete operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementDenied records a policy or scope rejection for the given action.
func (m *Metrics) IncrementDenied(action string) {
	if m == nil {
		return
	}
	m.DeniedOps.WithLabelValues(action).Inc()
}

// ObserveList records the duration of a list query.
func (m *Metrics) ObserveList(start time.Time) {
	if m == nil {
		return
	}
	m.ListDuration.Observe(time.Since(start).Seconds())
}

// ObserveWrite records the duration of a mutating operation.
func (m *Metrics) ObserveWrite(start time.Time) {
	if m == nil {
		return
	}
	m.WriteDuration.Observe(time.Since(start).Seconds())
}
