package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the records module.
// Counters are partitioned by record kind (contact, task, appointment).
type Metrics struct {
	Created          *prometheus.CounterVec
	Updated          *prometheus.CounterVec
	Deleted          *prometheus.CounterVec
	VersionConflicts *prometheus.CounterVec
	UpdateDuration   *prometheus.HistogramVec
}

// New creates a new Metrics instance with all records module metrics registered.
func New() *Metrics {
	return &Metrics{
		Created: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "daybook_records_created_total",
			Help: "Total number of records created",
		}, []string{"kind"}),
		Updated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "daybook_records_updated_total",
			Help: "Total number of records updated",
		}, []string{"kind"}),
		Deleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "daybook_records_deleted_total",
			Help: "Total number of records deleted",
		}, []string{"kind"}),
		VersionConflicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "daybook_records_version_conflicts_total",
			Help: "Total number of updates rejected because the record changed concurrently",
		}, []string{"kind"}),
		UpdateDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "daybook_records_update_duration_seconds",
			Help:    "Duration of record update operations including the conditional save",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"kind"}),
	}
}

// IncrementCreated records a successful record creation.
func (m *Metrics) IncrementCreated(kind string) {
	m.Created.WithLabelValues(kind).Inc()
}

// IncrementUpdated records a successful record update.
func (m *Metrics) IncrementUpdated(kind string) {
	m.Updated.WithLabelValues(kind).Inc()
}

// IncrementDeleted records a successful record deletion.
func (m *Metrics) IncrementDeleted(kind string) {
	m.Deleted.WithLabelValues(kind).Inc()
}

// IncrementVersionConflict records an update lost to a concurrent writer.
func (m *Metrics) IncrementVersionConflict(kind string) {
	m.VersionConflicts.WithLabelValues(kind).Inc()
}

// ObserveUpdate records the duration of an update operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveUpdate(kind string, start time.Time) {
	m.UpdateDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
