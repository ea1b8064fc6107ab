package stations

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors updated by stations. One Metrics
// value may be shared by many stations; counts aggregate across them.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Submitted    *prometheus.CounterVec
	Completed    prometheus.Counter
	Panics       prometheus.Counter
	Pending      *prometheus.GaugeVec
	TaskDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg when reg is
// not nil.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "station",
			Name:      "tasks_submitted_total",
			Help:      "Number of tasks submitted, by where they were routed",
		}, []string{"route"}),
		Completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "station",
			Name:      "tasks_completed_total",
			Help:      "Number of tasks that finished, panicked or not",
		}),
		Panics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "station",
			Name:      "task_panics_total",
			Help:      "Number of tasks that panicked",
		}),
		Pending: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "station",
			Name:      "queue_pending",
			Help:      "Tasks queued or running per worker thread",
		}, []string{"thread"}),
		TaskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "station",
			Name:      "task_duration_seconds",
			Help:      "Execution time of tasks",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}

	if reg != nil {
		for _, c := range m.Collectors() {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Collectors returns every collector of m.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Submitted, m.Completed, m.Panics, m.Pending, m.TaskDuration}
}

func (m *Metrics) submitted(route string) {
	if m == nil {
		return
	}
	m.Submitted.WithLabelValues(route).Inc()
}

func (m *Metrics) observe(d time.Duration, panicked bool) {
	if m == nil {
		return
	}
	m.Completed.Inc()
	m.TaskDuration.Observe(d.Seconds())
	if panicked {
		m.Panics.Inc()
	}
}

// pendingGauge returns the gauge of one worker thread. Without metrics it
// returns a detached gauge nobody collects.
func (m *Metrics) pendingGauge(thread int) prometheus.Gauge {
	if m == nil {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: "queue_pending"})
	}
	return m.Pending.WithLabelValues(strconv.Itoa(thread))
}
