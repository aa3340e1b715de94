package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SubmissionsAccepted *prometheus.CounterVec
	SubmissionsRejected *prometheus.CounterVec
	EventsConsumed      prometheus.Counter
	UploadedBytes       prometheus.Counter
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubmissionsAccepted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "confbackend_submissions_accepted_total",
			Help: "Total number of accepted submissions per flow",
		}, []string{"flow"}),
		SubmissionsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "confbackend_submissions_rejected_total",
			Help: "Total number of rejected submissions per flow and reason",
		}, []string{"flow", "reason"}),
		EventsConsumed: factory.NewCounter(prometheus.CounterOpts{
			Name: "confbackend_submission_events_consumed_total",
			Help: "Total number of submission events drained from the broker",
		}),
		UploadedBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "confbackend_uploaded_bytes_total",
			Help: "Total number of bytes uploaded to the object store",
		}),
	}
}

func (m *Metrics) IncAccepted(flow string) {
	m.SubmissionsAccepted.WithLabelValues(flow).Inc()
}

func (m *Metrics) IncRejected(flow, reason string) {
	m.SubmissionsRejected.WithLabelValues(flow, reason).Inc()
}

func (m *Metrics) IncEventsConsumed() {
	m.EventsConsumed.Inc()
}

func (m *Metrics) AddUploadedBytes(n int64) {
	m.UploadedBytes.Add(float64(n))
}
