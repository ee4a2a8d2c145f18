package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder exposes workflow metrics to Prometheus.
type PrometheusRecorder struct {
	subscriptionsCreated   prometheus.Counter
	subscriptionsFailed    *prometheus.CounterVec
	subscriptionsConfirmed prometheus.Counter
	confirmationsRejected  prometheus.Counter
	emailSendDuration      prometheus.Histogram
}

// NewPrometheus registers the workflow metrics with the given registerer
// and returns a Recorder backed by them. Pass prometheus.DefaultRegisterer
// in production.
func NewPrometheus(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		subscriptionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "letterdrop_subscriptions_created_total",
			Help: "Total number of pending subscriptions created",
		}),
		subscriptionsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "letterdrop_subscriptions_failed_total",
			Help: "Total number of failed signup attempts by stage",
		}, []string{"stage"}),
		subscriptionsConfirmed: factory.NewCounter(prometheus.CounterOpts{
			Name: "letterdrop_subscriptions_confirmed_total",
			Help: "Total number of subscriptions confirmed via token",
		}),
		confirmationsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "letterdrop_confirmations_rejected_total",
			Help: "Total number of confirmation attempts with an unknown token",
		}),
		emailSendDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "letterdrop_email_send_duration_seconds",
			Help:    "Duration of confirmation email gateway calls",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// IncSubscriptionCreated records a stored pending subscription.
func (p *PrometheusRecorder) IncSubscriptionCreated() {
	p.subscriptionsCreated.Inc()
}

// IncSubscriptionFailed records a failed signup attempt.
func (p *PrometheusRecorder) IncSubscriptionFailed(stage string) {
	p.subscriptionsFailed.WithLabelValues(stage).Inc()
}

// IncSubscriptionConfirmed records a successful confirmation.
func (p *PrometheusRecorder) IncSubscriptionConfirmed() {
	p.subscriptionsConfirmed.Inc()
}

// IncConfirmationRejected records a confirmation attempt with an unknown token.
func (p *PrometheusRecorder) IncConfirmationRejected() {
	p.confirmationsRejected.Inc()
}

// ObserveEmailSendDuration records how long a gateway call took.
func (p *PrometheusRecorder) ObserveEmailSendDuration(duration time.Duration) {
	p.emailSendDuration.Observe(duration.Seconds())
}
