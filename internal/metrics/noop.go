package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncSubscriptionCreated is a no-op.
func (n *NoopRecorder) IncSubscriptionCreated() {}

// IncSubscriptionFailed is a no-op.
func (n *NoopRecorder) IncSubscriptionFailed(stage string) {}

// IncSubscriptionConfirmed is a no-op.
func (n *NoopRecorder) IncSubscriptionConfirmed() {}

// IncConfirmationRejected is a no-op.
func (n *NoopRecorder) IncConfirmationRejected() {}

// ObserveEmailSendDuration is a no-op.
func (n *NoopRecorder) ObserveEmailSendDuration(duration time.Duration) {}
