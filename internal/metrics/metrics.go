// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the subscription workflows.
type Recorder interface {
	// Signup path
	IncSubscriptionCreated()
	IncSubscriptionFailed(stage string) // stage: "validation", "store", "email"

	// Confirmation path
	IncSubscriptionConfirmed()
	IncConfirmationRejected() // unknown token

	// Email gateway
	ObserveEmailSendDuration(duration time.Duration)
}
