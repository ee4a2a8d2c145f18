// Package model defines domain entities for the application.
package model

import (
	"time"

	"github.com/google/uuid"
)

// SubscriberStatus represents the lifecycle state of a subscriber.
type SubscriberStatus string

const (
	// StatusPendingConfirmation marks a subscriber who signed up but has
	// not visited their confirmation link yet.
	StatusPendingConfirmation SubscriberStatus = "pending_confirmation"
	// StatusConfirmed marks a subscriber who redeemed their token.
	StatusConfirmed SubscriberStatus = "confirmed"
)

// Subscriber represents a mailing-list member.
// Status only ever moves pending_confirmation -> confirmed.
type Subscriber struct {
	ID           uuid.UUID
	Email        SubscriberEmail
	Name         SubscriberName
	SubscribedAt time.Time
	Status       SubscriberStatus
}

// ConfirmationToken ties a bearer token to the subscriber it can confirm.
type ConfirmationToken struct {
	Token          string
	SubscriptionID uuid.UUID
}
