package model

import "net/mail"

// SubscriberEmail is an email address that passed the RFC 5322 grammar
// check. The zero value is invalid; obtain one through ParseSubscriberEmail.
type SubscriberEmail struct {
	value string
}

// ParseSubscriberEmail validates a raw email address.
// Only a bare address is accepted; display-name forms like
// "Jane <jane@example.com>" are rejected. No network or MX checks.
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return SubscriberEmail{}, &ValidationError{Field: "email", Reason: "not a valid email address"}
	}
	if addr.Address != raw {
		return SubscriberEmail{}, &ValidationError{Field: "email", Reason: "must be a bare address"}
	}
	return SubscriberEmail{value: raw}, nil
}

// String returns the validated address.
func (e SubscriberEmail) String() string {
	return e.value
}
