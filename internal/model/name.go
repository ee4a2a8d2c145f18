package model

import (
	"strings"

	"github.com/rivo/uniseg"
)

// maxNameGraphemes bounds the name length in grapheme clusters, not bytes,
// so multi-byte scripts get the same limit as ASCII.
const maxNameGraphemes = 256

// forbiddenNameChars are rejected anywhere in a subscriber name.
const forbiddenNameChars = `/\(){}<>"`

// SubscriberName is a subscriber display name that passed validation.
// The zero value is invalid; obtain one through ParseSubscriberName.
type SubscriberName struct {
	value string
}

// ParseSubscriberName validates a raw name into a SubscriberName.
// It fails on empty or whitespace-only input, on any forbidden character,
// and on names longer than 256 grapheme clusters.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	if strings.TrimSpace(raw) == "" {
		return SubscriberName{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.ContainsAny(raw, forbiddenNameChars) {
		return SubscriberName{}, &ValidationError{Field: "name", Reason: "contains a forbidden character"}
	}
	if uniseg.GraphemeClusterCount(raw) > maxNameGraphemes {
		return SubscriberName{}, &ValidationError{Field: "name", Reason: "exceeds 256 characters"}
	}
	return SubscriberName{value: raw}, nil
}

// String returns the validated name.
func (n SubscriberName) String() string {
	return n.value
}
