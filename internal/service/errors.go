package service

import (
	"errors"
	"fmt"
)

// ErrTokenNotFound is returned by Confirm when the presented token does
// not exist. Distinct from a store failure: the caller treats it as an
// unauthorized request, not a server error.
var ErrTokenNotFound = errors.New("subscription token not found")

// PersistenceError reports a failed store operation. Maps to a server
// error; the wrapped cause stays in the logs and never reaches clients.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store failure while trying to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NotificationError reports a failed confirmation email send. The
// subscriber and token rows written before the send stay persisted.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("failed to send confirmation email: %v", e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
