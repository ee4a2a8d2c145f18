// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/letterdrop/letterdrop/internal/metrics"
	"github.com/letterdrop/letterdrop/internal/model"
	"github.com/letterdrop/letterdrop/internal/repository"
	"github.com/letterdrop/letterdrop/internal/token"
)

const confirmationSubject = "Welcome!"

// subscriptionStore is the slice of the repository the workflows use.
type subscriptionStore interface {
	InsertSubscriber(ctx context.Context, sub *model.Subscriber) error
	InsertToken(ctx context.Context, tok *model.ConfirmationToken) error
	ConfirmSubscriberByToken(ctx context.Context, token string) error
}

// emailSender is the outbound gateway contract.
type emailSender interface {
	SendEmail(ctx context.Context, to model.SubscriberEmail, subject, htmlBody, textBody string) error
}

// SubscriptionService orchestrates the signup and confirmation workflows.
// Stateless; safe for concurrent use.
type SubscriptionService struct {
	store   subscriptionStore
	sender  emailSender
	baseURL string
	metrics metrics.Recorder
}

// NewSubscriptionService creates a new SubscriptionService. baseURL is the
// public address of this application, used to build confirmation links.
func NewSubscriptionService(store subscriptionStore, sender emailSender, baseURL string, recorder metrics.Recorder) *SubscriptionService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &SubscriptionService{
		store:   store,
		sender:  sender,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		metrics: recorder,
	}
}

// SubscribeInput carries the raw signup form fields.
type SubscribeInput struct {
	Name  string
	Email string
}

// Subscribe runs the signup workflow: validate, persist the subscriber as
// pending, persist a confirmation token, send the confirmation email.
// The workflow stops at the first failing step:
//   - *model.ValidationError: bad input, nothing persisted
//   - *PersistenceError: a write failed, earlier writes stay
//   - *NotificationError: the email failed, both rows stay persisted
//
// The subscriber and token inserts are two separate writes, not one
// transaction; a crash in between leaves a subscriber without a token.
func (s *SubscriptionService) Subscribe(ctx context.Context, input SubscribeInput) error {
	name, err := model.ParseSubscriberName(input.Name)
	if err != nil {
		s.metrics.IncSubscriptionFailed("validation")
		return err
	}
	email, err := model.ParseSubscriberEmail(input.Email)
	if err != nil {
		s.metrics.IncSubscriptionFailed("validation")
		return err
	}

	sub := &model.Subscriber{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		SubscribedAt: time.Now().UTC(),
		Status:       model.StatusPendingConfirmation,
	}
	if err := s.store.InsertSubscriber(ctx, sub); err != nil {
		s.metrics.IncSubscriptionFailed("store")
		return &PersistenceError{Op: "insert subscriber", Err: err}
	}

	tok := &model.ConfirmationToken{
		Token:          token.Generate(),
		SubscriptionID: sub.ID,
	}
	if err := s.store.InsertToken(ctx, tok); err != nil {
		s.metrics.IncSubscriptionFailed("store")
		return &PersistenceError{Op: "insert subscription token", Err: err}
	}

	start := time.Now()
	err = s.sendConfirmationEmail(ctx, email, tok.Token)
	s.metrics.ObserveEmailSendDuration(time.Since(start))
	if err != nil {
		s.metrics.IncSubscriptionFailed("email")
		return &NotificationError{Err: err}
	}

	s.metrics.IncSubscriptionCreated()
	return nil
}

// Confirm redeems a confirmation token, flipping the owning subscriber to
// confirmed. Lookup and update happen in one store transaction.
func (s *SubscriptionService) Confirm(ctx context.Context, tokenValue string) error {
	if err := s.store.ConfirmSubscriberByToken(ctx, tokenValue); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			s.metrics.IncConfirmationRejected()
			return ErrTokenNotFound
		}
		return &PersistenceError{Op: "confirm subscriber", Err: err}
	}

	s.metrics.IncSubscriptionConfirmed()
	return nil
}

// ConfirmationLink builds the URL a subscriber visits to confirm.
func (s *SubscriptionService) ConfirmationLink(tokenValue string) string {
	return fmt.Sprintf("%s/subscriptions/confirm?subscription_token=%s", s.baseURL, tokenValue)
}

func (s *SubscriptionService) sendConfirmationEmail(ctx context.Context, to model.SubscriberEmail, tokenValue string) error {
	link := s.ConfirmationLink(tokenValue)
	htmlBody := fmt.Sprintf(`Welcome to our newsletter. Click <a href="%s">here</a>`, link)
	textBody := fmt.Sprintf("Welcome to our newsletter. Click here -- %s", link)
	return s.sender.SendEmail(ctx, to, confirmationSubject, htmlBody, textBody)
}
