package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/letterdrop/letterdrop/internal/model"
)

// Common errors for subscription repository operations.
var (
	ErrEmailTaken         = errors.New("email already subscribed")
	ErrTokenNotFound      = errors.New("subscription token not found")
	ErrSubscriberNotFound = errors.New("subscriber not found")
)

// uniqueViolationCode is the PostgreSQL error code for unique_violation.
const uniqueViolationCode = "23505"

// InsertSubscriber stores a new subscriber row.
// The email column carries a unique constraint; a duplicate signup
// surfaces as ErrEmailTaken.
func (r *Repository) InsertSubscriber(ctx context.Context, sub *model.Subscriber) error {
	query := `
		INSERT INTO subscriptions (id, email, name, subscribed_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		sub.ID,
		sub.Email.String(),
		sub.Name.String(),
		sub.SubscribedAt,
		string(sub.Status),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to insert subscriber: %w", err)
	}

	return nil
}

// InsertToken stores a confirmation token for a subscriber.
// Deliberately not part of the InsertSubscriber transaction; the two
// writes are independent and a failure here leaves the subscriber row
// in place.
func (r *Repository) InsertToken(ctx context.Context, tok *model.ConfirmationToken) error {
	query := `
		INSERT INTO subscription_tokens (subscription_token, subscription_id)
		VALUES ($1, $2)
	`

	_, err := r.pool.Exec(ctx, query, tok.Token, tok.SubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to insert subscription token: %w", err)
	}

	return nil
}

// ConfirmSubscriberByToken resolves a confirmation token to its owning
// subscriber and flips that subscriber's status to confirmed, inside one
// transaction. An unknown token returns ErrTokenNotFound with no mutation.
// Concurrent redemptions of the same token serialize through the row lock
// taken by the UPDATE.
func (r *Repository) ConfirmSubscriberByToken(ctx context.Context, token string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var subscriptionID string
	lookup := `
		SELECT subscription_id
		FROM subscription_tokens
		WHERE subscription_token = $1
	`
	if err := tx.QueryRow(ctx, lookup, token).Scan(&subscriptionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("failed to look up subscription token: %w", err)
	}

	update := `
		UPDATE subscriptions
		SET status = $1
		WHERE id = $2
	`
	if _, err := tx.Exec(ctx, update, string(model.StatusConfirmed), subscriptionID); err != nil {
		return fmt.Errorf("failed to confirm subscriber: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit confirmation: %w", err)
	}

	return nil
}

// GetSubscriberByEmail retrieves a subscriber by email address.
func (r *Repository) GetSubscriberByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	query := `
		SELECT id, email, name, subscribed_at, status
		FROM subscriptions
		WHERE email = $1
	`

	var (
		sub      model.Subscriber
		rawEmail string
		rawName  string
		status   string
	)
	err := r.pool.QueryRow(ctx, query, email).Scan(&sub.ID, &rawEmail, &rawName, &sub.SubscribedAt, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("failed to get subscriber by email: %w", err)
	}

	sub.Email, err = model.ParseSubscriberEmail(rawEmail)
	if err != nil {
		return nil, fmt.Errorf("stored email failed validation: %w", err)
	}
	sub.Name, err = model.ParseSubscriberName(rawName)
	if err != nil {
		return nil, fmt.Errorf("stored name failed validation: %w", err)
	}
	sub.Status = model.SubscriberStatus(status)

	return &sub, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
