//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/letterdrop/letterdrop/internal/model"
	"github.com/letterdrop/letterdrop/internal/testutil"
	"github.com/letterdrop/letterdrop/internal/token"
)

func TestIntegrationInsertSubscriber(t *testing.T) {
	ctx, repo := newSubscriptionTestEnv(t)

	sub := testutil.NewTestSubscriber(t)
	if err := repo.InsertSubscriber(ctx, sub); err != nil {
		t.Fatalf("InsertSubscriber failed: %v", err)
	}

	stored, err := repo.GetSubscriberByEmail(ctx, sub.Email.String())
	if err != nil {
		t.Fatalf("GetSubscriberByEmail failed: %v", err)
	}
	if stored.ID != sub.ID {
		t.Errorf("ID mismatch: got %s, want %s", stored.ID, sub.ID)
	}
	if stored.Status != model.StatusPendingConfirmation {
		t.Errorf("Status mismatch: got %q, want %q", stored.Status, model.StatusPendingConfirmation)
	}
	if stored.Name.String() != sub.Name.String() {
		t.Errorf("Name mismatch: got %q, want %q", stored.Name, sub.Name)
	}
}

func TestIntegrationInsertSubscriberDuplicateEmail(t *testing.T) {
	ctx, repo := newSubscriptionTestEnv(t)

	sub1 := testutil.NewTestSubscriber(t)
	if err := repo.InsertSubscriber(ctx, sub1); err != nil {
		t.Fatalf("InsertSubscriber (first) failed: %v", err)
	}

	sub2 := testutil.NewTestSubscriber(t)
	sub2.Email = sub1.Email

	err := repo.InsertSubscriber(ctx, sub2)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got: %v", err)
	}
}

func TestIntegrationConfirmSubscriberByToken(t *testing.T) {
	ctx, repo := newSubscriptionTestEnv(t)

	sub := testutil.NewTestSubscriber(t)
	if err := repo.InsertSubscriber(ctx, sub); err != nil {
		t.Fatalf("InsertSubscriber failed: %v", err)
	}

	tok := &model.ConfirmationToken{Token: token.Generate(), SubscriptionID: sub.ID}
	if err := repo.InsertToken(ctx, tok); err != nil {
		t.Fatalf("InsertToken failed: %v", err)
	}

	if err := repo.ConfirmSubscriberByToken(ctx, tok.Token); err != nil {
		t.Fatalf("ConfirmSubscriberByToken failed: %v", err)
	}

	stored, err := repo.GetSubscriberByEmail(ctx, sub.Email.String())
	if err != nil {
		t.Fatalf("GetSubscriberByEmail failed: %v", err)
	}
	if stored.Status != model.StatusConfirmed {
		t.Errorf("expected status confirmed, got %q", stored.Status)
	}
}

func TestIntegrationConfirmUnknownToken(t *testing.T) {
	ctx, repo := newSubscriptionTestEnv(t)

	err := repo.ConfirmSubscriberByToken(ctx, token.Generate())
	if !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound, got: %v", err)
	}
}

func TestIntegrationConfirmIsIdempotent(t *testing.T) {
	ctx, repo := newSubscriptionTestEnv(t)

	sub := testutil.NewTestSubscriber(t)
	if err := repo.InsertSubscriber(ctx, sub); err != nil {
		t.Fatalf("InsertSubscriber failed: %v", err)
	}
	tok := &model.ConfirmationToken{Token: token.Generate(), SubscriptionID: sub.ID}
	if err := repo.InsertToken(ctx, tok); err != nil {
		t.Fatalf("InsertToken failed: %v", err)
	}

	// Redeeming twice leaves the subscriber confirmed; tokens are not
	// invalidated after use.
	for i := 0; i < 2; i++ {
		if err := repo.ConfirmSubscriberByToken(ctx, tok.Token); err != nil {
			t.Fatalf("ConfirmSubscriberByToken (attempt %d) failed: %v", i+1, err)
		}
	}

	stored, err := repo.GetSubscriberByEmail(ctx, sub.Email.String())
	if err != nil {
		t.Fatalf("GetSubscriberByEmail failed: %v", err)
	}
	if stored.Status != model.StatusConfirmed {
		t.Errorf("expected status confirmed, got %q", stored.Status)
	}
}

func newSubscriptionTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSubscriptionsSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset subscriptions schema: %v", err)
	}

	return ctx, repo
}
