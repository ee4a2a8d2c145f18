package email

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/letterdrop/letterdrop/internal/model"
)

func mustEmail(t *testing.T, raw string) model.SubscriberEmail {
	t.Helper()
	email, err := model.ParseSubscriberEmail(raw)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", raw, err)
	}
	return email
}

func TestSendEmailBuildsGatewayRequest(t *testing.T) {
	var (
		gotPath   string
		gotToken  string
		gotBody   map[string]string
		callCount int
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		gotPath = r.URL.Path
		gotToken = r.Header.Get(AuthHeader)

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("failed to read request body: %v", err)
		}
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, mustEmail(t, "newsletter@letterdrop.io"), "secret-token", 5*time.Second)

	err := client.SendEmail(context.Background(), mustEmail(t, "jane@example.com"), "Welcome!", "<p>hi</p>", "hi")
	if err != nil {
		t.Fatalf("SendEmail failed: %v", err)
	}

	if callCount != 1 {
		t.Errorf("expected exactly one request, got %d", callCount)
	}
	if gotPath != "/email" {
		t.Errorf("expected path /email, got %q", gotPath)
	}
	if gotToken != "secret-token" {
		t.Errorf("expected auth token header, got %q", gotToken)
	}

	want := map[string]string{
		"From":     "newsletter@letterdrop.io",
		"To":       "jane@example.com",
		"Subject":  "Welcome!",
		"HtmlBody": "<p>hi</p>",
		"TextBody": "hi",
	}
	for k, v := range want {
		if gotBody[k] != v {
			t.Errorf("payload field %s = %q, want %q", k, gotBody[k], v)
		}
	}
	if len(gotBody) != len(want) {
		t.Errorf("payload has %d fields, want %d: %v", len(gotBody), len(want), gotBody)
	}
}

func TestSendEmailNon2xxIsGatewayError(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(srv.URL, mustEmail(t, "newsletter@letterdrop.io"), "t", 5*time.Second)
		err := client.SendEmail(context.Background(), mustEmail(t, "jane@example.com"), "s", "h", "t")
		srv.Close()

		var gErr *GatewayError
		if !errors.As(err, &gErr) {
			t.Fatalf("status %d: expected *GatewayError, got %v", status, err)
		}
		if gErr.StatusCode != status {
			t.Errorf("expected status %d in error, got %d", status, gErr.StatusCode)
		}
	}
}

func TestSendEmailTimeoutIsGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, mustEmail(t, "newsletter@letterdrop.io"), "t", 50*time.Millisecond)
	err := client.SendEmail(context.Background(), mustEmail(t, "jane@example.com"), "s", "h", "t")

	var gErr *GatewayError
	if !errors.As(err, &gErr) {
		t.Fatalf("expected *GatewayError, got %v", err)
	}
	if gErr.StatusCode != 0 {
		t.Errorf("timeout should have no status code, got %d", gErr.StatusCode)
	}
}

func TestSendEmailUnreachableHostIsGatewayError(t *testing.T) {
	// Server is closed before the call, so the dial fails.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, mustEmail(t, "newsletter@letterdrop.io"), "t", time.Second)
	err := client.SendEmail(context.Background(), mustEmail(t, "jane@example.com"), "s", "h", "t")

	var gErr *GatewayError
	if !errors.As(err, &gErr) {
		t.Fatalf("expected *GatewayError, got %v", err)
	}
}
