package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Confirmation tokens travel as query parameters; they must never show
// up in the request log.
func TestLoggerDoesNotLogQueryString(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	const token = "hx7Kp2mQ9vL4nR8sT1uW3yZ5a"
	req := httptest.NewRequest(http.MethodGet, "/subscriptions/confirm?subscription_token="+token, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	out := buf.String()
	if strings.Contains(out, token) {
		t.Errorf("log output leaks the subscription token: %s", out)
	}
	if !strings.Contains(out, "/subscriptions/confirm") {
		t.Errorf("log output missing request path: %s", out)
	}
}

func TestLoggerRecordsStatusCode(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"ok_is_info", http.StatusOK, `"level":"INFO"`},
		{"client_error_is_warn", http.StatusBadRequest, `"level":"WARN"`},
		{"server_error_is_error", http.StatusInternalServerError, `"level":"ERROR"`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
			}))

			req := httptest.NewRequest(http.MethodPost, "/subscriptions", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if !strings.Contains(buf.String(), test.level) {
				t.Errorf("expected %s in log output: %s", test.level, buf.String())
			}
		})
	}
}

func TestRequestIDIsGeneratedAndPropagated(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/health_check", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen == "" {
		t.Fatal("no request ID in context")
	}
	if got := rec.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("response header %q, context value %q", got, seen)
	}
}

func TestRequestIDHonorsIncomingHeader(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/health_check", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "upstream-id" {
		t.Errorf("request ID = %q, want upstream-id", seen)
	}
}
