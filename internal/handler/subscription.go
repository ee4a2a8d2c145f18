package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/letterdrop/letterdrop/internal/middleware"
	"github.com/letterdrop/letterdrop/internal/model"
	"github.com/letterdrop/letterdrop/internal/service"
)

// subscriptionService is the workflow contract this handler drives.
type subscriptionService interface {
	Subscribe(ctx context.Context, input service.SubscribeInput) error
	Confirm(ctx context.Context, token string) error
}

// SubscriptionHandler handles signup and confirmation requests.
// Response bodies stay empty on these endpoints; only the status code is
// the contract. Failure detail goes to the logs, never to the client.
type SubscriptionHandler struct {
	svc    subscriptionService
	logger *slog.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(svc subscriptionService, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		svc:    svc,
		logger: logger,
	}
}

// Subscribe handles POST /subscriptions.
// Expects an application/x-www-form-urlencoded body with name and email.
// 200 empty body on success, 400 on validation failure, 500 on a store or
// gateway failure.
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	input := service.SubscribeInput{
		Name:  r.PostForm.Get("name"),
		Email: r.PostForm.Get("email"),
	}

	if err := h.svc.Subscribe(r.Context(), input); err != nil {
		h.logError(r, "subscribe_failed", err)
		w.WriteHeader(subscribeStatus(err))
		return
	}

	h.logger.Info("subscription_created",
		"request_id", middleware.GetRequestID(r.Context()),
	)
	w.WriteHeader(http.StatusOK)
}

// Confirm handles GET /subscriptions/confirm.
// 200 on success, 400 when subscription_token is missing, 401 when the
// token is unknown, 500 on a store failure.
func (h *SubscriptionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("subscription_token")
	if token == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.svc.Confirm(r.Context(), token); err != nil {
		h.logError(r, "confirmation_failed", err)
		w.WriteHeader(confirmStatus(err))
		return
	}

	h.logger.Info("subscription_confirmed",
		"request_id", middleware.GetRequestID(r.Context()),
	)
	w.WriteHeader(http.StatusOK)
}

// subscribeStatus maps a signup workflow error to an HTTP status.
func subscribeStatus(err error) int {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// confirmStatus maps a confirmation workflow error to an HTTP status.
func confirmStatus(err error) int {
	if errors.Is(err, service.ErrTokenNotFound) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// logError records the full error chain; %v on wrapped errors prints
// every layer of context added along the way.
func (h *SubscriptionHandler) logError(r *http.Request, event string, err error) {
	level := slog.LevelError
	var vErr *model.ValidationError
	if errors.As(err, &vErr) || errors.Is(err, service.ErrTokenNotFound) {
		level = slog.LevelWarn
	}

	h.logger.LogAttrs(r.Context(), level, event,
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("error", err.Error()),
	)
}
