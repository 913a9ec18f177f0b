package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// SubscriptionService defines the behavior needed by SubscriptionHandler.
type SubscriptionService interface {
	Create(ctx context.Context, sub domain.Subscription) (*domain.Subscription, *usecase.Result, error)
	List(ctx context.Context) ([]domain.Subscription, error)
	Deactivate(ctx context.Context, id string) (*usecase.Result, error)
}

// SubscriptionHandler handles subscription HTTP requests.
type SubscriptionHandler struct {
	subUC SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subUC SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subUC: subUC}
}

// Create creates a subscription and forecasts its charges.
func (h *SubscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSubscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	sub, _, err := h.subUC.Create(r.Context(), req.ToDomain())
	if err != nil {
		writeDomainError(w, "failed to create subscription", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.SubscriptionFromDomain(sub))
}

// List lists subscriptions.
func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subUC.List(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list subscriptions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SubscriptionsFromDomain(subs))
}

// Deactivate stops forecasting a subscription. Charges already in the
// ledger stay.
func (h *SubscriptionHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	res, err := h.subUC.Deactivate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to deactivate subscription", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MutationFromResult(res))
}
