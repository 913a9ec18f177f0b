package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/recurrence"
	"github.com/iho/finledger/internal/usecase"
)

// CardService defines the behavior needed by CardHandler.
type CardService interface {
	Create(ctx context.Context, card domain.CreditCard) (*domain.CreditCard, error)
	List(ctx context.Context) ([]usecase.CardView, error)
	Delete(ctx context.Context, id string) (*usecase.Result, error)
	Purchase(ctx context.Context, cardID string, input recurrence.PurchaseInput) ([]domain.CardInstallment, *usecase.Result, error)
	Installments(ctx context.Context, cardID string) ([]domain.CardInstallment, error)
}

// CardHandler handles credit card HTTP requests.
type CardHandler struct {
	cardUC CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardUC CardService) *CardHandler {
	return &CardHandler{cardUC: cardUC}
}

// Create creates a card.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	card, err := h.cardUC.Create(r.Context(), req.ToDomain())
	if err != nil {
		writeDomainError(w, "failed to create card", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CardFromDomain(card))
}

// List lists cards with their available limit.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.cardUC.List(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list cards", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CardsFromViews(views))
}

// Delete removes a card, its installments and its invoices.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.cardUC.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to delete card", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MutationFromResult(res))
}

// Purchase records a purchase and returns its installments.
func (h *CardHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req dto.CardPurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	installments, res, err := h.cardUC.Purchase(r.Context(), chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to record purchase", err)
		return
	}

	resp := dto.PurchaseResponse{Installments: dto.InstallmentsFromDomain(installments)}
	if res != nil {
		resp.Report = dto.ReportFromDomain(res.Report)
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Installments lists the installments billed on a card.
func (h *CardHandler) Installments(w http.ResponseWriter, r *http.Request) {
	items, err := h.cardUC.Installments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to list installments", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InstallmentsFromDomain(items))
}
