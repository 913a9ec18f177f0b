package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// DebtService defines the behavior needed by DebtHandler.
type DebtService interface {
	Create(ctx context.Context, name string, balance decimal.Decimal) (*domain.DebtAccount, error)
	List(ctx context.Context) ([]domain.DebtAccount, error)
	Get(ctx context.Context, id string) (*domain.DebtAccount, error)
	RecordPurchase(ctx context.Context, debtID string, input usecase.DebtPurchaseInput) (*domain.DebtAccount, error)
}

// DebtHandler handles debt account HTTP requests.
type DebtHandler struct {
	debtUC DebtService
	now    func() time.Time
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtUC DebtService, now func() time.Time) *DebtHandler {
	if now == nil {
		now = time.Now
	}
	return &DebtHandler{debtUC: debtUC, now: now}
}

// Create opens a debt account.
func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	debt, err := h.debtUC.Create(r.Context(), req.Name, req.Balance)
	if err != nil {
		writeDomainError(w, "failed to create debt account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.DebtFromDomain(debt))
}

// List lists debt accounts.
func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	debts, err := h.debtUC.List(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list debt accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DebtsFromDomain(debts))
}

// Get retrieves a debt account with its history.
func (h *DebtHandler) Get(w http.ResponseWriter, r *http.Request) {
	debt, err := h.debtUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get debt account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DebtFromDomain(debt))
}

// Purchase records a purchase that grows the balance.
func (h *DebtHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req dto.DebtPurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	debt, err := h.debtUC.RecordPurchase(r.Context(), chi.URLParam(r, "id"), req.ToUseCaseInput(h.now()))
	if err != nil {
		writeDomainError(w, "failed to record purchase", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.DebtFromDomain(debt))
}
