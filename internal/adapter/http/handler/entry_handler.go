package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/recurrence"
	"github.com/iho/finledger/internal/usecase"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	Create(ctx context.Context, input usecase.CreateEntryInput) ([]domain.LedgerEntry, error)
	Update(ctx context.Context, id string, patch recurrence.EntryPatch, applyToFuture bool) (*usecase.Result, error)
	Delete(ctx context.Context, id string, applyToFuture bool) (*usecase.Result, error)
	Toggle(ctx context.Context, id string) (*usecase.Result, recurrence.ToggleResult, error)
	RegisterPartialPayment(ctx context.Context, id string, amount decimal.Decimal, date time.Time) (*usecase.Result, error)
	Get(ctx context.Context, id string) (*domain.LedgerEntry, error)
	List(ctx context.Context, year, month int) ([]domain.LedgerEntry, error)
}

// EntryHandler handles ledger entry HTTP requests.
type EntryHandler struct {
	entryUC EntryService
	now     func() time.Time
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC EntryService, now func() time.Time) *EntryHandler {
	if now == nil {
		now = time.Now
	}
	return &EntryHandler{entryUC: entryUC, now: now}
}

// List returns the entries of ?year=&month= (zero-based), defaulting to this month.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthQuery(r, h.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return
	}

	entries, err := h.entryUC.List(r.Context(), year, month)
	if err != nil {
		writeDomainError(w, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Year:    year,
		Month:   month,
		Entries: dto.EntriesFromDomain(entries),
	})
}

// Get retrieves an entry by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.entryUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Create creates one entry, a fixed series or an installment plan.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entries, err := h.entryUC.Create(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create entry", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreateEntriesResponse{Entries: dto.EntriesFromDomain(entries)})
}

// Update patches an entry; ?future=true carries the change to later members
// of its series.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	res, err := h.entryUC.Update(r.Context(), chi.URLParam(r, "id"), req.ToPatch(), parseBoolQuery(r, "future"))
	if err != nil {
		writeDomainError(w, "failed to update entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MutationFromResult(res))
}

// Delete removes an entry; ?future=true removes later members of its series.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.entryUC.Delete(r.Context(), chi.URLParam(r, "id"), parseBoolQuery(r, "future"))
	if err != nil {
		writeDomainError(w, "failed to delete entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MutationFromResult(res))
}

// Toggle flips the completed flag.
func (h *EntryHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	_, toggle, err := h.entryUC.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to toggle entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToggleResponse{
		Changed:   toggle.Changed,
		Completed: toggle.Completed,
		DebtID:    toggle.DebtID,
	})
}

// PartialPayment registers part of an entry as paid.
func (h *EntryHandler) PartialPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.PartialPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	date := h.now()
	if req.Date != nil {
		date = *req.Date
	}

	res, err := h.entryUC.RegisterPartialPayment(r.Context(), chi.URLParam(r, "id"), req.Amount, date)
	if err != nil {
		writeDomainError(w, "failed to register partial payment", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MutationFromResult(res))
}
