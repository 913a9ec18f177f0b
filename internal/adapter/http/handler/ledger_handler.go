package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/usecase"
)

// SummaryService defines the behavior needed for month summaries.
type SummaryService interface {
	MonthSummary(ctx context.Context, year, month int) (*usecase.MonthSummary, error)
}

// SyncService defines the behavior needed for reconciliation.
type SyncService interface {
	Sync(ctx context.Context) (*usecase.Result, error)
	Check(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// LedgerHandler serves month summaries and reconciliation.
type LedgerHandler struct {
	summaryUC SummaryService
	syncUC    SyncService
	now       func() time.Time
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(summaryUC SummaryService, syncUC SyncService, now func() time.Time) *LedgerHandler {
	if now == nil {
		now = time.Now
	}
	return &LedgerHandler{summaryUC: summaryUC, syncUC: syncUC, now: now}
}

// Summary returns the month summary for ?year=&month=.
func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthQuery(r, h.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return
	}

	summary, err := h.summaryUC.MonthSummary(r.Context(), year, month)
	if err != nil {
		writeDomainError(w, "failed to build summary", err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Sync runs one reconciliation pass and reports what it changed.
func (h *LedgerHandler) Sync(w http.ResponseWriter, r *http.Request) {
	res, err := h.syncUC.Sync(r.Context())
	if err != nil {
		writeDomainError(w, "failed to sync ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MutationFromResult(res))
}

// Check reports whether a sync would change anything, without writing.
func (h *LedgerHandler) Check(w http.ResponseWriter, r *http.Request) {
	report, err := h.syncUC.Check(r.Context())
	if err != nil {
		writeDomainError(w, "failed to check ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CheckFromReport(report))
}
