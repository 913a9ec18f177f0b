package recurrence

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Report summarizes one recompute pass.
type Report struct {
	Invoices  Changes
	Forecasts Changes
}

// Recompute runs the invoice reconciler and the subscription forecaster once
// over s. If the resulting ledger is structurally equal to the input, the
// input state is returned with changed=false so callers never commit (and
// never re-trigger on) a no-op result.
func Recompute(s State, h Horizon, ids IDGenerator) (State, Report, bool) {
	var report Report

	ledger, invoices := ReconcileCardInvoices(s.Ledger, s.Installments, s.Cards, h, ids)
	ledger, forecasts := ForecastSubscriptions(ledger, s.Subscriptions, h, ids)
	report.Invoices = invoices
	report.Forecasts = forecasts

	if cmp.Equal(s.Ledger, ledger, cmpopts.EquateEmpty()) {
		return s, report, false
	}

	next := s.Clone()
	next.Ledger = ledger

	return next, report, true
}
