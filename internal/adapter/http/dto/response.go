package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/recurrence"
	"github.com/iho/finledger/internal/usecase"
)

// PartialPaymentResponse represents one partial payment.
type PartialPaymentResponse struct {
	ID     string          `json:"id"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID                  string                   `json:"id"`
	Description         string                   `json:"description"`
	Day                 int                      `json:"day"`
	Month               int                      `json:"month"`
	Year                int                      `json:"year"`
	Kind                string                   `json:"kind"`
	Category            string                   `json:"category,omitempty"`
	SubCategory         string                   `json:"sub_category,omitempty"`
	Amount              decimal.Decimal          `json:"amount"`
	Completed           bool                     `json:"completed"`
	Linkage             string                   `json:"linkage,omitempty"`
	FixedSeriesID       string                   `json:"fixed_series_id,omitempty"`
	SubscriptionID      string                   `json:"subscription_id,omitempty"`
	DebtID              string                   `json:"debt_id,omitempty"`
	IsCreditCardInvoice bool                     `json:"is_credit_card_invoice,omitempty"`
	RelatedCardID       string                   `json:"related_card_id,omitempty"`
	InstallmentNumber   int                      `json:"installment_number,omitempty"`
	TotalInstallments   int                      `json:"total_installments,omitempty"`
	OriginalAmount      *decimal.Decimal         `json:"original_amount,omitempty"`
	PartialPayments     []PartialPaymentResponse `json:"partial_payments,omitempty"`
}

// EntryFromDomain converts a domain entry to response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	resp := &EntryResponse{
		ID:                  e.ID,
		Description:         e.Description,
		Day:                 e.Day,
		Month:               e.Month,
		Year:                e.Year,
		Kind:                string(e.Kind),
		Category:            e.Category,
		SubCategory:         e.SubCategory,
		Amount:              e.Amount,
		Completed:           e.Completed,
		Linkage:             string(e.LinkageKind()),
		FixedSeriesID:       e.FixedSeriesID,
		SubscriptionID:      e.SubscriptionID,
		DebtID:              e.DebtID,
		IsCreditCardInvoice: e.IsCreditCardInvoice,
		RelatedCardID:       e.RelatedCardID,
		InstallmentNumber:   e.InstallmentNumber,
		TotalInstallments:   e.TotalInstallments,
		OriginalAmount:      e.OriginalAmount,
	}
	for _, p := range e.PartialPayments {
		resp.PartialPayments = append(resp.PartialPayments, PartialPaymentResponse{ID: p.ID, Date: p.Date, Amount: p.Amount})
	}
	return resp
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i := range entries {
		result[i] = EntryFromDomain(&entries[i])
	}
	return result
}

// ListEntriesResponse represents the entries of one month.
type ListEntriesResponse struct {
	Year    int              `json:"year"`
	Month   int              `json:"month"`
	Entries []*EntryResponse `json:"entries"`
}

// ChangesResponse lists entry ids touched by a mutation.
type ChangesResponse struct {
	Created []string `json:"created"`
	Updated []string `json:"updated"`
	Deleted []string `json:"deleted"`
}

func changesFrom(c recurrence.Changes) ChangesResponse {
	return ChangesResponse{
		Created: nonNil(c.Created),
		Updated: nonNil(c.Updated),
		Deleted: nonNil(c.Deleted),
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// ReportResponse summarizes one recompute pass.
type ReportResponse struct {
	Invoices  ChangesResponse `json:"invoices"`
	Forecasts ChangesResponse `json:"forecasts"`
}

// ReportFromDomain converts a recompute report.
func ReportFromDomain(r recurrence.Report) ReportResponse {
	return ReportResponse{
		Invoices:  changesFrom(r.Invoices),
		Forecasts: changesFrom(r.Forecasts),
	}
}

// MutationResponse reports what a mutation changed.
type MutationResponse struct {
	Changed bool            `json:"changed"`
	Changes ChangesResponse `json:"changes"`
	Report  ReportResponse  `json:"report"`
}

// MutationFromResult converts a store result.
func MutationFromResult(res *usecase.Result) *MutationResponse {
	if res == nil {
		return &MutationResponse{Changes: changesFrom(recurrence.Changes{}), Report: ReportFromDomain(recurrence.Report{})}
	}
	return &MutationResponse{
		Changed: res.Changed(),
		Changes: changesFrom(res.Changes),
		Report:  ReportFromDomain(res.Report),
	}
}

// CreateEntriesResponse returns the entries created by one request.
type CreateEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
}

// ToggleResponse reports the outcome of a completion toggle.
type ToggleResponse struct {
	Changed   bool   `json:"changed"`
	Completed bool   `json:"completed"`
	DebtID    string `json:"debt_id,omitempty"`
}

// CardResponse represents a credit card in API responses.
type CardResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	ClosingDay     int              `json:"closing_day"`
	DueDay         int              `json:"due_day"`
	CreditLimit    decimal.Decimal  `json:"credit_limit"`
	Color          string           `json:"color,omitempty"`
	AvailableLimit *decimal.Decimal `json:"available_limit,omitempty"`
}

// CardFromDomain converts a card to response.
func CardFromDomain(c *domain.CreditCard) *CardResponse {
	return &CardResponse{
		ID:          c.ID,
		Name:        c.Name,
		ClosingDay:  c.ClosingDay,
		DueDay:      c.DueDay,
		CreditLimit: c.CreditLimit,
		Color:       c.Color,
	}
}

// CardsFromViews converts card views, available limit included.
func CardsFromViews(views []usecase.CardView) []*CardResponse {
	result := make([]*CardResponse, len(views))
	for i := range views {
		resp := CardFromDomain(&views[i].Card)
		limit := views[i].AvailableLimit
		resp.AvailableLimit = &limit
		result[i] = resp
	}
	return result
}

// InstallmentResponse represents a card installment.
type InstallmentResponse struct {
	ID                   string          `json:"id"`
	PurchaseID           string          `json:"purchase_id"`
	CardID               string          `json:"card_id"`
	Description          string          `json:"description"`
	Category             string          `json:"category,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	InstallmentNumber    int             `json:"installment_number"`
	TotalInstallments    int             `json:"total_installments"`
	OriginalPurchaseDate time.Time       `json:"original_purchase_date"`
}

// InstallmentsFromDomain converts installments to responses.
func InstallmentsFromDomain(items []domain.CardInstallment) []*InstallmentResponse {
	result := make([]*InstallmentResponse, len(items))
	for i, inst := range items {
		result[i] = &InstallmentResponse{
			ID:                   inst.ID,
			PurchaseID:           inst.PurchaseID,
			CardID:               inst.CardID,
			Description:          inst.Description,
			Category:             inst.Category,
			Amount:               inst.Amount,
			Month:                inst.Month,
			Year:                 inst.Year,
			InstallmentNumber:    inst.InstallmentNumber,
			TotalInstallments:    inst.TotalInstallments,
			OriginalPurchaseDate: inst.OriginalPurchaseDate,
		}
	}
	return result
}

// PurchaseResponse returns the installments of a card purchase.
type PurchaseResponse struct {
	Installments []*InstallmentResponse `json:"installments"`
	Report       ReportResponse         `json:"report"`
}

// SubscriptionResponse represents a subscription.
type SubscriptionResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	BillingDay int             `json:"billing_day"`
	Category   string          `json:"category,omitempty"`
	Active     bool            `json:"active"`
}

// SubscriptionFromDomain converts a subscription to response.
func SubscriptionFromDomain(s *domain.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:         s.ID,
		Name:       s.Name,
		Amount:     s.Amount,
		BillingDay: s.BillingDay,
		Category:   s.Category,
		Active:     s.Active,
	}
}

// SubscriptionsFromDomain converts subscriptions to responses.
func SubscriptionsFromDomain(subs []domain.Subscription) []*SubscriptionResponse {
	result := make([]*SubscriptionResponse, len(subs))
	for i := range subs {
		result[i] = SubscriptionFromDomain(&subs[i])
	}
	return result
}

// DebtEventResponse represents one debt movement.
type DebtEventResponse struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          string          `json:"kind"`
	LinkedEntryID string          `json:"linked_entry_id,omitempty"`
}

// DebtResponse represents a debt account.
type DebtResponse struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	CurrentBalance decimal.Decimal     `json:"current_balance"`
	History        []DebtEventResponse `json:"history"`
}

// DebtFromDomain converts a debt account to response.
func DebtFromDomain(d *domain.DebtAccount) *DebtResponse {
	resp := &DebtResponse{
		ID:             d.ID,
		Name:           d.Name,
		CurrentBalance: d.CurrentBalance,
		History:        make([]DebtEventResponse, 0, len(d.History)),
	}
	for _, ev := range d.History {
		resp.History = append(resp.History, DebtEventResponse{
			ID:            ev.ID,
			Date:          ev.Date,
			Description:   ev.Description,
			Amount:        ev.Amount,
			Kind:          string(ev.Kind),
			LinkedEntryID: ev.LinkedEntryID,
		})
	}
	return resp
}

// DebtsFromDomain converts debt accounts to responses.
func DebtsFromDomain(debts []domain.DebtAccount) []*DebtResponse {
	result := make([]*DebtResponse, len(debts))
	for i := range debts {
		result[i] = DebtFromDomain(&debts[i])
	}
	return result
}

// CheckResponse reports whether the stored ledger matches its sources.
type CheckResponse struct {
	InSync    bool           `json:"in_sync"`
	FromYear  int            `json:"from_year"`
	FromMonth int            `json:"from_month"`
	Months    int            `json:"months"`
	Pending   ReportResponse `json:"pending"`
	CheckedAt time.Time      `json:"checked_at"`
}

// CheckFromReport converts a reconciliation report.
func CheckFromReport(r *usecase.ReconciliationReport) *CheckResponse {
	return &CheckResponse{
		InSync:    r.InSync,
		FromYear:  r.Horizon.From.Year,
		FromMonth: r.Horizon.From.Month,
		Months:    r.Horizon.Length,
		Pending:   ReportFromDomain(r.Report),
		CheckedAt: r.CheckedAt,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
