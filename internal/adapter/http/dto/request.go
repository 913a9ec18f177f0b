package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/recurrence"
	"github.com/iho/finledger/internal/usecase"
)

// CreateEntryRequest represents a request to create an entry, a fixed series
// or an installment plan.
type CreateEntryRequest struct {
	Description  string          `json:"description"`
	Day          int             `json:"day"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Kind         string          `json:"kind"`
	Category     string          `json:"category"`
	SubCategory  string          `json:"sub_category"`
	Amount       decimal.Decimal `json:"amount"`
	Completed    bool            `json:"completed"`
	DebtID       string          `json:"debt_id,omitempty"`
	Fixed        bool            `json:"fixed"`
	Installments int             `json:"installments"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() usecase.CreateEntryInput {
	return usecase.CreateEntryInput{
		Entry: domain.LedgerEntry{
			Description: r.Description,
			Day:         r.Day,
			Month:       r.Month,
			Year:        r.Year,
			Kind:        domain.EntryKind(r.Kind),
			Category:    r.Category,
			SubCategory: r.SubCategory,
			Amount:      r.Amount,
			Completed:   r.Completed,
			DebtID:      r.DebtID,
		},
		Fixed:        r.Fixed,
		Installments: r.Installments,
	}
}

// UpdateEntryRequest carries the fields to change; absent fields stay as they are.
type UpdateEntryRequest struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Day         *int             `json:"day,omitempty"`
	Category    *string          `json:"category,omitempty"`
	SubCategory *string          `json:"sub_category,omitempty"`
	Kind        *string          `json:"kind,omitempty"`
}

// ToPatch converts to a cascade patch.
func (r *UpdateEntryRequest) ToPatch() recurrence.EntryPatch {
	patch := recurrence.EntryPatch{
		Description: r.Description,
		Amount:      r.Amount,
		Day:         r.Day,
		Category:    r.Category,
		SubCategory: r.SubCategory,
	}
	if r.Kind != nil {
		kind := domain.EntryKind(*r.Kind)
		patch.Kind = &kind
	}
	return patch
}

// PartialPaymentRequest registers part of an entry as paid.
type PartialPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   *time.Time      `json:"date,omitempty"`
}

// CreateCardRequest represents a request to create a credit card.
type CreateCardRequest struct {
	Name        string          `json:"name"`
	ClosingDay  int             `json:"closing_day"`
	DueDay      int             `json:"due_day"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Color       string          `json:"color"`
}

// ToDomain converts to a card.
func (r *CreateCardRequest) ToDomain() domain.CreditCard {
	return domain.CreditCard{
		Name:        r.Name,
		ClosingDay:  r.ClosingDay,
		DueDay:      r.DueDay,
		CreditLimit: r.CreditLimit,
		Color:       r.Color,
	}
}

// CardPurchaseRequest represents a purchase split into installments.
type CardPurchaseRequest struct {
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Installments int             `json:"installments"`
	Date         time.Time       `json:"date"`
}

// ToUseCaseInput converts to use case input.
func (r *CardPurchaseRequest) ToUseCaseInput() recurrence.PurchaseInput {
	installments := r.Installments
	if installments == 0 {
		installments = 1
	}
	return recurrence.PurchaseInput{
		Description:  r.Description,
		Category:     r.Category,
		Amount:       r.Amount,
		Installments: installments,
		Date:         r.Date,
	}
}

// CreateSubscriptionRequest represents a request to create a subscription.
type CreateSubscriptionRequest struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	BillingDay int             `json:"billing_day"`
	Category   string          `json:"category"`
}

// ToDomain converts to a subscription.
func (r *CreateSubscriptionRequest) ToDomain() domain.Subscription {
	return domain.Subscription{
		Name:       r.Name,
		Amount:     r.Amount,
		BillingDay: r.BillingDay,
		Category:   r.Category,
	}
}

// CreateDebtRequest represents a request to open a debt account.
type CreateDebtRequest struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// DebtPurchaseRequest records a purchase on a debt account.
type DebtPurchaseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input. A missing date means now.
func (r *DebtPurchaseRequest) ToUseCaseInput(now time.Time) usecase.DebtPurchaseInput {
	date := now
	if r.Date != nil {
		date = *r.Date
	}
	return usecase.DebtPurchaseInput{
		Description: r.Description,
		Amount:      r.Amount,
		Date:        date,
	}
}
