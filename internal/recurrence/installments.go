package recurrence

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// PurchaseInput describes one card purchase to split into installments.
type PurchaseInput struct {
	Description  string
	Category     string
	Amount       decimal.Decimal
	Installments int
	Date         time.Time
}

// InvoiceMonth returns the invoice a purchase made on date falls into:
// purchases on or after the card's closing day roll to the next month.
func InvoiceMonth(card domain.CreditCard, date time.Time) YearMonth {
	ym := YearMonthOf(date)
	if date.Day() >= card.ClosingDay {
		return ym.Add(1)
	}
	return ym
}

// SplitAmount divides total into n shares truncated to cents. The rounding
// remainder goes to the last share so the shares always sum to total.
func SplitAmount(total decimal.Decimal, n int) []decimal.Decimal {
	if n < 1 {
		return nil
	}

	share := total.Div(decimal.NewFromInt(int64(n))).Truncate(2)
	shares := make([]decimal.Decimal, n)
	for i := range shares {
		shares[i] = share
	}
	shares[n-1] = total.Sub(share.Mul(decimal.NewFromInt(int64(n - 1))))

	return shares
}

// ExpandCardPurchase turns one card purchase into one installment per invoice
// month, starting with the invoice the purchase date falls into.
func ExpandCardPurchase(ids IDGenerator, card domain.CreditCard, in PurchaseInput) ([]domain.CardInstallment, error) {
	if err := domain.ValidateName(in.Description); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateInstallmentCount(in.Installments); err != nil {
		return nil, err
	}

	purchaseID := ids.Generate()
	first := InvoiceMonth(card, in.Date)
	shares := SplitAmount(in.Amount, in.Installments)

	out := make([]domain.CardInstallment, 0, in.Installments)
	for i := 0; i < in.Installments; i++ {
		ym := first.Add(i)
		out = append(out, domain.CardInstallment{
			ID:                   ids.Generate(),
			PurchaseID:           purchaseID,
			CardID:               card.ID,
			Description:          in.Description,
			Category:             in.Category,
			Amount:               shares[i],
			Month:                ym.Month,
			Year:                 ym.Year,
			InstallmentNumber:    i + 1,
			TotalInstallments:    in.Installments,
			OriginalPurchaseDate: in.Date,
		})
	}

	return out, nil
}

// ExpandInstallments splits template.Amount into n monthly entries starting at
// the template's date. The entries share a series id so they can be edited
// or removed together.
func ExpandInstallments(ids IDGenerator, template domain.LedgerEntry, n int) ([]domain.LedgerEntry, error) {
	if err := validateTemplate(template); err != nil {
		return nil, err
	}
	if err := domain.ValidateInstallmentCount(n); err != nil {
		return nil, err
	}

	shares := SplitAmount(template.Amount, n)
	entries := project(ids, template, n)
	for i := range entries {
		entries[i].Amount = shares[i]
		entries[i].InstallmentNumber = i + 1
		entries[i].TotalInstallments = n
	}

	return entries, nil
}

// ExpandFixedSeries generates a fixed monthly bill: twelve entries with the
// template's full amount, one per month, linked by a new series id.
func ExpandFixedSeries(ids IDGenerator, template domain.LedgerEntry) ([]domain.LedgerEntry, error) {
	if err := validateTemplate(template); err != nil {
		return nil, err
	}

	entries := project(ids, template, domain.FixedSeriesLength)
	for i := range entries {
		entries[i].IsFixed = true
	}

	return entries, nil
}

func validateTemplate(template domain.LedgerEntry) error {
	if err := domain.ValidateName(template.Description); err != nil {
		return err
	}
	if err := domain.ValidateDay(template.Day); err != nil {
		return err
	}
	if err := domain.ValidateMonth(template.Month); err != nil {
		return err
	}
	if !template.Kind.Valid() {
		return domain.ErrInvalidKind
	}
	if template.Kind == domain.EntryKindAppointment {
		return nil
	}
	return domain.ValidateAmount(template.Amount)
}

// project copies template into n consecutive months under one new series id.
func project(ids IDGenerator, template domain.LedgerEntry, n int) []domain.LedgerEntry {
	seriesID := ids.Generate()
	start := YearMonth{Year: template.Year, Month: template.Month}

	entries := make([]domain.LedgerEntry, 0, n)
	for i := 0; i < n; i++ {
		ym := start.Add(i)
		e := template.Clone()
		e.ID = ids.Generate()
		e.Year = ym.Year
		e.Month = ym.Month
		e.Day = ClampDay(ym.Year, ym.Month, template.Day)
		e.FixedSeriesID = seriesID
		e.SubscriptionID, e.IsSubscription = "", false
		e.IsCreditCardInvoice, e.RelatedCardID = false, ""
		e.DebtID = ""
		e.Completed = template.Completed && i == 0
		entries = append(entries, e)
	}

	return entries
}
