package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func decimalPtrToNumeric(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{}
	}
	return decimalToNumeric(*d)
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func numericToDecimalPtr(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := numericToDecimal(n)
	return &d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// Column types are INTEGER; calendar fields never leave int32 range.
func toInt32(v int) int32 {
	return int32(v)
}

type partialPaymentRow struct {
	ID     string          `json:"id"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

func encodePartialPayments(payments []domain.PartialPayment) ([]byte, error) {
	rows := make([]partialPaymentRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, partialPaymentRow{ID: p.ID, Date: p.Date, Amount: p.Amount})
	}
	return json.Marshal(rows)
}

func decodePartialPayments(raw []byte) ([]domain.PartialPayment, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var rows []partialPaymentRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode partial payments: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	payments := make([]domain.PartialPayment, 0, len(rows))
	for _, r := range rows {
		payments = append(payments, domain.PartialPayment{ID: r.ID, Date: r.Date, Amount: r.Amount})
	}
	return payments, nil
}

type debtEventRow struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          string          `json:"kind"`
	LinkedEntryID string          `json:"linked_entry_id,omitempty"`
}

func encodeDebtHistory(history []domain.DebtEvent) ([]byte, error) {
	rows := make([]debtEventRow, 0, len(history))
	for _, ev := range history {
		rows = append(rows, debtEventRow{
			ID:            ev.ID,
			Date:          ev.Date,
			Description:   ev.Description,
			Amount:        ev.Amount,
			Kind:          string(ev.Kind),
			LinkedEntryID: ev.LinkedEntryID,
		})
	}
	return json.Marshal(rows)
}

func decodeDebtHistory(raw []byte) ([]domain.DebtEvent, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var rows []debtEventRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode debt history: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	history := make([]domain.DebtEvent, 0, len(rows))
	for _, r := range rows {
		history = append(history, domain.DebtEvent{
			ID:            r.ID,
			Date:          r.Date,
			Description:   r.Description,
			Amount:        r.Amount,
			Kind:          domain.DebtEventKind(r.Kind),
			LinkedEntryID: r.LinkedEntryID,
		})
	}
	return history, nil
}

func notFound(err, target error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return target
	}
	return err
}
