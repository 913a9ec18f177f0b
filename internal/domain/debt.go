package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtEventKind distinguishes purchases that grow a debt from payments that shrink it.
type DebtEventKind string

const (
	DebtEventPurchase DebtEventKind = "purchase"
	DebtEventPayment  DebtEventKind = "payment"
)

// DebtEvent is one movement on a debt account.
type DebtEvent struct {
	ID            string
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	Kind          DebtEventKind
	LinkedEntryID string
}

// DebtAccount is an informal store-credit account ("crediário").
// History is kept most-recent-first.
type DebtAccount struct {
	ID             string
	Name           string
	CurrentBalance decimal.Decimal
	History        []DebtEvent
}

// Clone returns a deep copy of the account.
func (d DebtAccount) Clone() DebtAccount {
	if d.History != nil {
		d.History = append([]DebtEvent(nil), d.History...)
	}
	return d
}

// RecordPurchase grows the balance and prepends the event.
func (d *DebtAccount) RecordPurchase(ev DebtEvent) {
	ev.Kind = DebtEventPurchase
	d.CurrentBalance = d.CurrentBalance.Add(ev.Amount)
	d.History = append([]DebtEvent{ev}, d.History...)
}

// RecordPayment shrinks the balance and prepends the event.
func (d *DebtAccount) RecordPayment(ev DebtEvent) {
	ev.Kind = DebtEventPayment
	d.CurrentBalance = d.CurrentBalance.Sub(ev.Amount)
	d.History = append([]DebtEvent{ev}, d.History...)
}

// RevertPayment restores amount to the balance and drops the payment event
// linked to entryID. It reports whether an event was removed.
func (d *DebtAccount) RevertPayment(entryID string, amount decimal.Decimal) bool {
	d.CurrentBalance = d.CurrentBalance.Add(amount)

	for i, ev := range d.History {
		if ev.Kind == DebtEventPayment && ev.LinkedEntryID == entryID {
			d.History = append(d.History[:i:i], d.History[i+1:]...)
			return true
		}
	}
	return false
}

// PaymentFor returns the index of the payment event linked to entryID, or -1.
func (d *DebtAccount) PaymentFor(entryID string) int {
	for i, ev := range d.History {
		if ev.Kind == DebtEventPayment && ev.LinkedEntryID == entryID {
			return i
		}
	}
	return -1
}
