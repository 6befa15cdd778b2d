package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Invoice is a billable record. Customer and Email are snapshots taken when
// the invoice is created and are not re-synced from the client.
type Invoice struct {
	ID           string
	Number       string `validate:"required"`
	ClientID     string
	QuoteID      string
	Customer     string `validate:"required"`
	Email        string `validate:"required,email"`
	Description  string `validate:"required"`
	Amount       decimal.Decimal
	PaidAmount   decimal.Decimal
	Status       InvoiceStatus `validate:"oneof=draft sent paid overdue partial"`
	Archived     bool
	ArchivedDate *time.Time
	IssueDate    time.Time
	DueDate      time.Time
	PaymentDate  *time.Time
	Items        []LineItem
}

// NewInvoice creates a draft invoice for a single line, with a deposit
// already applied as the paid amount. The amount is stored in whole cents.
func NewInvoice(id, number, clientID, customer, email, description string, item LineItem, deposit decimal.Decimal, issued time.Time, dueDays int) *Invoice {
	totals := ComputeTotals(decimal.NewFromInt(int64(item.Quantity)), item.UnitPrice, deposit)
	inv := &Invoice{
		ID:          id,
		Number:      number,
		ClientID:    clientID,
		Customer:    strings.TrimSpace(customer),
		Email:       strings.TrimSpace(email),
		Description: strings.TrimSpace(description),
		Amount:      RoundCents(totals.Total),
		PaidAmount:  decimal.Zero,
		Status:      InvoiceStatusDraft,
		IssueDate:   issued,
		DueDate:     issued.AddDate(0, 0, dueDays),
		Items:       []LineItem{item},
	}
	if deposit.IsPositive() {
		inv.ApplyPayment(deposit, issued)
	}
	return inv
}

func (i *Invoice) Validate() error {
	return checkStruct(i)
}

// ApplyPayment sets the total paid to date and re-derives the status.
// paid replaces the previous paid amount rather than adding to it.
func (i *Invoice) ApplyPayment(paid decimal.Decimal, date time.Time) {
	i.PaidAmount = paid
	i.PaymentDate = &date
	i.Status = NextInvoiceStatus(i.Amount, paid, i.Status)
}

// Balance is what remains to be paid, never negative
func (i *Invoice) Balance() decimal.Decimal {
	b := i.Amount.Sub(i.PaidAmount)
	if b.IsNegative() {
		return decimal.Zero
	}
	return b
}

// PaidPercent is the share paid, capped at 100
func (i *Invoice) PaidPercent() decimal.Decimal {
	if !i.Amount.IsPositive() {
		return decimal.Zero
	}
	p := i.PaidAmount.Div(i.Amount).Mul(hundred)
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// CanRecordPayment reports whether the payment action applies
func (i *Invoice) CanRecordPayment() bool {
	return i.Status != InvoiceStatusPaid && !i.Archived
}

// CanSendReminder reports whether a payment reminder makes sense
func (i *Invoice) CanSendReminder() bool {
	if i.Archived {
		return false
	}
	switch i.Status {
	case InvoiceStatusSent, InvoiceStatusOverdue, InvoiceStatusPartial:
		return true
	}
	return false
}

// ReminderText drafts the body of a payment reminder
func (i *Invoice) ReminderText() string {
	return fmt.Sprintf("Dear %s, this is a friendly reminder that invoice %s for $%s has a remaining balance of $%s.",
		i.Customer, i.Number, RoundCents(i.Amount).StringFixed(2), RoundCents(i.Balance()).StringFixed(2))
}

// Archive hides a settled invoice. It returns false, leaving the invoice
// untouched, unless the invoice is paid or partially paid.
func (i *Invoice) Archive(now time.Time) bool {
	if !CanArchive(KindInvoice, string(i.Status)) {
		return false
	}
	i.Archived = true
	i.ArchivedDate = &now
	return true
}

func (i *Invoice) Restore() {
	i.Archived = false
	i.ArchivedDate = nil
}

func (i *Invoice) Clone() *Invoice {
	out := *i
	if i.ArchivedDate != nil {
		t := *i.ArchivedDate
		out.ArchivedDate = &t
	}
	if i.PaymentDate != nil {
		t := *i.PaymentDate
		out.PaymentDate = &t
	}
	out.Items = append([]LineItem(nil), i.Items...)
	return &out
}

func (i *Invoice) RecordID() string       { return i.ID }
func (i *Invoice) OwnerID() string        { return i.ClientID }
func (i *Invoice) IsArchived() bool       { return i.Archived }
func (i *Invoice) StatusValue() string    { return string(i.Status) }
func (i *Invoice) FilterDate() time.Time  { return i.IssueDate }
func (i *Invoice) Kind() EntityKind       { return KindInvoice }
func (i *Invoice) SearchFields() []string { return []string{i.Customer, i.Number, i.Description} }
