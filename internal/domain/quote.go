package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a priced row on a quote or invoice
type LineItem struct {
	ID          string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// NewLineItem prices quantity x unitPrice (pre-tax)
func NewLineItem(id, description string, quantity int, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		ID:          id,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       decimal.NewFromInt(int64(quantity)).Mul(unitPrice),
	}
}

// Quote is a pre-sale estimate. Customer is a snapshot of the client's
// display name taken when the quote is created; it is not re-synced when
// the client is renamed.
type Quote struct {
	ID           string
	Number       string `validate:"required"`
	ClientID     string
	Customer     string `validate:"required"`
	Description  string `validate:"required"`
	Amount       decimal.Decimal
	Status       QuoteStatus `validate:"oneof=draft pending approved rejected expired"`
	Archived     bool
	ArchivedDate *time.Time
	CreatedDate  time.Time
	ExpiryDate   time.Time
	Items        []LineItem
}

// NewQuote creates a draft quote whose amount is the item's tax-inclusive
// total, stored in whole cents
func NewQuote(id, number, clientID, customer, description string, item LineItem, created time.Time, validDays int) *Quote {
	totals := ComputeTotals(decimal.NewFromInt(int64(item.Quantity)), item.UnitPrice, decimal.Zero)
	return &Quote{
		ID:          id,
		Number:      number,
		ClientID:    clientID,
		Customer:    strings.TrimSpace(customer),
		Description: strings.TrimSpace(description),
		Amount:      RoundCents(totals.Total),
		Status:      QuoteStatusDraft,
		CreatedDate: created,
		ExpiryDate:  created.AddDate(0, 0, validDays),
		Items:       []LineItem{item},
	}
}

func (q *Quote) Validate() error {
	return checkStruct(q)
}

// Subtotal is the amount with tax removed
func (q *Quote) Subtotal() decimal.Decimal {
	return SubtotalFromTotal(q.Amount)
}

// Tax is the tax portion of the amount
func (q *Quote) Tax() decimal.Decimal {
	return TaxIncluded(q.Amount)
}

// Archive hides the quote. Quotes may be archived in any status.
func (q *Quote) Archive(now time.Time) bool {
	if !CanArchive(KindQuote, string(q.Status)) {
		return false
	}
	q.Archived = true
	q.ArchivedDate = &now
	return true
}

func (q *Quote) Restore() {
	q.Archived = false
	q.ArchivedDate = nil
}

func (q *Quote) Clone() *Quote {
	out := *q
	if q.ArchivedDate != nil {
		t := *q.ArchivedDate
		out.ArchivedDate = &t
	}
	out.Items = append([]LineItem(nil), q.Items...)
	return &out
}

// Record accessors used by list filtering

func (q *Quote) RecordID() string       { return q.ID }
func (q *Quote) OwnerID() string        { return q.ClientID }
func (q *Quote) IsArchived() bool       { return q.Archived }
func (q *Quote) StatusValue() string    { return string(q.Status) }
func (q *Quote) FilterDate() time.Time  { return q.CreatedDate }
func (q *Quote) Kind() EntityKind       { return KindQuote }
func (q *Quote) SearchFields() []string { return []string{q.Customer, q.Number, q.Description} }
