package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

func sampleInvoice() *Invoice {
	return &Invoice{
		ID:          "1",
		Number:      "INV001",
		ClientID:    "1",
		QuoteID:     "2",
		Customer:    "ABC Corp",
		Email:       "contact@abccorp.com",
		Description: "25 Hoodies, Logo front",
		Amount:      dec("696.88"),
		PaidAmount:  dec("300"),
		Status:      InvoiceStatusPartial,
		IssueDate:   day,
		DueDate:     day.AddDate(0, 0, 14),
		Items:       []LineItem{NewLineItem("1", "25 Hoodies - Logo front", 25, dec("25"))},
	}
}

func TestInvoice_ApplyPaymentReplacesPaidAmount(t *testing.T) {
	inv := sampleInvoice()
	paidOn := day.AddDate(0, 0, 5)

	inv.ApplyPayment(dec("400"), paidOn)
	assert.Equal(t, "400", inv.PaidAmount.String())
	assert.Equal(t, InvoiceStatusPartial, inv.Status)
	require.NotNil(t, inv.PaymentDate)
	assert.Equal(t, paidOn, *inv.PaymentDate)

	inv.ApplyPayment(dec("696.88"), paidOn)
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.Balance().IsZero())
}

func TestInvoice_BalanceAndPercent(t *testing.T) {
	inv := sampleInvoice()
	assert.Equal(t, "396.88", inv.Balance().StringFixed(2))
	assert.Equal(t, "43.05", RoundCents(inv.PaidPercent()).StringFixed(2))

	inv.PaidAmount = dec("800")
	assert.True(t, inv.Balance().IsZero())
	assert.True(t, inv.PaidPercent().Equal(decimal.NewFromInt(100)))

	inv.Amount = decimal.Zero
	assert.True(t, inv.PaidPercent().IsZero())
}

func TestInvoice_ArchiveGating(t *testing.T) {
	inv := sampleInvoice()
	inv.Status = InvoiceStatusSent

	assert.False(t, inv.Archive(day))
	assert.False(t, inv.Archived)
	assert.Nil(t, inv.ArchivedDate)

	inv.Status = InvoiceStatusPaid
	require.True(t, inv.Archive(day))
	assert.True(t, inv.Archived)
	require.NotNil(t, inv.ArchivedDate)

	inv.Restore()
	assert.False(t, inv.Archived)
	assert.Nil(t, inv.ArchivedDate)
}

func TestInvoice_Actions(t *testing.T) {
	inv := sampleInvoice()
	assert.True(t, inv.CanRecordPayment())
	assert.True(t, inv.CanSendReminder())

	inv.Status = InvoiceStatusDraft
	assert.False(t, inv.CanSendReminder())

	inv.Status = InvoiceStatusPaid
	assert.False(t, inv.CanRecordPayment())

	inv.Status = InvoiceStatusOverdue
	inv.Archived = true
	assert.False(t, inv.CanRecordPayment())
	assert.False(t, inv.CanSendReminder())
}

func TestInvoice_ReminderText(t *testing.T) {
	msg := sampleInvoice().ReminderText()
	assert.Contains(t, msg, "ABC Corp")
	assert.Contains(t, msg, "INV001")
	assert.Contains(t, msg, "$696.88")
	assert.Contains(t, msg, "$396.88")
}

func TestNewInvoice_DepositAppliesPayment(t *testing.T) {
	item := NewLineItem("1", "Shirts", 10, dec("20"))
	inv := NewInvoice("x", "INV009", "3", "Mike", "mike@example.com", "Shirts", item, dec("50"), day, 14)

	assert.Equal(t, "223.00", inv.Amount.StringFixed(2))
	assert.Equal(t, InvoiceStatusPartial, inv.Status)
	assert.Equal(t, "173.00", inv.Balance().StringFixed(2))
	assert.Equal(t, day.AddDate(0, 0, 14), inv.DueDate)

	inv = NewInvoice("y", "INV010", "3", "Mike", "mike@example.com", "Shirts", item, decimal.Zero, day, 14)
	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	assert.Nil(t, inv.PaymentDate)
}

func TestInvoice_Validate(t *testing.T) {
	inv := sampleInvoice()
	require.NoError(t, inv.Validate())

	inv.Email = "not-an-email"
	inv.Description = ""
	err := inv.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.Contains(t, err.Error(), "description is required")
}

func TestInvoice_CloneIsIndependent(t *testing.T) {
	inv := sampleInvoice()
	inv.Archive(day)

	c := inv.Clone()
	c.Items[0].Description = "changed"
	*c.ArchivedDate = day.AddDate(1, 0, 0)

	assert.Equal(t, "25 Hoodies - Logo front", inv.Items[0].Description)
	assert.Equal(t, day, *inv.ArchivedDate)
}

func TestNewQuote(t *testing.T) {
	item := NewLineItem("1", "25 Hoodies - Logo front", 25, dec("25"))
	q := NewQuote("q", "Q013", "1", "ABC Corp", "25 Hoodies, Logo front", item, day, 30)

	assert.Equal(t, QuoteStatusDraft, q.Status)
	assert.Equal(t, "696.88", q.Amount.StringFixed(2))
	assert.True(t, q.Amount.Equal(dec("696.88")), "stored amount is whole cents, not 696.875")
	assert.Equal(t, "625", q.Items[0].Total.String())
	assert.Equal(t, day.AddDate(0, 0, 30), q.ExpiryDate)
	assert.Equal(t, "625.00", RoundCents(q.Subtotal()).StringFixed(2))
	require.NoError(t, q.Validate())
}

func TestQuote_ArchiveIsUngated(t *testing.T) {
	for _, s := range QuoteStatuses {
		q := &Quote{ID: "1", Status: s}
		assert.True(t, q.Archive(day))
		assert.True(t, q.Archived)
		q.Restore()
		assert.False(t, q.Archived)
		assert.Nil(t, q.ArchivedDate)
	}
}

func TestJob_Reschedule(t *testing.T) {
	j := &Job{ID: "1", Title: "J001", Status: JobStatusReady, Date: day}
	next := day.AddDate(0, 0, 3)

	require.NoError(t, j.Reschedule(next))
	assert.Equal(t, next, j.Date)

	j.Status = JobStatusCompleted
	err := j.Reschedule(day)
	assert.ErrorIs(t, err, ErrDateLocked)
	assert.Equal(t, next, j.Date)
}

func TestJob_Sizes(t *testing.T) {
	j := &Job{ID: "1", Title: "J001"}
	j.SetSize("M", 12)
	j.SetSize("XS", 2)
	j.SetSize("Custom", 1)
	j.SetSize("L", 0)
	assert.Equal(t, 15, j.TotalPieces())

	j.SetSize("M", -1)
	_, ok := j.Sizes["M"]
	assert.False(t, ok)

	j.SetSize("10-12", 4)
	assert.Equal(t, []SizeQty{{"XS", 2}, {"10-12", 4}, {"Custom", 1}}, j.SizeBreakdown())
}

func TestJob_CloneCopiesSizes(t *testing.T) {
	j := &Job{ID: "1", Sizes: map[string]int{"S": 5}}
	c := j.Clone()
	c.SetSize("S", 9)
	assert.Equal(t, 5, j.Sizes["S"])
}

func TestClient(t *testing.T) {
	c := NewClient("7", "  Lisa Anderson ", "lisa@startup.com")
	assert.Equal(t, "Lisa Anderson", c.Name)
	assert.Equal(t, ClientStatusProspect, c.Status)
	assert.Equal(t, 0, c.TotalOrders)
	assert.True(t, c.AverageOrder().IsZero())
	require.NoError(t, c.Validate())

	c.TotalOrders = 8
	c.TotalSpent = dec("4250")
	assert.Equal(t, "531.25", c.AverageOrder().StringFixed(2))

	c.Email = ""
	assert.ErrorIs(t, c.Validate(), ErrInvalid)

	assert.Equal(t, "Lisa Anderson", c.DisplayName())
	c.Company = "Startup Inc"
	assert.Equal(t, "Startup Inc", c.DisplayName())
}
