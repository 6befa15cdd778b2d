package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextInvoiceStatus(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		paid    string
		current InvoiceStatus
		want    InvoiceStatus
	}{
		{"exactly paid", "501.75", "501.75", InvoiceStatusSent, InvoiceStatusPaid},
		{"overpaid", "100", "150", InvoiceStatusOverdue, InvoiceStatusPaid},
		{"partial", "696.88", "300", InvoiceStatusSent, InvoiceStatusPartial},
		{"partial from draft", "696.88", "0.01", InvoiceStatusDraft, InvoiceStatusPartial},
		{"nothing paid keeps sent", "696.88", "0", InvoiceStatusSent, InvoiceStatusSent},
		{"nothing paid keeps overdue", "696.88", "0", InvoiceStatusOverdue, InvoiceStatusOverdue},
		{"nothing paid keeps draft", "10", "0", InvoiceStatusDraft, InvoiceStatusDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextInvoiceStatus(dec(tt.amount), dec(tt.paid), tt.current)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextInvoiceStatus_AnyPaymentAtOrAboveAmountIsPaid(t *testing.T) {
	amount := dec("250")
	for _, extra := range []string{"0", "0.01", "1", "1000"} {
		paid := amount.Add(dec(extra))
		assert.Equal(t, InvoiceStatusPaid, NextInvoiceStatus(amount, paid, InvoiceStatusSent))
	}
	assert.Equal(t, InvoiceStatusPartial, NextInvoiceStatus(amount, amount.Sub(decimal.NewFromFloat(0.01)), InvoiceStatusSent))
}

func TestCanArchive(t *testing.T) {
	assert.False(t, CanArchive(KindInvoice, "sent"))
	assert.False(t, CanArchive(KindInvoice, "draft"))
	assert.False(t, CanArchive(KindInvoice, "overdue"))
	assert.True(t, CanArchive(KindInvoice, "paid"))
	assert.True(t, CanArchive(KindInvoice, "partial"))

	for _, s := range QuoteStatuses {
		assert.True(t, CanArchive(KindQuote, string(s)), "quote archiving is ungated: %s", s)
	}

	assert.False(t, CanArchive(KindClient, "active"))
	assert.False(t, CanArchive(KindJob, "READY"))
}

func TestCanEditDate(t *testing.T) {
	assert.True(t, CanEditDate(JobStatusInProduction))
	assert.True(t, CanEditDate(JobStatusReady))
	assert.True(t, CanEditDate(JobStatusUrgent))
	assert.False(t, CanEditDate(JobStatusCompleted))
}

func TestQuoteStatus_CanInvoice(t *testing.T) {
	for _, s := range QuoteStatuses {
		assert.Equal(t, s == QuoteStatusApproved, s.CanInvoice(), "status %s", s)
	}
}

func TestParseStatuses(t *testing.T) {
	js, err := ParseJobStatus("URGENT")
	require.NoError(t, err)
	assert.Equal(t, JobStatusUrgent, js)

	_, err = ParseJobStatus("urgent")
	assert.True(t, errors.Is(err, ErrUnknownStatus))

	qs, err := ParseQuoteStatus("expired")
	require.NoError(t, err)
	assert.Equal(t, QuoteStatusExpired, qs)

	_, err = ParseInvoiceStatus("void")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	cs, err := ParseClientStatus("prospect")
	require.NoError(t, err)
	assert.Equal(t, ClientStatusProspect, cs)
}

func TestJobStatus_Label(t *testing.T) {
	assert.Equal(t, "In Production", JobStatusInProduction.Label())
	assert.Equal(t, "Completed", JobStatusCompleted.Label())
}
