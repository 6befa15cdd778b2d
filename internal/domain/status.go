package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrUnknownStatus = errors.New("unknown status")

// EntityKind identifies which collection a record belongs to
type EntityKind string

const (
	KindClient  EntityKind = "client"
	KindQuote   EntityKind = "quote"
	KindInvoice EntityKind = "invoice"
	KindJob     EntityKind = "job"
)

type JobStatus string

const (
	JobStatusInProduction JobStatus = "IN_PRODUCTION"
	JobStatusReady        JobStatus = "READY"
	JobStatusUrgent       JobStatus = "URGENT"
	JobStatusCompleted    JobStatus = "COMPLETED"
)

// JobStatuses lists job statuses in display order
var JobStatuses = []JobStatus{
	JobStatusInProduction,
	JobStatusReady,
	JobStatusUrgent,
	JobStatusCompleted,
}

func (s JobStatus) Valid() bool {
	for _, v := range JobStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Label returns the human form, e.g. "In Production"
func (s JobStatus) Label() string {
	switch s {
	case JobStatusInProduction:
		return "In Production"
	case JobStatusReady:
		return "Ready"
	case JobStatusUrgent:
		return "Urgent"
	case JobStatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// CanEditDate reports whether a job in this status may be rescheduled
func CanEditDate(status JobStatus) bool {
	return status != JobStatusCompleted
}

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

var QuoteStatuses = []QuoteStatus{
	QuoteStatusDraft,
	QuoteStatusPending,
	QuoteStatusApproved,
	QuoteStatusRejected,
	QuoteStatusExpired,
}

func (s QuoteStatus) Valid() bool {
	for _, v := range QuoteStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// CanInvoice reports whether an invoice may be raised from a quote in this status
func (s QuoteStatus) CanInvoice() bool {
	return s == QuoteStatusApproved
}

type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	InvoiceStatusPartial InvoiceStatus = "partial"
)

var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusSent,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
	InvoiceStatusPartial,
}

func (s InvoiceStatus) Valid() bool {
	for _, v := range InvoiceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// NextInvoiceStatus derives an invoice status from what has been paid.
// Fully paid wins, any payment short of the amount is partial, and
// no payment leaves the current status alone.
func NextInvoiceStatus(amount, paid decimal.Decimal, current InvoiceStatus) InvoiceStatus {
	switch {
	case paid.IsPositive() && paid.GreaterThanOrEqual(amount):
		return InvoiceStatusPaid
	case paid.IsPositive():
		return InvoiceStatusPartial
	default:
		return current
	}
}

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
	ClientStatusProspect ClientStatus = "prospect"
)

var ClientStatuses = []ClientStatus{
	ClientStatusActive,
	ClientStatusInactive,
	ClientStatusProspect,
}

func (s ClientStatus) Valid() bool {
	for _, v := range ClientStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// CanArchive reports whether a record of the given kind may be archived
// while in status. Invoices must be paid or partially paid; quotes are
// not gated.
func CanArchive(kind EntityKind, status string) bool {
	switch kind {
	case KindInvoice:
		s := InvoiceStatus(status)
		return s == InvoiceStatusPaid || s == InvoiceStatusPartial
	case KindQuote:
		return true
	default:
		return false
	}
}

func ParseJobStatus(s string) (JobStatus, error) {
	v := JobStatus(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: job %q", ErrUnknownStatus, s)
	}
	return v, nil
}

func ParseQuoteStatus(s string) (QuoteStatus, error) {
	v := QuoteStatus(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: quote %q", ErrUnknownStatus, s)
	}
	return v, nil
}

func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	v := InvoiceStatus(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: invoice %q", ErrUnknownStatus, s)
	}
	return v, nil
}

func ParseClientStatus(s string) (ClientStatus, error) {
	v := ClientStatus(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: client %q", ErrUnknownStatus, s)
	}
	return v, nil
}
