package service

import (
	"errors"
	"time"

	"github.com/andy/printdesk/internal/domain"
	"github.com/andy/printdesk/internal/filter"
)

var (
	ErrNotArchivable     = errors.New("only paid or partially paid invoices can be archived")
	ErrQuoteNotApproved  = errors.New("quote must be approved before it can be invoiced")
	ErrAlreadyInvoiced   = errors.New("quote already has an invoice")
	ErrPaymentNotAllowed = errors.New("payments cannot be recorded on paid or archived invoices")
	ErrInvalidPayment    = errors.New("payment amount must be greater than zero")
	ErrEmptyCommand      = errors.New("command is empty")

	// ErrDateLocked is returned when rescheduling a completed job
	ErrDateLocked = domain.ErrDateLocked
)

// Clock returns the current time. A nil Clock reads the wall clock.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// ListResult is one page of a filtered list plus the counts behind it
type ListResult[E any] struct {
	Items  []E
	Counts filter.Counts
}
