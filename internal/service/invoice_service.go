package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andy/printdesk/internal/domain"
	"github.com/andy/printdesk/internal/filter"
	"github.com/andy/printdesk/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceInput is the new invoice form, also used as the draft prefilled
// from a quote
type InvoiceInput struct {
	ClientID    string
	QuoteID     string
	Customer    string `validate:"required"`
	Email       string `validate:"required,email"`
	Description string `validate:"required"`
	Quantity    int    `validate:"gte=1"`
	UnitPrice   decimal.Decimal
	Deposit     decimal.Decimal
	// DueDays falls back to the configured default when zero
	DueDays int `validate:"gte=0"`
}

// Totals previews the amounts the invoice will carry
func (in InvoiceInput) Totals() domain.Totals {
	return domain.ComputeTotals(decimal.NewFromInt(int64(in.Quantity)), in.UnitPrice, in.Deposit)
}

type InvoiceOptions struct {
	Prefix  string
	DueDays int
	Now     Clock
}

// InvoiceService manages invoice lifecycle and payments
type InvoiceService interface {
	// CreateInvoice creates a draft invoice with auto-generated number.
	// A deposit is recorded as the first payment.
	CreateInvoice(ctx context.Context, in InvoiceInput) (*domain.Invoice, error)

	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)

	// FindByQuote returns the invoice raised from a quote
	FindByQuote(ctx context.Context, quoteID string) (*domain.Invoice, error)

	// ListInvoices returns the invoices visible under p with their counts
	ListInvoices(ctx context.Context, p filter.Params) (*ListResult[*domain.Invoice], error)

	// UpdateStatus sets the invoice status explicitly
	UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error)

	// RecordPayment sets the total paid to date and re-derives the status
	RecordPayment(ctx context.Context, id string, paid decimal.Decimal) (*domain.Invoice, error)

	// Archive hides a paid or partially paid invoice
	Archive(ctx context.Context, id string) (*domain.Invoice, error)
	Restore(ctx context.Context, id string) (*domain.Invoice, error)

	// Reminder drafts a payment reminder. Nothing is sent.
	Reminder(ctx context.Context, id string) (string, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	quoteRepo   repository.QuoteRepository
	clientRepo  repository.ClientRepository
	opts        InvoiceOptions
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	quoteRepo repository.QuoteRepository,
	clientRepo repository.ClientRepository,
	opts InvoiceOptions,
) InvoiceService {
	if opts.Prefix == "" {
		opts.Prefix = "INV"
	}
	if opts.DueDays <= 0 {
		opts.DueDays = 14
	}
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		quoteRepo:   quoteRepo,
		clientRepo:  clientRepo,
		opts:        opts,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, in InvoiceInput) (*domain.Invoice, error) {
	in.Customer = strings.TrimSpace(in.Customer)
	in.Email = strings.TrimSpace(in.Email)
	in.Description = strings.TrimSpace(in.Description)

	if in.ClientID != "" {
		client, err := s.clientRepo.GetByID(ctx, in.ClientID)
		if err != nil {
			return nil, err
		}
		if in.Customer == "" {
			in.Customer = client.DisplayName()
		}
		if in.Email == "" {
			in.Email = client.Email
		}
	}

	if in.QuoteID != "" {
		quote, err := s.quoteRepo.GetByID(ctx, in.QuoteID)
		if err != nil {
			return nil, err
		}
		if !quote.Status.CanInvoice() {
			return nil, ErrQuoteNotApproved
		}
		_, err = s.invoiceRepo.GetByQuoteID(ctx, in.QuoteID)
		if err == nil {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyInvoiced, quote.Number)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if in.ClientID == "" {
			in.ClientID = quote.ClientID
		}
	}

	if err := domain.Check(in); err != nil {
		return nil, err
	}
	if in.Deposit.IsNegative() {
		in.Deposit = decimal.Zero
	}
	dueDays := in.DueDays
	if dueDays == 0 {
		dueDays = s.opts.DueDays
	}

	number, err := s.invoiceRepo.NextNumber(ctx, s.opts.Prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice number: %w", err)
	}

	item := domain.NewLineItem(uuid.NewString(), in.Description, in.Quantity, in.UnitPrice)
	invoice := domain.NewInvoice(uuid.NewString(), number, in.ClientID, in.Customer, in.Email, in.Description,
		item, in.Deposit, s.opts.Now.now(), dueDays)
	invoice.QuoteID = in.QuoteID

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) FindByQuote(ctx context.Context, quoteID string) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByQuoteID(ctx, quoteID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, p filter.Params) (*ListResult[*domain.Invoice], error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if p.Now.IsZero() {
		p.Now = s.opts.Now.now()
	}
	return &ListResult[*domain.Invoice]{
		Items:  filter.Visible(invoices, p),
		Counts: filter.Count(invoices, p),
	}, nil
}

func (s *invoiceService) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invoice %q", domain.ErrUnknownStatus, status)
	}
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice.Status = status
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) RecordPayment(ctx context.Context, id string, paid decimal.Decimal) (*domain.Invoice, error) {
	if !paid.IsPositive() {
		return nil, ErrInvalidPayment
	}
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invoice.CanRecordPayment() {
		return nil, ErrPaymentNotAllowed
	}

	invoice.ApplyPayment(paid, s.opts.Now.now())
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) Archive(ctx context.Context, id string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invoice.Archive(s.opts.Now.now()) {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotArchivable, invoice.Number, invoice.Status)
	}
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) Restore(ctx context.Context, id string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice.Restore()
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) Reminder(ctx context.Context, id string) (string, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !invoice.CanSendReminder() {
		return "", fmt.Errorf("no reminder needed for %s invoice %s", invoice.Status, invoice.Number)
	}
	return invoice.ReminderText(), nil
}
