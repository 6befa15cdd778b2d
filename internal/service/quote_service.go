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

// QuoteInput is the new quote form
type QuoteInput struct {
	ClientID string
	// Customer defaults to the client's display name when a client is given
	Customer    string `validate:"required"`
	Description string `validate:"required"`
	Quantity    int    `validate:"gte=1"`
	UnitPrice   decimal.Decimal
}

// Totals previews the amounts the quote will carry
func (in QuoteInput) Totals() domain.Totals {
	return domain.ComputeTotals(decimal.NewFromInt(int64(in.Quantity)), in.UnitPrice, decimal.Zero)
}

type QuoteOptions struct {
	Prefix    string
	ValidDays int
	Now       Clock
}

// InvoicePlan is the outcome of asking to invoice a quote: either the
// invoice already raised from it, or a prefilled draft for a new one
type InvoicePlan struct {
	Existing *domain.Invoice
	Draft    *InvoiceInput
}

// QuoteService manages quotes and their hand-off to invoicing
type QuoteService interface {
	// CreateQuote creates a draft quote with a generated number
	CreateQuote(ctx context.Context, in QuoteInput) (*domain.Quote, error)

	GetQuote(ctx context.Context, id string) (*domain.Quote, error)

	// ListQuotes returns the quotes visible under p with their counts
	ListQuotes(ctx context.Context, p filter.Params) (*ListResult[*domain.Quote], error)

	// UpdateStatus sets the quote status explicitly
	UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus) (*domain.Quote, error)

	Archive(ctx context.Context, id string) (*domain.Quote, error)
	Restore(ctx context.Context, id string) (*domain.Quote, error)

	// PlanInvoice resolves the invoice action for a quote. An existing
	// invoice wins; otherwise the quote must be approved.
	PlanInvoice(ctx context.Context, id string) (*InvoicePlan, error)
}

type quoteService struct {
	quoteRepo   repository.QuoteRepository
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	opts        QuoteOptions
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	opts QuoteOptions,
) QuoteService {
	if opts.Prefix == "" {
		opts.Prefix = "Q"
	}
	if opts.ValidDays <= 0 {
		opts.ValidDays = 30
	}
	return &quoteService{
		quoteRepo:   quoteRepo,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		opts:        opts,
	}
}

func (s *quoteService) CreateQuote(ctx context.Context, in QuoteInput) (*domain.Quote, error) {
	in.Customer = strings.TrimSpace(in.Customer)
	if in.ClientID != "" {
		client, err := s.clientRepo.GetByID(ctx, in.ClientID)
		if err != nil {
			return nil, err
		}
		if in.Customer == "" {
			in.Customer = client.DisplayName()
		}
	}
	in.Description = strings.TrimSpace(in.Description)
	if err := domain.Check(in); err != nil {
		return nil, err
	}

	number, err := s.quoteRepo.NextNumber(ctx, s.opts.Prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote number: %w", err)
	}

	item := domain.NewLineItem(uuid.NewString(), in.Description, in.Quantity, in.UnitPrice)
	quote := domain.NewQuote(uuid.NewString(), number, in.ClientID, in.Customer, in.Description, item, s.opts.Now.now(), s.opts.ValidDays)

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}
	return quote, nil
}

func (s *quoteService) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	return s.quoteRepo.GetByID(ctx, id)
}

func (s *quoteService) ListQuotes(ctx context.Context, p filter.Params) (*ListResult[*domain.Quote], error) {
	quotes, err := s.quoteRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if p.Now.IsZero() {
		p.Now = s.opts.Now.now()
	}
	return &ListResult[*domain.Quote]{
		Items:  filter.Visible(quotes, p),
		Counts: filter.Count(quotes, p),
	}, nil
}

func (s *quoteService) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus) (*domain.Quote, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: quote %q", domain.ErrUnknownStatus, status)
	}
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	quote.Status = status
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *quoteService) Archive(ctx context.Context, id string) (*domain.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quote.Archive(s.opts.Now.now()) {
		return nil, ErrNotArchivable
	}
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *quoteService) Restore(ctx context.Context, id string) (*domain.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	quote.Restore()
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *quoteService) PlanInvoice(ctx context.Context, id string) (*InvoicePlan, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing, err := s.invoiceRepo.GetByQuoteID(ctx, quote.ID)
	switch {
	case err == nil:
		return &InvoicePlan{Existing: existing}, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	if !quote.Status.CanInvoice() {
		return nil, ErrQuoteNotApproved
	}

	draft := DraftFromQuote(quote)
	if quote.ClientID != "" {
		if client, err := s.clientRepo.GetByID(ctx, quote.ClientID); err == nil {
			draft.Email = client.Email
		}
	}
	return &InvoicePlan{Draft: draft}, nil
}

// DraftFromQuote prefills an invoice form from a quote. The quote amount is
// tax-inclusive, so the unit price is the tax-free subtotal spread over the
// first item's quantity.
func DraftFromQuote(q *domain.Quote) *InvoiceInput {
	qty := 1
	if len(q.Items) > 0 && q.Items[0].Quantity > 0 {
		qty = q.Items[0].Quantity
	}
	unit := domain.SubtotalFromTotal(q.Amount).Div(decimal.NewFromInt(int64(qty)))
	return &InvoiceInput{
		ClientID:    q.ClientID,
		QuoteID:     q.ID,
		Customer:    q.Customer,
		Description: q.Description,
		Quantity:    qty,
		UnitPrice:   domain.RoundCents(unit),
		Deposit:     decimal.Zero,
	}
}
