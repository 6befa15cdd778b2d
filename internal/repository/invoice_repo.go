package repository

import (
	"context"
	"fmt"

	"github.com/andy/printdesk/internal/domain"
)

// InvoiceRepo is an in-memory implementation of InvoiceRepository
type InvoiceRepo struct {
	s *store[*domain.Invoice]
}

func NewInvoiceRepo(seed []*domain.Invoice) *InvoiceRepo {
	return &InvoiceRepo{
		s: newStore(seed, func(i *domain.Invoice) string { return i.ID }, (*domain.Invoice).Clone),
	}
}

func (r *InvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return fmt.Errorf("invalid invoice: %w", err)
	}
	return r.s.insert(invoice)
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, ok := r.s.get(id)
	if !ok {
		return nil, notFound("invoice", id)
	}
	return inv, nil
}

func (r *InvoiceRepo) GetByQuoteID(ctx context.Context, quoteID string) (*domain.Invoice, error) {
	if quoteID == "" {
		return nil, notFound("invoice for quote", quoteID)
	}
	inv, ok := r.s.find(func(i *domain.Invoice) bool { return i.QuoteID == quoteID })
	if !ok {
		return nil, notFound("invoice for quote", quoteID)
	}
	return inv, nil
}

func (r *InvoiceRepo) List(ctx context.Context) ([]*domain.Invoice, error) {
	return r.s.list(nil), nil
}

func (r *InvoiceRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.Invoice, error) {
	return r.s.list(func(i *domain.Invoice) bool { return i.ClientID == clientID }), nil
}

func (r *InvoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	if err := r.s.replace(invoice); err != nil {
		return notFound("invoice", invoice.ID)
	}
	return nil
}

// NextNumber generates the next invoice number, e.g. "INV004"
func (r *InvoiceRepo) NextNumber(ctx context.Context, prefix string) (string, error) {
	items := r.s.snapshot()
	numbers := make([]string, len(items))
	for i, inv := range items {
		numbers[i] = inv.Number
	}
	return nextNumber(prefix, numbers), nil
}
