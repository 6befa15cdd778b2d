package repository

import (
	"context"
	"fmt"

	"github.com/andy/printdesk/internal/domain"
)

// QuoteRepo is an in-memory implementation of QuoteRepository
type QuoteRepo struct {
	s *store[*domain.Quote]
}

func NewQuoteRepo(seed []*domain.Quote) *QuoteRepo {
	return &QuoteRepo{
		s: newStore(seed, func(q *domain.Quote) string { return q.ID }, (*domain.Quote).Clone),
	}
}

func (r *QuoteRepo) Create(ctx context.Context, quote *domain.Quote) error {
	if err := quote.Validate(); err != nil {
		return fmt.Errorf("invalid quote: %w", err)
	}
	return r.s.insert(quote)
}

func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	q, ok := r.s.get(id)
	if !ok {
		return nil, notFound("quote", id)
	}
	return q, nil
}

func (r *QuoteRepo) List(ctx context.Context) ([]*domain.Quote, error) {
	return r.s.list(nil), nil
}

func (r *QuoteRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.Quote, error) {
	return r.s.list(func(q *domain.Quote) bool { return q.ClientID == clientID }), nil
}

func (r *QuoteRepo) Update(ctx context.Context, quote *domain.Quote) error {
	if err := r.s.replace(quote); err != nil {
		return notFound("quote", quote.ID)
	}
	return nil
}

// NextNumber generates the next quote number, e.g. "Q013"
func (r *QuoteRepo) NextNumber(ctx context.Context, prefix string) (string, error) {
	items := r.s.snapshot()
	numbers := make([]string, len(items))
	for i, q := range items {
		numbers[i] = q.Number
	}
	return nextNumber(prefix, numbers), nil
}
