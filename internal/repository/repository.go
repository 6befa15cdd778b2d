package repository

import (
	"context"
	"errors"
	"time"

	"github.com/andy/printdesk/internal/domain"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate id")
)

// ClientRepository manages the client directory
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
}

// QuoteRepository manages quotes
type QuoteRepository interface {
	Create(ctx context.Context, quote *domain.Quote) error
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	List(ctx context.Context) ([]*domain.Quote, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Quote, error)
	Update(ctx context.Context, quote *domain.Quote) error
	NextNumber(ctx context.Context, prefix string) (string, error)
}

// InvoiceRepository manages invoices
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	// GetByQuoteID returns the first invoice raised from a quote
	GetByQuoteID(ctx context.Context, quoteID string) (*domain.Invoice, error)
	List(ctx context.Context) ([]*domain.Invoice, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Invoice, error)
	Update(ctx context.Context, invoice *domain.Invoice) error
	NextNumber(ctx context.Context, prefix string) (string, error)
}

// JobRepository manages the production calendar
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
	// ListBetween returns jobs dated in [start, end)
	ListBetween(ctx context.Context, start, end time.Time) ([]*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
}
