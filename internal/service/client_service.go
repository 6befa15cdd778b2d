package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/printdesk/internal/domain"
	"github.com/andy/printdesk/internal/filter"
	"github.com/andy/printdesk/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// recentLimit is how many quotes and invoices a client detail shows
const recentLimit = 3

// ClientInput is the client form
type ClientInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Address string
	City    string
	State   string
	ZipCode string
	// Status defaults to prospect on create and is left alone on update when empty
	Status domain.ClientStatus
	Notes  string
}

// ClientActivity is a client with its most recent documents
type ClientActivity struct {
	Client         *domain.Client
	RecentQuotes   []*domain.Quote
	RecentInvoices []*domain.Invoice
	QuoteCount     int
	InvoiceCount   int
	AverageOrder   decimal.Decimal
}

// ClientService manages the client directory
type ClientService interface {
	// CreateClient adds a client with no order history
	CreateClient(ctx context.Context, in ClientInput) (*domain.Client, error)

	// UpdateClient edits contact details, keeping order history
	UpdateClient(ctx context.Context, id string, in ClientInput) (*domain.Client, error)

	GetClient(ctx context.Context, id string) (*domain.Client, error)

	// ListClients filters the directory
	ListClients(ctx context.Context, p filter.ClientParams) ([]*domain.Client, error)

	// GetActivity returns the client detail view
	GetActivity(ctx context.Context, id string) (*ClientActivity, error)
}

type clientService struct {
	clientRepo  repository.ClientRepository
	quoteRepo   repository.QuoteRepository
	invoiceRepo repository.InvoiceRepository
}

// NewClientService creates a new client service
func NewClientService(
	clientRepo repository.ClientRepository,
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
) ClientService {
	return &clientService{
		clientRepo:  clientRepo,
		quoteRepo:   quoteRepo,
		invoiceRepo: invoiceRepo,
	}
}

func (s *clientService) CreateClient(ctx context.Context, in ClientInput) (*domain.Client, error) {
	client := domain.NewClient(uuid.NewString(), in.Name, in.Email)
	in.apply(client)

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, in ClientInput) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Name = strings.TrimSpace(in.Name)
	client.Email = strings.TrimSpace(in.Email)
	in.apply(client)

	if err := client.Validate(); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (in ClientInput) apply(c *domain.Client) {
	c.Phone = strings.TrimSpace(in.Phone)
	c.Company = strings.TrimSpace(in.Company)
	c.Address = strings.TrimSpace(in.Address)
	c.City = strings.TrimSpace(in.City)
	c.State = strings.TrimSpace(in.State)
	c.ZipCode = strings.TrimSpace(in.ZipCode)
	c.Notes = strings.TrimSpace(in.Notes)
	if in.Status != "" {
		c.Status = in.Status
	}
}

func (s *clientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *clientService) ListClients(ctx context.Context, p filter.ClientParams) ([]*domain.Client, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Clients(clients, p), nil
}

func (s *clientService) GetActivity(ctx context.Context, id string) (*ClientActivity, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	quotes, err := s.quoteRepo.ListByClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	invoices, err := s.invoiceRepo.ListByClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	return &ClientActivity{
		Client:         client,
		RecentQuotes:   firstN(quotes, recentLimit),
		RecentInvoices: firstN(invoices, recentLimit),
		QuoteCount:     len(quotes),
		InvoiceCount:   len(invoices),
		AverageOrder:   client.AverageOrder(),
	}, nil
}

func firstN[E any](items []E, n int) []E {
	if len(items) > n {
		return items[:n]
	}
	return items
}
