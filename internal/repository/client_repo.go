package repository

import (
	"context"
	"fmt"

	"github.com/andy/printdesk/internal/domain"
)

// ClientRepo is an in-memory implementation of ClientRepository
type ClientRepo struct {
	s *store[*domain.Client]
}

// NewClientRepo creates a ClientRepo seeded with clients
func NewClientRepo(seed []*domain.Client) *ClientRepo {
	return &ClientRepo{
		s: newStore(seed, func(c *domain.Client) string { return c.ID }, (*domain.Client).Clone),
	}
}

func (r *ClientRepo) Create(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}
	return r.s.insert(client)
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	c, ok := r.s.get(id)
	if !ok {
		return nil, notFound("client", id)
	}
	return c, nil
}

// List returns clients in insertion order
func (r *ClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	return r.s.list(nil), nil
}

func (r *ClientRepo) Update(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}
	if err := r.s.replace(client); err != nil {
		return notFound("client", client.ID)
	}
	return nil
}
