package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/andy/printdesk/internal/domain"
)

// JobRepo is an in-memory implementation of JobRepository
type JobRepo struct {
	s *store[*domain.Job]
}

func NewJobRepo(seed []*domain.Job) *JobRepo {
	return &JobRepo{
		s: newStore(seed, func(j *domain.Job) string { return j.ID }, (*domain.Job).Clone),
	}
}

func (r *JobRepo) Create(ctx context.Context, job *domain.Job) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("invalid job: %w", err)
	}
	return r.s.insert(job)
}

func (r *JobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	j, ok := r.s.get(id)
	if !ok {
		return nil, notFound("job", id)
	}
	return j, nil
}

func (r *JobRepo) List(ctx context.Context) ([]*domain.Job, error) {
	return r.s.list(nil), nil
}

func (r *JobRepo) ListBetween(ctx context.Context, start, end time.Time) ([]*domain.Job, error) {
	return r.s.list(func(j *domain.Job) bool {
		return !j.Date.Before(start) && j.Date.Before(end)
	}), nil
}

func (r *JobRepo) Update(ctx context.Context, job *domain.Job) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("invalid job: %w", err)
	}
	if err := r.s.replace(job); err != nil {
		return notFound("job", job.ID)
	}
	return nil
}
