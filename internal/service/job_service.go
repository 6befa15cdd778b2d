package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andy/printdesk/internal/domain"
	"github.com/andy/printdesk/internal/repository"
)

// JobService manages the production calendar
type JobService interface {
	// ListMonth returns jobs dated in the given month, earliest first
	ListMonth(ctx context.Context, year int, month time.Month) ([]*domain.Job, error)

	GetJob(ctx context.Context, id string) (*domain.Job, error)

	UpdateStatus(ctx context.Context, id string, status domain.JobStatus) (*domain.Job, error)

	// Reschedule moves a job to another day. Completed jobs are locked.
	Reschedule(ctx context.Context, id string, date time.Time) (*domain.Job, error)

	UpdateDetails(ctx context.Context, id, description, notes string) (*domain.Job, error)

	// SetSize records a size quantity; zero or less removes the size
	SetSize(ctx context.Context, id, size string, qty int) (*domain.Job, error)
}

type jobService struct {
	jobRepo repository.JobRepository
}

// NewJobService creates a new job service
func NewJobService(jobRepo repository.JobRepository) JobService {
	return &jobService{jobRepo: jobRepo}
}

func (s *jobService) ListMonth(ctx context.Context, year int, month time.Month) ([]*domain.Job, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	jobs, err := s.jobRepo.ListBetween(ctx, start, start.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].Date.Before(jobs[j].Date)
	})
	return jobs, nil
}

func (s *jobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobRepo.GetByID(ctx, id)
}

func (s *jobService) UpdateStatus(ctx context.Context, id string, status domain.JobStatus) (*domain.Job, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: job %q", domain.ErrUnknownStatus, status)
	}
	return s.mutate(ctx, id, func(j *domain.Job) error {
		j.Status = status
		return nil
	})
}

func (s *jobService) Reschedule(ctx context.Context, id string, date time.Time) (*domain.Job, error) {
	return s.mutate(ctx, id, func(j *domain.Job) error {
		return j.Reschedule(date)
	})
}

func (s *jobService) UpdateDetails(ctx context.Context, id, description, notes string) (*domain.Job, error) {
	return s.mutate(ctx, id, func(j *domain.Job) error {
		j.Description = strings.TrimSpace(description)
		j.Notes = strings.TrimSpace(notes)
		return nil
	})
}

func (s *jobService) SetSize(ctx context.Context, id, size string, qty int) (*domain.Job, error) {
	return s.mutate(ctx, id, func(j *domain.Job) error {
		j.SetSize(size, qty)
		return nil
	})
}

// mutate loads a job, applies fn and saves it. Nothing is saved if fn fails.
func (s *jobService) mutate(ctx context.Context, id string, fn func(*domain.Job) error) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(job); err != nil {
		return nil, err
	}
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}
