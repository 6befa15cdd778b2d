package service

import (
	"context"
	"testing"
	"time"

	"github.com/andy/printdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMonth(t *testing.T) {
	ctx := context.Background()
	svc := NewJobService(seededRepos(t).jobs)

	jobs, err := svc.ListMonth(ctx, 2025, time.January)
	require.NoError(t, err)
	require.Len(t, jobs, 8)
	for i := 1; i < len(jobs); i++ {
		assert.False(t, jobs[i].Date.Before(jobs[i-1].Date))
	}

	jobs, err = svc.ListMonth(ctx, 2025, time.February)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestReschedule(t *testing.T) {
	ctx := context.Background()
	svc := NewJobService(seededRepos(t).jobs)
	feb3 := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)

	job, err := svc.Reschedule(ctx, "1", feb3)
	require.NoError(t, err)
	assert.Equal(t, feb3, job.Date)

	// J005 is completed
	_, err = svc.Reschedule(ctx, "5", feb3)
	assert.ErrorIs(t, err, ErrDateLocked)
	locked, err := svc.GetJob(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, 19, locked.Date.Day())

	feb, err := svc.ListMonth(ctx, 2025, time.February)
	require.NoError(t, err)
	require.Len(t, feb, 1)
	assert.Equal(t, "J001", feb[0].Title)
}

func TestJobStatusSizesAndDetails(t *testing.T) {
	ctx := context.Background()
	svc := NewJobService(seededRepos(t).jobs)

	job, err := svc.UpdateStatus(ctx, "3", domain.JobStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, job.Status)

	_, err = svc.UpdateStatus(ctx, "3", domain.JobStatus("PAUSED"))
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)

	job, err = svc.SetSize(ctx, "3", "XXL", 4)
	require.NoError(t, err)
	assert.Equal(t, 21, job.TotalPieces())

	job, err = svc.SetSize(ctx, "3", "M", 0)
	require.NoError(t, err)
	_, ok := job.Sizes["M"]
	assert.False(t, ok)

	job, err = svc.UpdateDetails(ctx, "3", " Acme Division Inc. ", "rush")
	require.NoError(t, err)
	assert.Equal(t, "Acme Division Inc.", job.Description)
	assert.Equal(t, "rush", job.Notes)
}
