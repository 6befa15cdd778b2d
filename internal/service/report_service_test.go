package service

import (
	"context"
	"testing"
	"time"

	"github.com/andy/printdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReportService(r testRepos) ReportService {
	return NewReportService(r.invoices, r.quotes, r.clients, fixedClock)
}

func TestGetFinancialSummary(t *testing.T) {
	ctx := context.Background()
	svc := newTestReportService(seededRepos(t))

	s, err := svc.GetFinancialSummary(ctx, 2025)
	require.NoError(t, err)

	assert.Equal(t, 3, s.InvoiceCount)
	assert.Equal(t, "2190.98", s.Billed.StringFixed(2))
	assert.Equal(t, "1794.10", s.Collected.StringFixed(2))
	assert.Equal(t, "396.88", s.Outstanding.StringFixed(2))
	// INV001 is partial and past its due date
	assert.Equal(t, "396.88", s.Overdue.StringFixed(2))
	assert.Equal(t, 1, s.OverdueCount)

	require.Len(t, s.RevenueByMonth, 12)
	for _, m := range s.RevenueByMonth {
		if m.Month == time.July {
			assert.Equal(t, "1794.10", m.Amount.StringFixed(2))
		} else {
			assert.True(t, m.Amount.IsZero(), "month %s", m.Month)
		}
	}

	require.Len(t, s.Pipeline, len(domain.QuoteStatuses))
	stages := map[domain.QuoteStatus]PipelineStage{}
	for _, st := range s.Pipeline {
		stages[st.Status] = st
	}
	assert.Equal(t, 2, stages[domain.QuoteStatusDraft].Count)
	assert.Equal(t, "1325", stages[domain.QuoteStatusDraft].Amount.String())
	assert.Equal(t, 3, stages[domain.QuoteStatusPending].Count)
	assert.Equal(t, 3, stages[domain.QuoteStatusApproved].Count)
	assert.Equal(t, "2190", stages[domain.QuoteStatusApproved].Amount.String())
	assert.Zero(t, stages[domain.QuoteStatusRejected].Count)

	require.Len(t, s.TopClients, 3)
	assert.Equal(t, "Finance Ltd", s.TopClients[0].Name)
	assert.Equal(t, "Local Restaurant", s.TopClients[1].Name)
	assert.Equal(t, "Tech Corp", s.TopClients[2].Name)
}

func TestGetFinancialSummary_AllYears(t *testing.T) {
	svc := newTestReportService(seededRepos(t))

	s, err := svc.GetFinancialSummary(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, s.RevenueByMonth, 1, "only months with payments")
	assert.Equal(t, 2025, s.RevenueByMonth[0].Year)

	var rejected, expired int
	for _, st := range s.Pipeline {
		switch st.Status {
		case domain.QuoteStatusRejected:
			rejected = st.Count
		case domain.QuoteStatusExpired:
			expired = st.Count
		}
	}
	assert.Equal(t, 1, rejected, "archived quotes stay out of the pipeline")
	assert.Equal(t, 1, expired)
}

func TestGetFinancialSummary_EmptyYear(t *testing.T) {
	svc := newTestReportService(seededRepos(t))

	s, err := svc.GetFinancialSummary(context.Background(), 2023)
	require.NoError(t, err)
	assert.Zero(t, s.InvoiceCount)
	assert.True(t, s.Billed.IsZero())
	assert.Empty(t, s.TopClients)
	assert.Len(t, s.RevenueByMonth, 12)
}

func TestYears(t *testing.T) {
	svc := newTestReportService(seededRepos(t))

	years, err := svc.Years(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2025}, years)
}
