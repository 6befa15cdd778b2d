package service

import (
	"context"
	"sort"
	"time"

	"github.com/andy/printdesk/internal/domain"
	"github.com/andy/printdesk/internal/repository"
	"github.com/shopspring/decimal"
)

// topClientLimit caps the top clients table
const topClientLimit = 5

// MonthRevenue is money collected in one calendar month
type MonthRevenue struct {
	Year   int
	Month  time.Month
	Amount decimal.Decimal
}

// PipelineStage is the quote count and value in one status
type PipelineStage struct {
	Status domain.QuoteStatus
	Count  int
	Amount decimal.Decimal
}

// ClientRevenue ranks a client by money billed and collected
type ClientRevenue struct {
	ClientID string
	Name     string
	Invoices int
	Billed   decimal.Decimal
	Paid     decimal.Decimal
}

// FinancialSummary provides the financials tab figures.
// Year zero covers every year.
type FinancialSummary struct {
	Year           int
	InvoiceCount   int
	Billed         decimal.Decimal // Sum of invoice amounts
	Collected      decimal.Decimal // Sum of paid amounts
	Outstanding    decimal.Decimal // Balance on unpaid invoices
	Overdue        decimal.Decimal // Balance past its due date
	OverdueCount   int
	RevenueByMonth []MonthRevenue
	Pipeline       []PipelineStage
	TopClients     []ClientRevenue
}

// ReportService provides aggregations and analytics
type ReportService interface {
	GetFinancialSummary(ctx context.Context, year int) (*FinancialSummary, error)

	// Years lists the years that have invoices, newest first
	Years(ctx context.Context) ([]int, error)
}

type reportService struct {
	invoiceRepo repository.InvoiceRepository
	quoteRepo   repository.QuoteRepository
	clientRepo  repository.ClientRepository
	now         Clock
}

// NewReportService creates a new report service
func NewReportService(
	invoiceRepo repository.InvoiceRepository,
	quoteRepo repository.QuoteRepository,
	clientRepo repository.ClientRepository,
	now Clock,
) ReportService {
	return &reportService{
		invoiceRepo: invoiceRepo,
		quoteRepo:   quoteRepo,
		clientRepo:  clientRepo,
		now:         now,
	}
}

func (s *reportService) GetFinancialSummary(ctx context.Context, year int) (*FinancialSummary, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	quotes, err := s.quoteRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now.now()
	summary := &FinancialSummary{
		Year:        year,
		Billed:      decimal.Zero,
		Collected:   decimal.Zero,
		Outstanding: decimal.Zero,
		Overdue:     decimal.Zero,
	}

	byMonth := make(map[[2]int]decimal.Decimal)
	if year != 0 {
		// Initialize all months to 0
		for m := time.January; m <= time.December; m++ {
			byMonth[[2]int{year, int(m)}] = decimal.Zero
		}
	}
	byClient := make(map[string]*ClientRevenue)

	for _, inv := range invoices {
		if year != 0 && inv.IssueDate.Year() != year {
			continue
		}
		summary.InvoiceCount++
		summary.Billed = summary.Billed.Add(inv.Amount)
		summary.Collected = summary.Collected.Add(inv.PaidAmount)

		if inv.Status != domain.InvoiceStatusPaid {
			balance := inv.Balance()
			summary.Outstanding = summary.Outstanding.Add(balance)
			if isOverdue(inv, now) {
				summary.Overdue = summary.Overdue.Add(balance)
				summary.OverdueCount++
			}
		}

		if inv.PaidAmount.IsPositive() {
			// Use payment date if available, otherwise the issue date
			paidOn := inv.IssueDate
			if inv.PaymentDate != nil {
				paidOn = *inv.PaymentDate
			}
			if year == 0 || paidOn.Year() == year {
				key := [2]int{paidOn.Year(), int(paidOn.Month())}
				byMonth[key] = byMonth[key].Add(inv.PaidAmount)
			}
		}

		cr, ok := byClient[inv.ClientID]
		if !ok {
			cr = &ClientRevenue{ClientID: inv.ClientID, Name: inv.Customer, Billed: decimal.Zero, Paid: decimal.Zero}
			byClient[inv.ClientID] = cr
		}
		cr.Invoices++
		cr.Billed = cr.Billed.Add(inv.Amount)
		cr.Paid = cr.Paid.Add(inv.PaidAmount)
	}

	summary.RevenueByMonth = sortedMonths(byMonth)
	summary.Pipeline = pipeline(quotes, year)
	summary.TopClients = topClients(byClient, clients)
	return summary, nil
}

func (s *reportService) Years(ctx context.Context) ([]int, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool)
	var years []int
	for _, inv := range invoices {
		y := inv.IssueDate.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// isOverdue is true for invoices marked overdue, or still open past their due date
func isOverdue(inv *domain.Invoice, now time.Time) bool {
	switch inv.Status {
	case domain.InvoiceStatusOverdue:
		return true
	case domain.InvoiceStatusSent, domain.InvoiceStatusPartial:
		return !inv.DueDate.IsZero() && inv.DueDate.Before(now)
	}
	return false
}

func sortedMonths(byMonth map[[2]int]decimal.Decimal) []MonthRevenue {
	out := make([]MonthRevenue, 0, len(byMonth))
	for k, amount := range byMonth {
		out = append(out, MonthRevenue{Year: k[0], Month: time.Month(k[1]), Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// pipeline groups active quotes by status, in status order
func pipeline(quotes []*domain.Quote, year int) []PipelineStage {
	stages := make([]PipelineStage, len(domain.QuoteStatuses))
	index := make(map[domain.QuoteStatus]int, len(stages))
	for i, st := range domain.QuoteStatuses {
		stages[i] = PipelineStage{Status: st, Amount: decimal.Zero}
		index[st] = i
	}
	for _, q := range quotes {
		if q.Archived || (year != 0 && q.CreatedDate.Year() != year) {
			continue
		}
		i, ok := index[q.Status]
		if !ok {
			continue
		}
		stages[i].Count++
		stages[i].Amount = stages[i].Amount.Add(q.Amount)
	}
	return stages
}

func topClients(byClient map[string]*ClientRevenue, clients []*domain.Client) []ClientRevenue {
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.DisplayName()
	}

	out := make([]ClientRevenue, 0, len(byClient))
	for id, cr := range byClient {
		if name, ok := names[id]; ok {
			cr.Name = name
		}
		out = append(out, *cr)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Paid.Equal(out[j].Paid) {
			return out[i].Paid.GreaterThan(out[j].Paid)
		}
		return out[i].Name < out[j].Name
	})
	return firstN(out, topClientLimit)
}
