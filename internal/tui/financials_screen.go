package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/printdesk/internal/app"
	"github.com/andy/printdesk/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const maxBar = 25

// FinancialsModel shows revenue, receivables and the quote pipeline
type FinancialsModel struct {
	app     *app.App
	years   []int // 0 first, meaning every year
	yearIdx int
	summary *service.FinancialSummary
	loading bool
	err     error
}

type financialsDataMsg struct {
	years   []int
	summary *service.FinancialSummary
	err     error
}

// NewFinancialsModel creates a new financials screen model
func NewFinancialsModel(a *app.App) tea.Model {
	return &FinancialsModel{
		app:     a,
		years:   []int{0},
		loading: true,
	}
}

func (m *FinancialsModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *FinancialsModel) year() int {
	return m.years[m.yearIdx]
}

func (m *FinancialsModel) loadData() tea.Cmd {
	year := m.year()
	return func() tea.Msg {
		ctx := context.Background()

		years, err := m.app.ReportService.Years(ctx)
		if err != nil {
			return financialsDataMsg{err: err}
		}
		summary, err := m.app.ReportService.GetFinancialSummary(ctx, year)
		if err != nil {
			return financialsDataMsg{err: err}
		}
		return financialsDataMsg{years: append([]int{0}, years...), summary: summary}
	}
}

func (m *FinancialsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()

	case financialsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			year := m.year()
			m.years = msg.years
			m.yearIdx = 0
			for i, y := range m.years {
				if y == year {
					m.yearIdx = i
				}
			}
			m.summary = msg.summary
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch {
		case key.Matches(msg, DefaultKeyMap.Left):
			if m.yearIdx < len(m.years)-1 {
				m.yearIdx++
				m.loading = true
				return m, m.loadData()
			}
		case key.Matches(msg, DefaultKeyMap.Right):
			if m.yearIdx > 0 {
				m.yearIdx--
				m.loading = true
				return m, m.loadData()
			}
		}
	}
	return m, nil
}

func (m *FinancialsModel) View() string {
	if m.loading {
		return titleStyle.Render("Financials") + "\n\n  Loading..."
	}

	if m.err != nil {
		return titleStyle.Render("Financials") + "\n\n" + errorLine(m.err)
	}

	s := m.summary
	period := "All years"
	if s.Year != 0 {
		period = fmt.Sprintf("%d", s.Year)
	}

	out := titleStyle.Render("Financials") + "  " + subtitleStyle.Render(period) + "\n\n"
	out += m.renderKPIs() + "\n\n"
	out += m.renderMonthlyRevenue() + "\n"
	out += m.renderPipeline() + "\n"
	out += m.renderTopClients()

	out += "\n" + helpStyle.Render("  h/l: older/newer year")
	return out
}

func (m *FinancialsModel) renderKPIs() string {
	s := m.summary
	kpi := func(label string, value decimal.Decimal, note string) string {
		body := subtitleStyle.Render(label) + "\n" + valueStyle.Bold(true).Render(formatMoney(value))
		if note != "" {
			body += "\n" + subtitleStyle.Render(note)
		}
		return boxStyle.Width(18).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		kpi("Revenue", s.Billed, fmt.Sprintf("%d invoices", s.InvoiceCount)),
		kpi("Collected", s.Collected, ""),
		kpi("Outstanding", s.Outstanding, ""),
		kpi("Overdue", s.Overdue, fmt.Sprintf("%d invoices", s.OverdueCount)),
	)
}

func (m *FinancialsModel) renderMonthlyRevenue() string {
	s := lipgloss.NewStyle().Bold(true).Render("  Collected by Month") + "\n"
	months := m.summary.RevenueByMonth
	if len(months) == 0 {
		return s + subtitleStyle.Render("    No revenue recorded") + "\n"
	}

	// Find max for scaling
	peak := decimal.Zero
	for _, mr := range months {
		if mr.Amount.GreaterThan(peak) {
			peak = mr.Amount
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(primaryColor)
	for _, mr := range months {
		barLen := 0
		if peak.IsPositive() {
			barLen = int(mr.Amount.Div(peak).Mul(decimal.NewFromInt(maxBar)).IntPart())
		}
		label := mr.Month.String()[:3]
		if m.summary.Year == 0 {
			label = fmt.Sprintf("%s %d", label, mr.Year)
		}
		s += fmt.Sprintf("    %-9s %s %s\n", label,
			barStyle.Render(fmt.Sprintf("%-*s", maxBar, strings.Repeat("█", barLen))),
			formatMoney(mr.Amount))
	}
	return s
}

func (m *FinancialsModel) renderPipeline() string {
	s := lipgloss.NewStyle().Bold(true).Render("  Quote Pipeline") + "\n"
	for _, st := range m.summary.Pipeline {
		s += fmt.Sprintf("    %s %3d  %s\n", renderStatus(string(st.Status), 10), st.Count, formatMoney(st.Amount))
	}
	return s
}

func (m *FinancialsModel) renderTopClients() string {
	s := lipgloss.NewStyle().Bold(true).Render("  Top Clients") + "\n"
	if len(m.summary.TopClients) == 0 {
		return s + subtitleStyle.Render("    No invoices yet") + "\n"
	}
	for i, c := range m.summary.TopClients {
		s += fmt.Sprintf("    %d. %-24s %12s paid  %s billed  (%d)\n",
			i+1, truncateStr(c.Name, 24), formatMoney(c.Paid), formatMoney(c.Billed), c.Invoices)
	}
	return s
}
