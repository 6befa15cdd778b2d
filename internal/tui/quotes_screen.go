package tui

import (
	"context"
	"fmt"

	"github.com/andy/printdesk/internal/app"
	"github.com/andy/printdesk/internal/domain"
	"github.com/andy/printdesk/internal/filter"
	"github.com/andy/printdesk/internal/nav"
	"github.com/andy/printdesk/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type quoteMode int

const (
	quoteModeList quoteMode = iota
	quoteModeNew
)

// quote form field indices
const (
	quoteFieldCustomer = iota
	quoteFieldDescription
	quoteFieldQuantity
	quoteFieldPrice
)

// QuotesModel lists quotes under the current navigation context
type QuotesModel struct {
	app       *app.App
	nav       nav.Context
	controls  listControls
	quotes    []*domain.Quote
	counts    filter.Counts
	client    *domain.Client // focused client, if any
	cursor    int
	loading   bool
	err       error
	statusMsg string

	mode     quoteMode
	form     *form
	openForm bool // open the new quote form once data loads
}

type quotesDataMsg struct {
	result *service.ListResult[*domain.Quote]
	client *domain.Client
	err    error
}

type quoteSavedMsg struct {
	quote *domain.Quote
	msg   string
	err   error
}

// NewQuotesModel creates a new quotes screen model
func NewQuotesModel(a *app.App, ctx nav.Context) tea.Model {
	statuses := make([]string, len(domain.QuoteStatuses))
	for i, s := range domain.QuoteStatuses {
		statuses[i] = string(s)
	}
	return &QuotesModel{
		app:      a,
		nav:      ctx,
		controls: newListControls(statuses, filter.AllDates),
		loading:  true,
	}
}

// IsCapturingInput returns true when the form or search box is active
func (m *QuotesModel) IsCapturingInput() bool {
	return m.mode == quoteModeNew || m.controls.searching
}

func (m *QuotesModel) Init() tea.Cmd {
	return m.loadQuotes()
}

func (m *QuotesModel) loadQuotes() tea.Cmd {
	ctx := m.nav
	p := m.controls.params(ctx, ctx.SelectedQuoteID)
	return func() tea.Msg {
		bg := context.Background()
		res, err := m.app.QuoteService.ListQuotes(bg, p)
		if err != nil {
			return quotesDataMsg{err: err}
		}
		msg := quotesDataMsg{result: res}
		if ctx.SelectedClientID != "" {
			msg.client, _ = m.app.ClientService.GetClient(bg, ctx.SelectedClientID)
		}
		return msg
	}
}

func (m *QuotesModel) selected() *domain.Quote {
	if m.cursor < 0 || m.cursor >= len(m.quotes) {
		return nil
	}
	return m.quotes[m.cursor]
}

func (m *QuotesModel) initForm() {
	fields := []textinput.Model{
		newInput("Customer name", 100, 40),
		newInput("What is being printed", 200, 50),
		newInput("1", 6, 10),
		newInput("0.00", 10, 12),
	}
	if m.client != nil {
		fields[quoteFieldCustomer].SetValue(m.client.DisplayName())
	}
	m.form = newForm([]string{"Customer:", "Description:", "Quantity:", "Unit price:"}, fields)
	m.mode = quoteModeNew
}

func (m *QuotesModel) formInput() service.QuoteInput {
	return service.QuoteInput{
		ClientID:    m.nav.SelectedClientID,
		Customer:    m.form.value(quoteFieldCustomer),
		Description: m.form.value(quoteFieldDescription),
		Quantity:    domain.ParseQuantity(m.form.value(quoteFieldQuantity)),
		UnitPrice:   domain.ParseAmount(m.form.value(quoteFieldPrice)),
	}
}

func (m *QuotesModel) saveQuote() tea.Cmd {
	in := m.formInput()
	return func() tea.Msg {
		q, err := m.app.QuoteService.CreateQuote(context.Background(), in)
		if err != nil {
			return quoteSavedMsg{err: err}
		}
		return quoteSavedMsg{quote: q, msg: fmt.Sprintf("Created %s", q.Number)}
	}
}

func (m *QuotesModel) mutate(fn func(ctx context.Context, id string) (*domain.Quote, error), verb string) tea.Cmd {
	q := m.selected()
	if q == nil {
		return nil
	}
	return func() tea.Msg {
		updated, err := fn(context.Background(), q.ID)
		if err != nil {
			return quoteSavedMsg{err: err}
		}
		return quoteSavedMsg{msg: fmt.Sprintf("%s %s", verb, updated.Number)}
	}
}

// invoiceQuote opens the quote's invoice, or a draft for a new one
func (m *QuotesModel) invoiceQuote() tea.Cmd {
	q := m.selected()
	if q == nil {
		return nil
	}
	return func() tea.Msg {
		plan, err := m.app.QuoteService.PlanInvoice(context.Background(), q.ID)
		if err != nil {
			return quoteSavedMsg{err: err}
		}
		if plan.Existing != nil {
			return NavigateMsg{To: nav.ToInvoice(plan.Existing.ID, plan.Existing.ClientID)}
		}
		return NavigateMsg{To: nav.ToNewInvoiceFromQuote(q.ID), OpenForm: true}
	}
}

func (m *QuotesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if rm, ok := msg.(RefreshDataMsg); ok {
		m.nav = rm.Nav
		m.openForm = rm.OpenForm
		m.mode = quoteModeList
		m.loading = true
		return m, m.loadQuotes()
	}

	if m.mode == quoteModeNew {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case quotesDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.quotes = msg.result.Items
			m.counts = msg.result.Counts
			m.client = msg.client
			m.cursor = m.cursorFor(m.nav.SelectedQuoteID)
		}
		if m.openForm {
			m.openForm = false
			m.initForm()
			return m, m.form.fields[0].Focus()
		}
		return m, nil

	case quoteSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = msg.msg
		m.loading = true
		return m, m.loadQuotes()

	case tea.KeyMsg:
		if m.controls.searching {
			cmd, changed := m.controls.updateSearch(msg)
			if changed {
				return m, tea.Batch(cmd, m.loadQuotes())
			}
			return m, cmd
		}
		if m.loading {
			return m, nil
		}
		m.statusMsg = ""
		m.err = nil

		if cmd, reload := m.controls.handleKey(msg); cmd != nil || reload {
			if reload {
				m.cursor = 0
				return m, m.loadQuotes()
			}
			return m, cmd
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.quotes)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.initForm()
			return m, m.form.fields[0].Focus()
		case key.Matches(msg, DefaultKeyMap.Status):
			if q := m.selected(); q != nil {
				next := cycle(domain.QuoteStatuses, q.Status)
				return m, m.mutate(func(ctx context.Context, id string) (*domain.Quote, error) {
					return m.app.QuoteService.UpdateStatus(ctx, id, next)
				}, "Updated")
			}
		case key.Matches(msg, DefaultKeyMap.Archive):
			if q := m.selected(); q != nil {
				if q.Archived {
					return m, m.mutate(m.app.QuoteService.Restore, "Restored")
				}
				return m, m.mutate(m.app.QuoteService.Archive, "Archived")
			}
		case msg.String() == "i":
			return m, m.invoiceQuote()
		case msg.String() == "g":
			if q := m.selected(); q != nil && q.ClientID != "" {
				return m, navigate(nav.ToClient(q.ClientID))
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			if q := m.selected(); q != nil {
				return m, navigate(nav.ToQuote(q.ID, q.ClientID))
			}
		case key.Matches(msg, DefaultKeyMap.Clear):
			if m.nav.HasSelection() {
				return m, navigate(nav.Clear())
			}
		}
	}

	return m, nil
}

func (m *QuotesModel) cursorFor(id string) int {
	for i, q := range m.quotes {
		if q.ID == id {
			return i
		}
	}
	if m.cursor >= len(m.quotes) {
		return max(0, len(m.quotes)-1)
	}
	return m.cursor
}

func (m *QuotesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case quoteSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = quoteModeList
		m.statusMsg = msg.msg
		return m, navigate(nav.ToQuote(msg.quote.ID, msg.quote.ClientID))

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Back) {
			m.mode = quoteModeList
			m.err = nil
			return m, nil
		}
	}

	cmd, submit := m.form.update(msg)
	if submit {
		return m, m.saveQuote()
	}
	return m, cmd
}

func (m *QuotesModel) View() string {
	if m.mode == quoteModeNew {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *QuotesModel) viewForm() string {
	s := titleStyle.Render("New Quote") + "\n"
	if m.client != nil {
		s += subtitleStyle.Render("  for "+m.client.DisplayName()) + "\n"
	}
	s += "\n"

	in := m.formInput()
	s += lipgloss.JoinHorizontal(lipgloss.Top, m.form.view(), "   ", totalsView(in.Totals(), false)) + "\n\n"
	s += errorLine(m.err)
	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")
	return s
}

func (m *QuotesModel) viewList() string {
	if m.loading {
		return "Loading quotes..."
	}

	s := titleStyle.Render("Quotes") + "\n"
	s += m.banner()
	s += m.controls.render() + "\n"
	s += countsLine(m.counts) + "\n\n"
	s += statusLine(m.statusMsg)
	s += errorLine(m.err)

	if len(m.quotes) == 0 {
		s += subtitleStyle.Render("  No quotes match. Press 'n' to create one.") + "\n"
	}
	for i, q := range m.quotes {
		s += m.renderQuote(i == m.cursor, q) + "\n"
	}

	if q := m.selected(); q != nil {
		s += "\n" + m.renderDetail(q) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: select  enter: focus  /: search  f: status filter  v: view  d: dates  n: new  s: status  a: archive/restore  i: invoice  g: client  c: clear")
	return s
}

func (m *QuotesModel) banner() string {
	if !m.nav.HasSelection() {
		return ""
	}
	var parts string
	if m.client != nil {
		parts = "Client: " + m.client.DisplayName()
	}
	if m.nav.SelectedQuoteID != "" {
		for _, q := range m.quotes {
			if q.ID == m.nav.SelectedQuoteID {
				if parts != "" {
					parts += "  "
				}
				parts += "Quote: " + q.Number
			}
		}
	}
	return "  " + bannerStyle.Render(parts+"  [c] clear") + "\n"
}

func (m *QuotesModel) renderQuote(selected bool, q *domain.Quote) string {
	line := fmt.Sprintf("%s%-6s %-20s %-32s %12s  %s %s",
		cursorPrefix(selected),
		q.Number,
		truncateStr(q.Customer, 20),
		truncateStr(q.Description, 32),
		formatMoney(q.Amount),
		renderStatus(string(q.Status), 9),
		q.CreatedDate.Format(dateLayout),
	)
	style := lipgloss.NewStyle()
	if q.Archived {
		style = style.Foreground(mutedColor)
		line += " (archived)"
	}
	if selected {
		style = style.Bold(true).Foreground(primaryColor)
	}
	return style.Render(line)
}

func (m *QuotesModel) renderDetail(q *domain.Quote) string {
	s := fmt.Sprintf("%s %s  %s %s\n",
		labelStyle.Render("Expires"), q.ExpiryDate.Format(dateLayout),
		labelStyle.Render("Subtotal"), formatMoney(q.Subtotal()))
	s += fmt.Sprintf("%s %s  %s %s\n",
		labelStyle.Render("Tax"), formatMoney(q.Tax()),
		labelStyle.Render("Total"), valueStyle.Render(formatMoney(q.Amount)))
	for _, it := range q.Items {
		s += subtitleStyle.Render(fmt.Sprintf("  %-36s %4d x %10s = %s",
			truncateStr(it.Description, 36), it.Quantity, formatMoney(it.UnitPrice), formatMoney(it.Total))) + "\n"
	}
	return boxStyle.Render(s)
}
