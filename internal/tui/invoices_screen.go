package tui

import (
	"context"
	"fmt"
	"strconv"

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

type invoiceMode int

const (
	invoiceModeList invoiceMode = iota
	invoiceModeNew
	invoiceModePayment
)

// invoice form field indices
const (
	invoiceFieldCustomer = iota
	invoiceFieldEmail
	invoiceFieldDescription
	invoiceFieldQuantity
	invoiceFieldPrice
	invoiceFieldDeposit
	invoiceFieldDueDays
)

// InvoicesModel lists invoices under the current navigation context
type InvoicesModel struct {
	app       *app.App
	nav       nav.Context
	controls  listControls
	invoices  []*domain.Invoice
	counts    filter.Counts
	client    *domain.Client
	cursor    int
	loading   bool
	err       error
	statusMsg string
	reminder  string

	mode     invoiceMode
	form     *form
	draft    *service.InvoiceInput // source quote and client for the open form
	openForm bool
}

type invoicesDataMsg struct {
	result *service.ListResult[*domain.Invoice]
	client *domain.Client
	err    error
}

type invoiceDraftMsg struct {
	draft *service.InvoiceInput
	err   error
}

type invoiceSavedMsg struct {
	invoice *domain.Invoice
	msg     string
	err     error
}

type reminderMsg struct {
	text string
	err  error
}

// NewInvoicesModel creates a new invoices screen model
func NewInvoicesModel(a *app.App, ctx nav.Context) tea.Model {
	statuses := make([]string, len(domain.InvoiceStatuses))
	for i, s := range domain.InvoiceStatuses {
		statuses[i] = string(s)
	}
	dates, ok := filter.ParseDateFilter(a.Config.Invoice.DefaultDateFilter)
	if !ok {
		dates = filter.Last30Days
	}
	return &InvoicesModel{
		app:      a,
		nav:      ctx,
		controls: newListControls(statuses, dates),
		loading:  true,
	}
}

// IsCapturingInput returns true when a form or the search box is active
func (m *InvoicesModel) IsCapturingInput() bool {
	return m.mode != invoiceModeList || m.controls.searching
}

func (m *InvoicesModel) Init() tea.Cmd {
	return m.loadInvoices()
}

func (m *InvoicesModel) loadInvoices() tea.Cmd {
	ctx := m.nav
	p := m.controls.params(ctx, ctx.SelectedInvoiceID)
	return func() tea.Msg {
		bg := context.Background()
		res, err := m.app.InvoiceService.ListInvoices(bg, p)
		if err != nil {
			return invoicesDataMsg{err: err}
		}
		msg := invoicesDataMsg{result: res}
		if ctx.SelectedClientID != "" {
			msg.client, _ = m.app.ClientService.GetClient(bg, ctx.SelectedClientID)
		}
		return msg
	}
}

// loadDraft prefills the new invoice form. A focused quote supplies the
// draft; otherwise the focused client supplies customer and email.
func (m *InvoicesModel) loadDraft() tea.Cmd {
	ctx := m.nav
	return func() tea.Msg {
		bg := context.Background()
		if ctx.SelectedQuoteID != "" {
			plan, err := m.app.QuoteService.PlanInvoice(bg, ctx.SelectedQuoteID)
			if err != nil {
				return invoiceDraftMsg{err: err}
			}
			if plan.Existing != nil {
				return NavigateMsg{To: nav.ToInvoice(plan.Existing.ID, plan.Existing.ClientID)}
			}
			return invoiceDraftMsg{draft: plan.Draft}
		}
		draft := &service.InvoiceInput{ClientID: ctx.SelectedClientID, Quantity: 1}
		if ctx.SelectedClientID != "" {
			if c, err := m.app.ClientService.GetClient(bg, ctx.SelectedClientID); err == nil {
				draft.Customer = c.DisplayName()
				draft.Email = c.Email
			}
		}
		return invoiceDraftMsg{draft: draft}
	}
}

func (m *InvoicesModel) selected() *domain.Invoice {
	if m.cursor < 0 || m.cursor >= len(m.invoices) {
		return nil
	}
	return m.invoices[m.cursor]
}

func (m *InvoicesModel) initForm(draft *service.InvoiceInput) {
	fields := []textinput.Model{
		newInput("Customer name", 100, 40),
		newInput("billing@example.com", 100, 40),
		newInput("What was delivered", 200, 50),
		newInput("1", 6, 10),
		newInput("0.00", 10, 12),
		newInput("0.00", 10, 12),
		newInput(strconv.Itoa(m.app.Config.Invoice.DefaultDueDays), 4, 6),
	}
	fields[invoiceFieldCustomer].SetValue(draft.Customer)
	fields[invoiceFieldEmail].SetValue(draft.Email)
	fields[invoiceFieldDescription].SetValue(draft.Description)
	if draft.Quantity > 0 {
		fields[invoiceFieldQuantity].SetValue(strconv.Itoa(draft.Quantity))
	}
	if draft.UnitPrice.IsPositive() {
		fields[invoiceFieldPrice].SetValue(draft.UnitPrice.StringFixed(2))
	}
	m.draft = draft
	m.form = newForm([]string{"Customer:", "Email:", "Description:", "Quantity:", "Unit price:", "Deposit:", "Due in days:"}, fields)
	m.mode = invoiceModeNew
}

func (m *InvoicesModel) formInput() service.InvoiceInput {
	dueDays, _ := strconv.Atoi(m.form.value(invoiceFieldDueDays))
	return service.InvoiceInput{
		ClientID:    m.draft.ClientID,
		QuoteID:     m.draft.QuoteID,
		Customer:    m.form.value(invoiceFieldCustomer),
		Email:       m.form.value(invoiceFieldEmail),
		Description: m.form.value(invoiceFieldDescription),
		Quantity:    domain.ParseQuantity(m.form.value(invoiceFieldQuantity)),
		UnitPrice:   domain.ParseAmount(m.form.value(invoiceFieldPrice)),
		Deposit:     domain.ParseAmount(m.form.value(invoiceFieldDeposit)),
		DueDays:     max(dueDays, 0),
	}
}

func (m *InvoicesModel) saveInvoice() tea.Cmd {
	in := m.formInput()
	return func() tea.Msg {
		inv, err := m.app.InvoiceService.CreateInvoice(context.Background(), in)
		if err != nil {
			return invoiceSavedMsg{err: err}
		}
		return invoiceSavedMsg{invoice: inv, msg: fmt.Sprintf("Created %s", inv.Number)}
	}
}

func (m *InvoicesModel) openPayment() {
	inv := m.selected()
	// the entered value replaces the paid amount
	in := newInput(inv.Amount.StringFixed(2), 12, 14)
	if inv.PaidAmount.IsPositive() {
		in.SetValue(inv.PaidAmount.StringFixed(2))
	} else {
		in.SetValue(inv.Amount.StringFixed(2))
	}
	m.form = newForm([]string{"Total paid to date:"}, []textinput.Model{in})
	m.mode = invoiceModePayment
}

func (m *InvoicesModel) savePayment() tea.Cmd {
	inv := m.selected()
	paid := domain.ParseAmount(m.form.value(0))
	return func() tea.Msg {
		updated, err := m.app.InvoiceService.RecordPayment(context.Background(), inv.ID, paid)
		if err != nil {
			return invoiceSavedMsg{err: err}
		}
		return invoiceSavedMsg{msg: fmt.Sprintf("Recorded %s on %s (%s)", formatMoney(updated.PaidAmount), updated.Number, updated.Status)}
	}
}

func (m *InvoicesModel) mutate(fn func(ctx context.Context, id string) (*domain.Invoice, error), verb string) tea.Cmd {
	inv := m.selected()
	if inv == nil {
		return nil
	}
	return func() tea.Msg {
		updated, err := fn(context.Background(), inv.ID)
		if err != nil {
			return invoiceSavedMsg{err: err}
		}
		return invoiceSavedMsg{msg: fmt.Sprintf("%s %s", verb, updated.Number)}
	}
}

func (m *InvoicesModel) draftReminder() tea.Cmd {
	inv := m.selected()
	if inv == nil {
		return nil
	}
	return func() tea.Msg {
		text, err := m.app.InvoiceService.Reminder(context.Background(), inv.ID)
		return reminderMsg{text: text, err: err}
	}
}

func (m *InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.nav = msg.Nav
		m.openForm = msg.OpenForm
		m.mode = invoiceModeList
		m.reminder = ""
		m.loading = true
		return m, m.loadInvoices()

	case invoiceDraftMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.initForm(msg.draft)
		return m, m.form.fields[0].Focus()
	}

	if m.mode != invoiceModeList {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case invoicesDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.invoices = msg.result.Items
			m.counts = msg.result.Counts
			m.client = msg.client
			m.cursor = m.cursorFor(m.nav.SelectedInvoiceID)
		}
		if m.openForm {
			m.openForm = false
			return m, m.loadDraft()
		}
		return m, nil

	case invoiceSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = msg.msg
		m.loading = true
		return m, m.loadInvoices()

	case reminderMsg:
		m.err = msg.err
		m.reminder = msg.text
		return m, nil

	case tea.KeyMsg:
		if m.controls.searching {
			cmd, changed := m.controls.updateSearch(msg)
			if changed {
				return m, tea.Batch(cmd, m.loadInvoices())
			}
			return m, cmd
		}
		if m.loading {
			return m, nil
		}
		m.statusMsg = ""
		m.reminder = ""
		m.err = nil

		if cmd, reload := m.controls.handleKey(msg); cmd != nil || reload {
			if reload {
				m.cursor = 0
				return m, m.loadInvoices()
			}
			return m, cmd
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.invoices)-1 {
				m.cursor++
			}
		case msg.String() == "A":
			m.controls.showAll = !m.controls.showAll
			m.cursor = 0
			return m, m.loadInvoices()
		case key.Matches(msg, DefaultKeyMap.New):
			return m, m.loadDraft()
		case msg.String() == "p":
			if inv := m.selected(); inv != nil {
				if !inv.CanRecordPayment() {
					m.err = service.ErrPaymentNotAllowed
					return m, nil
				}
				m.openPayment()
				return m, m.form.fields[0].Focus()
			}
		case key.Matches(msg, DefaultKeyMap.Status):
			if inv := m.selected(); inv != nil {
				next := cycle(domain.InvoiceStatuses, inv.Status)
				return m, m.mutate(func(ctx context.Context, id string) (*domain.Invoice, error) {
					return m.app.InvoiceService.UpdateStatus(ctx, id, next)
				}, "Updated")
			}
		case key.Matches(msg, DefaultKeyMap.Archive):
			if inv := m.selected(); inv != nil {
				if inv.Archived {
					return m, m.mutate(m.app.InvoiceService.Restore, "Restored")
				}
				return m, m.mutate(m.app.InvoiceService.Archive, "Archived")
			}
		case msg.String() == "r":
			return m, m.draftReminder()
		case msg.String() == "g":
			if inv := m.selected(); inv != nil && inv.ClientID != "" {
				return m, navigate(nav.ToClient(inv.ClientID))
			}
		case msg.String() == "o":
			if inv := m.selected(); inv != nil && inv.QuoteID != "" {
				return m, navigate(nav.ToQuote(inv.QuoteID, inv.ClientID))
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			if inv := m.selected(); inv != nil {
				return m, navigate(nav.ToInvoice(inv.ID, inv.ClientID))
			}
		case key.Matches(msg, DefaultKeyMap.Clear):
			if m.nav.HasSelection() {
				return m, navigate(nav.Clear())
			}
		}
	}

	return m, nil
}

func (m *InvoicesModel) cursorFor(id string) int {
	for i, inv := range m.invoices {
		if inv.ID == id {
			return i
		}
	}
	if m.cursor >= len(m.invoices) {
		return max(0, len(m.invoices)-1)
	}
	return m.cursor
}

func (m *InvoicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoiceSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = invoiceModeList
		m.statusMsg = msg.msg
		if msg.invoice != nil {
			return m, navigate(nav.ToInvoice(msg.invoice.ID, msg.invoice.ClientID))
		}
		m.loading = true
		return m, m.loadInvoices()

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Back) {
			m.mode = invoiceModeList
			m.err = nil
			return m, nil
		}
	}

	cmd, submit := m.form.update(msg)
	if !submit {
		return m, cmd
	}
	if m.mode == invoiceModePayment {
		return m, m.savePayment()
	}
	return m, m.saveInvoice()
}

func (m *InvoicesModel) View() string {
	switch m.mode {
	case invoiceModeNew:
		return m.viewForm()
	case invoiceModePayment:
		return m.viewPayment()
	}
	return m.viewList()
}

func (m *InvoicesModel) viewForm() string {
	s := titleStyle.Render("New Invoice") + "\n"
	if m.draft.QuoteID != "" {
		s += subtitleStyle.Render("  prefilled from the approved quote") + "\n"
	}
	s += "\n"

	in := m.formInput()
	s += lipgloss.JoinHorizontal(lipgloss.Top, m.form.view(), "   ", totalsView(in.Totals(), true)) + "\n\n"
	s += errorLine(m.err)
	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")
	return s
}

func (m *InvoicesModel) viewPayment() string {
	inv := m.selected()
	s := titleStyle.Render("Record Payment: "+inv.Number) + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Amount"), formatMoney(inv.Amount))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Paid so far"), formatMoney(inv.PaidAmount))
	s += fmt.Sprintf("  %s %s\n\n", labelStyle.Render("Balance"), valueStyle.Render(formatMoney(inv.Balance())))
	s += m.form.view() + "\n"
	s += errorLine(m.err)
	s += helpStyle.Render("  enter: save  esc: cancel")
	return s
}

func (m *InvoicesModel) viewList() string {
	if m.loading {
		return "Loading invoices..."
	}

	s := titleStyle.Render("Invoices") + "\n"
	s += m.banner()
	s += m.controls.render()
	if m.controls.showAll {
		s += subtitleStyle.Render("  (showing settled and stale)")
	}
	s += "\n" + countsLine(m.counts) + "\n\n"
	s += statusLine(m.statusMsg)
	s += errorLine(m.err)

	if len(m.invoices) == 0 {
		s += subtitleStyle.Render("  No invoices match. Press 'n' to create one.") + "\n"
	}
	for i, inv := range m.invoices {
		s += m.renderInvoice(i == m.cursor, inv) + "\n"
	}

	if m.reminder != "" {
		s += "\n" + boxStyle.Render("Reminder draft (not sent)\n\n"+m.reminder) + "\n"
	} else if inv := m.selected(); inv != nil {
		s += "\n" + m.renderDetail(inv) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: select  enter: focus  /: search  f: status filter  v: view  d: dates  A: show all  n: new  p: payment  s: status  a: archive/restore  r: reminder  g: client  o: quote  c: clear")
	return s
}

func (m *InvoicesModel) banner() string {
	if !m.nav.HasSelection() {
		return ""
	}
	var parts string
	if m.client != nil {
		parts = "Client: " + m.client.DisplayName()
	}
	if inv := m.selected(); inv != nil && inv.ID == m.nav.SelectedInvoiceID {
		if parts != "" {
			parts += "  "
		}
		parts += "Invoice: " + inv.Number
	}
	if parts == "" {
		return ""
	}
	return "  " + bannerStyle.Render(parts+"  [c] clear") + "\n"
}

func (m *InvoicesModel) renderInvoice(selected bool, inv *domain.Invoice) string {
	line := fmt.Sprintf("%s%-7s %-20s %12s %12s  %s due %s",
		cursorPrefix(selected),
		inv.Number,
		truncateStr(inv.Customer, 20),
		formatMoney(inv.Amount),
		formatMoney(inv.Balance()),
		renderStatus(string(inv.Status), 8),
		inv.DueDate.Format(dateLayout),
	)
	style := lipgloss.NewStyle()
	if inv.Archived {
		style = style.Foreground(mutedColor)
		line += " (archived)"
	}
	if selected {
		style = style.Bold(true).Foreground(primaryColor)
	}
	return style.Render(line)
}

func (m *InvoicesModel) renderDetail(inv *domain.Invoice) string {
	s := fmt.Sprintf("%s %s  %s %s\n",
		labelStyle.Render("Issued"), inv.IssueDate.Format(dateLayout),
		labelStyle.Render("Paid on"), formatDate(inv.PaymentDate))
	s += fmt.Sprintf("%s %s  %s %s (%s%%)\n",
		labelStyle.Render("Amount"), formatMoney(inv.Amount),
		labelStyle.Render("Paid"), formatMoney(inv.PaidAmount), inv.PaidPercent().StringFixed(0))
	s += fmt.Sprintf("%s %s\n", labelStyle.Render("Balance"), valueStyle.Render(formatMoney(inv.Balance())))
	for _, it := range inv.Items {
		s += subtitleStyle.Render(fmt.Sprintf("  %-36s %4d x %10s = %s",
			truncateStr(it.Description, 36), it.Quantity, formatMoney(it.UnitPrice), formatMoney(it.Total))) + "\n"
	}
	return boxStyle.Render(s)
}
