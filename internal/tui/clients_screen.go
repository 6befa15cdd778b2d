package tui

import (
	"context"
	"fmt"
	"strings"

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

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeDetail
	clientModeNew
	clientModeEdit
)

// form field indices
const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldCompany
	fieldAddress
	fieldCity
	fieldState
	fieldZip
	fieldStatus
	fieldNotes
)

var clientFormLabels = []string{"Name:", "Email:", "Phone:", "Company:", "Address:", "City:", "State:", "Zip code:", "Status (active, inactive, prospect):", "Notes:"}

// ClientsModel displays the client directory and a client's recent activity
type ClientsModel struct {
	app       *app.App
	nav       nav.Context
	clients   []*domain.Client
	activity  *service.ClientActivity
	cursor    int
	docCursor int // position in the detail's recent quotes then invoices
	loading   bool
	err       error
	statusMsg string

	search    textinput.Model
	searching bool
	status    string

	// Form state
	mode      clientMode
	form      *form
	editingID string
}

type clientsDataMsg struct {
	clients  []*domain.Client
	activity *service.ClientActivity
	err      error
}

type clientSavedMsg struct {
	client *domain.Client
	err    error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App, ctx nav.Context) tea.Model {
	return &ClientsModel{
		app:     a,
		nav:     ctx,
		search:  newInput("name, email, company or phone", 60, 40),
		status:  filter.StatusAll,
		loading: true,
	}
}

// IsCapturingInput returns true when the form or search box is active
func (m *ClientsModel) IsCapturingInput() bool {
	return m.mode == clientModeNew || m.mode == clientModeEdit || m.searching
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m *ClientsModel) loadClients() tea.Cmd {
	selected := m.nav.SelectedClientID
	p := filter.ClientParams{SearchText: m.search.Value(), Status: m.status}
	return func() tea.Msg {
		ctx := context.Background()

		clients, err := m.app.ClientService.ListClients(ctx, p)
		if err != nil {
			return clientsDataMsg{err: err}
		}
		msg := clientsDataMsg{clients: clients}
		if selected != "" {
			msg.activity, msg.err = m.app.ClientService.GetActivity(ctx, selected)
		}
		return msg
	}
}

func (m *ClientsModel) selected() *domain.Client {
	if m.cursor < 0 || m.cursor >= len(m.clients) {
		return nil
	}
	return m.clients[m.cursor]
}

func (m *ClientsModel) initForm(editing *domain.Client) {
	fields := []textinput.Model{
		newInput("Client name", 100, 40),
		newInput("email@example.com", 100, 40),
		newInput("(555) 123-4567", 30, 20),
		newInput("Company", 100, 40),
		newInput("Street", 100, 40),
		newInput("City", 60, 24),
		newInput("ST", 20, 8),
		newInput("00000", 12, 10),
		newInput(string(domain.ClientStatusProspect), 10, 12),
		newInput("Optional notes", 200, 50),
	}

	// Pre-fill for editing
	if editing != nil {
		values := []string{editing.Name, editing.Email, editing.Phone, editing.Company, editing.Address,
			editing.City, editing.State, editing.ZipCode, string(editing.Status), editing.Notes}
		for i, v := range values {
			fields[i].SetValue(v)
		}
		m.editingID = editing.ID
		m.mode = clientModeEdit
	} else {
		m.editingID = ""
		m.mode = clientModeNew
	}

	m.form = newForm(clientFormLabels, fields)
}

func (m *ClientsModel) saveClient() tea.Cmd {
	in := service.ClientInput{
		Name:    m.form.value(fieldName),
		Email:   m.form.value(fieldEmail),
		Phone:   m.form.value(fieldPhone),
		Company: m.form.value(fieldCompany),
		Address: m.form.value(fieldAddress),
		City:    m.form.value(fieldCity),
		State:   m.form.value(fieldState),
		ZipCode: m.form.value(fieldZip),
		Notes:   m.form.value(fieldNotes),
	}
	statusText := strings.ToLower(m.form.value(fieldStatus))
	editingID := m.editingID

	return func() tea.Msg {
		ctx := context.Background()

		if in.Name == "" {
			return clientSavedMsg{err: fmt.Errorf("name is required")}
		}
		if statusText != "" {
			status, err := domain.ParseClientStatus(statusText)
			if err != nil {
				return clientSavedMsg{err: err}
			}
			in.Status = status
		}

		if editingID != "" {
			client, err := m.app.ClientService.UpdateClient(ctx, editingID, in)
			return clientSavedMsg{client: client, err: err}
		}
		client, err := m.app.ClientService.CreateClient(ctx, in)
		return clientSavedMsg{client: client, err: err}
	}
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if rm, ok := msg.(RefreshDataMsg); ok {
		m.nav = rm.Nav
		m.mode = clientModeList
		m.loading = true
		if rm.OpenForm {
			m.initForm(nil)
			return m, tea.Batch(m.loadClients(), m.form.fields[0].Focus())
		}
		return m, m.loadClients()
	}

	// Handle form mode
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case clientsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.clients = msg.clients
			m.activity = msg.activity
			m.docCursor = 0
			if m.activity != nil {
				m.mode = clientModeDetail
			}
			if m.cursor >= len(m.clients) {
				m.cursor = max(0, len(m.clients)-1)
			}
		}
		return m, nil

	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.client.Name)
		m.loading = true
		return m, m.loadClients()

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.loading {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		if m.mode == clientModeDetail {
			return m.updateDetail(msg)
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Search):
			m.searching = true
			return m, m.search.Focus()
		case key.Matches(msg, DefaultKeyMap.Filter):
			m.status = cycle(clientStatusFilters, m.status)
			m.cursor = 0
			m.loading = true
			return m, m.loadClients()
		case key.Matches(msg, DefaultKeyMap.New):
			m.initForm(nil)
			return m, m.form.fields[0].Focus()
		case key.Matches(msg, DefaultKeyMap.Edit):
			if c := m.selected(); c != nil {
				m.initForm(c)
				return m, m.form.fields[0].Focus()
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			if c := m.selected(); c != nil {
				return m, navigate(nav.ToClient(c.ID))
			}
		}
	}

	return m, nil
}

var clientStatusFilters = []string{
	filter.StatusAll,
	string(domain.ClientStatusActive),
	string(domain.ClientStatusInactive),
	string(domain.ClientStatusProspect),
}

func (m *ClientsModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		if msg.String() == "esc" {
			m.search.SetValue("")
		}
		m.cursor = 0
		return m, m.loadClients()
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, tea.Batch(cmd, m.loadClients())
}

// updateDetail handles keys while a client is focused
func (m *ClientsModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	act := m.activity
	docs := len(act.RecentQuotes) + len(act.RecentInvoices)

	switch {
	case key.Matches(msg, DefaultKeyMap.Back), key.Matches(msg, DefaultKeyMap.Clear):
		return m, navigate(nav.Clear())
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.docCursor > 0 {
			m.docCursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.docCursor < docs-1 {
			m.docCursor++
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		if m.docCursor < len(act.RecentQuotes) {
			q := act.RecentQuotes[m.docCursor]
			return m, navigate(nav.ToQuote(q.ID, act.Client.ID))
		}
		if i := m.docCursor - len(act.RecentQuotes); i < len(act.RecentInvoices) {
			inv := act.RecentInvoices[i]
			return m, navigate(nav.ToInvoice(inv.ID, act.Client.ID))
		}
	case key.Matches(msg, DefaultKeyMap.New):
		id := act.Client.ID
		return m, func() tea.Msg { return NavigateMsg{To: nav.ToNewQuoteForClient(id), OpenForm: true} }
	case key.Matches(msg, DefaultKeyMap.Edit):
		m.initForm(act.Client)
		return m, m.form.fields[0].Focus()
	}
	return m, nil
}

func (m *ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientsDataMsg:
		// data requested alongside a form opened by navigation
		m.loading = false
		if msg.err == nil {
			m.clients = msg.clients
			m.activity = msg.activity
		}
		return m, nil

	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.client.Name)
		return m, navigate(nav.ToClient(msg.client.ID))

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Back) {
			// Cancel form
			m.mode = clientModeList
			if m.activity != nil {
				m.mode = clientModeDetail
			}
			m.err = nil
			return m, nil
		}
	}

	cmd, submit := m.form.update(msg)
	if submit {
		return m, m.saveClient()
	}
	return m, cmd
}

func (m *ClientsModel) View() string {
	switch m.mode {
	case clientModeNew, clientModeEdit:
		return m.viewForm()
	case clientModeDetail:
		return m.viewDetail()
	}
	return m.viewList()
}

func (m *ClientsModel) viewForm() string {
	var s string

	if m.mode == clientModeNew {
		s += titleStyle.Render("New Client") + "\n\n"
	} else {
		s += titleStyle.Render("Edit Client") + "\n\n"
	}

	s += m.form.view() + "\n"
	s += errorLine(m.err)
	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}

func (m *ClientsModel) viewList() string {
	if m.loading {
		return "Loading clients..."
	}

	var s string

	s += titleStyle.Render("Clients") + "\n"
	search := m.search.Value()
	if m.searching {
		search = m.search.View()
	} else if search == "" {
		search = "-"
	}
	s += subtitleStyle.Render(fmt.Sprintf("  Search: %s  Status: %s", search, m.status)) + "\n\n"

	s += statusLine(m.statusMsg)
	s += errorLine(m.err)

	if len(m.clients) == 0 {
		s += subtitleStyle.Render("  No clients match. Press 'n' to add one.") + "\n"
	}

	for i, client := range m.clients {
		s += m.renderClient(i == m.cursor, client) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: open  /: search  f: status filter  n: new  e: edit")

	return s
}

func (m *ClientsModel) renderClient(selected bool, client *domain.Client) string {
	line1 := fmt.Sprintf("%s%s", cursorPrefix(selected), client.Name)
	if client.Company != "" {
		line1 += "  " + subtitleStyle.Render(client.Company)
	}
	line2 := fmt.Sprintf("    %s  |  %s  |  %d orders  %s",
		renderStatus(string(client.Status), 8), client.Email, client.TotalOrders, formatMoney(client.TotalSpent))

	nameStyle := lipgloss.NewStyle()
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}
	return nameStyle.Render(line1) + "\n" + subtitleStyle.Render(line2)
}

func (m *ClientsModel) viewDetail() string {
	act := m.activity
	c := act.Client

	s := titleStyle.Render(c.DisplayName()) + "  " + renderStatus(string(c.Status), 0) + "\n\n"
	s += statusLine(m.statusMsg)
	s += errorLine(m.err)

	rows := [][2]string{
		{"Contact", c.Name},
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Address", strings.Trim(fmt.Sprintf("%s, %s, %s %s", c.Address, c.City, c.State, c.ZipCode), ", ")},
		{"Orders", fmt.Sprintf("%d", c.TotalOrders)},
		{"Total spent", formatMoney(c.TotalSpent)},
		{"Average order", formatMoney(act.AverageOrder)},
		{"Last order", formatDate(c.LastOrderDate)},
	}
	if c.Notes != "" {
		rows = append(rows, [2]string{"Notes", c.Notes})
	}
	for _, r := range rows {
		s += fmt.Sprintf("  %s %s\n", labelStyle.Render(r[0]), r[1])
	}

	i := 0
	s += "\n" + lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("  Recent quotes (%d)", act.QuoteCount)) + "\n"
	for _, q := range act.RecentQuotes {
		s += fmt.Sprintf("%s%-6s %-36s %12s  %s\n", cursorPrefix(i == m.docCursor),
			q.Number, truncateStr(q.Description, 36), formatMoney(q.Amount), renderStatus(string(q.Status), 0))
		i++
	}
	s += "\n" + lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("  Recent invoices (%d)", act.InvoiceCount)) + "\n"
	for _, inv := range act.RecentInvoices {
		s += fmt.Sprintf("%s%-6s %-36s %12s  %s\n", cursorPrefix(i == m.docCursor),
			inv.Number, truncateStr(inv.Description, 36), formatMoney(inv.Amount), renderStatus(string(inv.Status), 0))
		i++
	}

	s += "\n" + helpStyle.Render("  j/k: select  enter: open  n: new quote  e: edit  esc/c: back to list")
	return s
}
