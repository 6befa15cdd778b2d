package tui

import (
	"fmt"

	"github.com/andy/printdesk/internal/app"
	"github.com/andy/printdesk/internal/config"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldName = iota
	settingsFieldEmail
	settingsFieldPhone
	settingsFieldAddress
)

type settingsSavedMsg struct {
	err error
}

// SettingsModel shows the configuration and edits the shop details
type SettingsModel struct {
	app       *app.App
	mode      settingsMode
	form      *form
	err       error
	statusMsg string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) initForm() {
	shop := m.app.Config.Shop
	fields := []textinput.Model{
		newInput("Print Shop", 100, 40),
		newInput("hello@printshop.com", 100, 40),
		newInput("(555) 123-4567", 30, 20),
		newInput("123 Main St, Springfield", 200, 50),
	}
	fields[settingsFieldName].SetValue(shop.Name)
	fields[settingsFieldEmail].SetValue(shop.Email)
	fields[settingsFieldPhone].SetValue(shop.Phone)
	fields[settingsFieldAddress].SetValue(shop.Address)
	m.form = newForm([]string{"Shop name:", "Email:", "Phone:", "Address:"}, fields)
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	shop := config.ShopConfig{
		Name:    m.form.value(settingsFieldName),
		Email:   m.form.value(settingsFieldEmail),
		Phone:   m.form.value(settingsFieldPhone),
		Address: m.form.value(settingsFieldAddress),
	}
	return func() tea.Msg {
		if shop.Name == "" {
			return settingsSavedMsg{err: fmt.Errorf("shop name is required")}
		}

		prev := m.app.Config.Shop
		m.app.Config.Shop = shop
		if err := m.app.Config.Validate(); err != nil {
			m.app.Config.Shop = prev
			return settingsSavedMsg{err: err}
		}
		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}
		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
		if key.Matches(msg, DefaultKeyMap.Edit) || key.Matches(msg, DefaultKeyMap.Select) {
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.form.fields[0].Focus()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.statusMsg = "Settings saved"
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Back) {
			m.mode = settingsModeView
			m.err = nil
			return m, nil
		}
	}

	cmd, submit := m.form.update(msg)
	if submit {
		return m, m.saveSettings()
	}
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"
	s += statusLine(m.statusMsg)

	cfg := m.app.Config

	ls := lipgloss.NewStyle().Bold(true).Width(22)
	vs := lipgloss.NewStyle().Foreground(primaryColor)
	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s\n", ls.Render(label), vs.Render(value))
	}

	s += subtitleStyle.Render("  Shop") + "\n\n"
	s += row("Name:", cfg.Shop.Name)
	s += row("Email:", cfg.Shop.Email)
	s += row("Phone:", cfg.Shop.Phone)
	s += row("Address:", cfg.Shop.Address)

	s += "\n" + subtitleStyle.Render("  Documents") + "\n\n"
	s += row("Quote prefix:", cfg.Numbering.QuotePrefix)
	s += row("Invoice prefix:", cfg.Numbering.InvoicePrefix)
	s += row("Quotes valid for:", fmt.Sprintf("%d days", cfg.Quote.ValidDays))
	s += row("Invoices due in:", fmt.Sprintf("%d days", cfg.Invoice.DefaultDueDays))
	s += row("Invoice list dates:", cfg.Invoice.DefaultDateFilter)

	s += "\n" + subtitleStyle.Render("  Set numbering and defaults in the config file or PRINTDESK_* variables.") + "\n"
	s += "\n" + helpStyle.Render("  e/enter: edit shop details  ,: close")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Shop Details") + "\n\n"
	s += m.form.view() + "\n"
	s += errorLine(m.err)
	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
