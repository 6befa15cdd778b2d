package tui

import (
	"fmt"
	"strings"

	"github.com/andy/printdesk/internal/app"
	"github.com/andy/printdesk/internal/nav"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the root Bubble Tea model. The active tab and any deep-linked
// records come from the navigation machine.
type Model struct {
	app    *app.App
	nav    *nav.Machine
	width  int
	height int

	// Screen models (lazy initialized)
	screens map[nav.Tab]tea.Model

	// Settings overlays the active tab while open
	settings     tea.Model
	showSettings bool

	// Error state
	err error
}

// New creates a new root model
func New(a *app.App) Model {
	m := Model{
		app:     a,
		nav:     nav.NewMachine(),
		screens: make(map[nav.Tab]tea.Model),
	}
	m.screens[nav.TabCalendar] = newScreen(a, nav.TabCalendar, m.nav.Current())
	return m
}

func newScreen(a *app.App, tab nav.Tab, ctx nav.Context) tea.Model {
	switch tab {
	case nav.TabCalendar:
		return NewCalendarModel(a)
	case nav.TabQuotes:
		return NewQuotesModel(a, ctx)
	case nav.TabInvoices:
		return NewInvoicesModel(a, ctx)
	case nav.TabClients:
		return NewClientsModel(a, ctx)
	case nav.TabFinancials:
		return NewFinancialsModel(a)
	case nav.TabCommand:
		return NewCommandModel(a)
	}
	return nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.screens[nav.TabCalendar].Init()
}

// Context returns the current navigation context
func (m Model) Context() nav.Context {
	return m.nav.Current()
}

// initScreen lazy-initializes the active screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data
// under the new context.
func (m *Model) initScreen(openForm bool) tea.Cmd {
	ctx := m.nav.Current()
	if _, ok := m.screens[ctx.ActiveTab]; !ok {
		m.screens[ctx.ActiveTab] = newScreen(m.app, ctx.ActiveTab, ctx)
		if !openForm {
			return m.screens[ctx.ActiveTab].Init()
		}
	}
	return func() tea.Msg { return RefreshDataMsg{Nav: ctx, OpenForm: openForm} }
}

func (m *Model) apply(t nav.Transition, openForm bool) tea.Cmd {
	m.showSettings = false
	m.err = nil
	m.nav.Apply(t)
	return m.initScreen(openForm)
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

func (m *Model) activeScreen() tea.Model {
	if m.showSettings {
		return m.settings
	}
	return m.screens[m.nav.Current().ActiveTab]
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.activeScreen().(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			if cmd, ok := m.handleGlobalKey(msg); ok {
				return m, cmd
			}
		}

	case NavigateMsg:
		return m, m.apply(msg.To, msg.OpenForm)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	if m.showSettings {
		m.settings, cmd = m.settings.Update(msg)
		return m, cmd
	}
	tab := m.nav.Current().ActiveTab
	if screen, ok := m.screens[tab]; ok {
		m.screens[tab], cmd = screen.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	tabKeys := []key.Binding{
		DefaultKeyMap.Calendar,
		DefaultKeyMap.Quotes,
		DefaultKeyMap.Invoices,
		DefaultKeyMap.Clients,
		DefaultKeyMap.Financials,
		DefaultKeyMap.Command,
	}
	for i, b := range tabKeys {
		if key.Matches(msg, b) {
			return m.apply(nav.ToTab(nav.Tabs[i]), false), true
		}
	}

	switch {
	case key.Matches(msg, DefaultKeyMap.Quit):
		return tea.Quit, true

	case key.Matches(msg, DefaultKeyMap.NextTab):
		return m.apply(nav.ToTab(m.stepTab(1)), false), true

	case key.Matches(msg, DefaultKeyMap.PrevTab):
		return m.apply(nav.ToTab(m.stepTab(-1)), false), true

	case key.Matches(msg, DefaultKeyMap.NavBack):
		if _, ok := m.nav.Back(); ok {
			m.showSettings = false
			return m.initScreen(false), true
		}
		return nil, true

	case key.Matches(msg, DefaultKeyMap.Settings):
		m.showSettings = !m.showSettings
		if m.showSettings && m.settings == nil {
			m.settings = NewSettingsModel(m.app)
			return m.settings.Init(), true
		}
		return nil, true
	}
	return nil, false
}

func (m *Model) stepTab(delta int) nav.Tab {
	cur := m.nav.Current().ActiveTab
	for i, t := range nav.Tabs {
		if t == cur {
			return nav.Tabs[(i+delta+len(nav.Tabs))%len(nav.Tabs)]
		}
	}
	return nav.TabCalendar
}

func (m Model) renderTabs() string {
	active := m.nav.Current().ActiveTab
	parts := make([]string, 0, len(nav.Tabs))
	for i, t := range nav.Tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Title())
		if t == active && !m.showSettings {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Header
	header := headerStyle.Render(m.app.Config.Shop.Name) + "  " + m.renderTabs()

	// Footer with navigation keys
	footer := footerStyle.Render("[1-6/tab] Tabs  [backspace] Back  [,] Settings  [Q]uit")

	content := "Loading..."
	if screen := m.activeScreen(); screen != nil {
		content = screen.View()
	}

	// Error display
	errorDisplay := ""
	if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
