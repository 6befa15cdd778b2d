package tui

import (
	"context"
	"testing"
	"time"

	"github.com/andy/printdesk/internal/app"
	"github.com/andy/printdesk/internal/config"
	"github.com/andy/printdesk/internal/nav"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Log.Path = ""

	now := time.Date(2025, 7, 20, 12, 0, 0, 0, time.UTC)
	a, err := app.NewWithConfig(context.Background(), cfg, app.Options{
		Now: func() time.Time { return now },
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	m := New(a)
	m, _ = send(m, tea.WindowSizeMsg{Width: 220, Height: 80})
	return run(m, m.Init())
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// run executes cmd and feeds the result back until the chain settles or a
// form takes focus. Cursor blink commands are never run.
func run(m Model, cmd tea.Cmd) Model {
	for i := 0; cmd != nil && i < 10 && !m.activeScreenCapturingInput(); i++ {
		msg := cmd()
		if msg == nil {
			break
		}
		if _, ok := msg.(tea.BatchMsg); ok {
			break
		}
		m, cmd = send(m, msg)
	}
	return m
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, s string) Model {
	m, cmd := send(m, keyPress(s))
	return run(m, cmd)
}

func TestModel_StartsOnCalendar(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, nav.Initial(), m.Context())
	assert.Contains(t, m.View(), "July 2025")
}

func TestModel_TabKeysKeepSelection(t *testing.T) {
	m := newTestModel(t)

	m, cmd := send(m, NavigateMsg{To: nav.ToQuote("5", "5")})
	m = run(m, cmd)
	assert.Equal(t, nav.Context{ActiveTab: nav.TabQuotes, SelectedQuoteID: "5", SelectedClientID: "5"}, m.Context())
	assert.Contains(t, m.View(), "Quote: Q005")

	m = press(m, "3")
	assert.Equal(t, nav.TabInvoices, m.Context().ActiveTab)
	assert.Equal(t, "5", m.Context().SelectedQuoteID)

	m = press(m, "backspace")
	assert.Equal(t, nav.TabQuotes, m.Context().ActiveTab)

	m = press(m, "c")
	assert.Equal(t, nav.Context{ActiveTab: nav.TabQuotes}, m.Context())
}

func TestModel_InvoicedQuoteOpensExistingInvoice(t *testing.T) {
	m := newTestModel(t)

	m, cmd := send(m, NavigateMsg{To: nav.ToQuote("2", "1")})
	m = run(m, cmd)

	m = press(m, "i")
	assert.Equal(t, nav.Context{ActiveTab: nav.TabInvoices, SelectedInvoiceID: "1", SelectedClientID: "1"}, m.Context())
	assert.Contains(t, m.View(), "Invoice: INV001")
}

func TestModel_ApprovedQuoteOpensInvoiceDraft(t *testing.T) {
	m := newTestModel(t)

	m, cmd := send(m, NavigateMsg{To: nav.ToQuote("9", "3")})
	m = run(m, cmd)

	m = press(m, "i")
	assert.Equal(t, nav.Context{ActiveTab: nav.TabInvoices, SelectedQuoteID: "9"}, m.Context())
	require.True(t, m.activeScreenCapturingInput())
	assert.Contains(t, m.View(), "New Invoice")
	assert.Contains(t, m.View(), "12.11")

	// tab keys are typed into the form while it has focus
	m = press(m, "1")
	assert.Equal(t, nav.TabInvoices, m.Context().ActiveTab)
}

func TestModel_PendingQuoteCannotBeInvoiced(t *testing.T) {
	m := newTestModel(t)

	m, cmd := send(m, NavigateMsg{To: nav.ToQuote("1", "2")})
	m = run(m, cmd)

	m = press(m, "i")
	assert.Equal(t, nav.TabQuotes, m.Context().ActiveTab)
	assert.Contains(t, m.View(), "must be approved")
}

func TestModel_ClientDetailLinksToQuote(t *testing.T) {
	m := newTestModel(t)

	m, cmd := send(m, NavigateMsg{To: nav.ToClient("1")})
	m = run(m, cmd)
	view := m.View()
	assert.Contains(t, view, "John Smith")
	assert.Contains(t, view, "Recent quotes")

	m = press(m, "enter")
	ctx := m.Context()
	assert.Equal(t, nav.TabQuotes, ctx.ActiveTab)
	assert.Equal(t, "1", ctx.SelectedClientID)
	assert.NotEmpty(t, ctx.SelectedQuoteID)
}

func TestModel_NewQuoteForClientOpensForm(t *testing.T) {
	m := newTestModel(t)

	m, cmd := send(m, NavigateMsg{To: nav.ToClient("4")})
	m = run(m, cmd)

	m = press(m, "n")
	assert.Equal(t, nav.Context{ActiveTab: nav.TabQuotes, SelectedClientID: "4"}, m.Context())
	require.True(t, m.activeScreenCapturingInput())
	assert.Contains(t, m.View(), "New Quote")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := send(m, keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
