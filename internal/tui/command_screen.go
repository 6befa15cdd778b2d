package tui

import (
	"context"
	"fmt"

	"github.com/andy/printdesk/internal/app"
	"github.com/andy/printdesk/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// CommandModel is the free-text command center. Commands are recorded
// and acknowledged; nothing is dispatched.
type CommandModel struct {
	app     *app.App
	input   textinput.Model
	typing  bool
	cursor  int // over examples then quick actions
	history []service.CommandEntry
	err     error
}

type commandSentMsg struct {
	err error
}

// NewCommandModel creates a new command center model
func NewCommandModel(a *app.App) tea.Model {
	return &CommandModel{
		app:   a,
		input: newInput("Type a command, e.g. "+service.ExampleCommands[0], 200, 70),
	}
}

// IsCapturingInput returns true while the command box has focus
func (m *CommandModel) IsCapturingInput() bool {
	return m.typing
}

func (m *CommandModel) Init() tea.Cmd {
	return func() tea.Msg { return RefreshDataMsg{} }
}

func (m *CommandModel) suggestions() []string {
	return append(append([]string{}, service.ExampleCommands...), service.QuickActions...)
}

func (m *CommandModel) submit() tea.Cmd {
	text := m.input.Value()
	return func() tea.Msg {
		_, err := m.app.CommandService.Submit(context.Background(), text)
		return commandSentMsg{err: err}
	}
}

func (m *CommandModel) focus(text string) tea.Cmd {
	m.typing = true
	m.input.SetValue(text)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *CommandModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.history = m.app.CommandService.History(context.Background())
		return m, nil

	case commandSentMsg:
		m.err = msg.err
		if msg.err == nil {
			m.input.SetValue("")
			m.history = m.app.CommandService.History(context.Background())
		}
		return m, nil

	case tea.KeyMsg:
		if m.typing {
			switch {
			case key.Matches(msg, DefaultKeyMap.Back):
				m.typing = false
				m.input.Blur()
				return m, nil
			case key.Matches(msg, DefaultKeyMap.Select):
				return m, m.submit()
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		m.err = nil
		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.suggestions())-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			return m, m.focus(m.suggestions()[m.cursor])
		case msg.String() == "i":
			return m, m.focus(m.input.Value())
		}
	}
	return m, nil
}

func (m *CommandModel) View() string {
	s := titleStyle.Render("Command Center") + "\n"
	s += subtitleStyle.Render("  Describe what you need in plain words.") + "\n\n"

	s += "  " + m.input.View() + "\n\n"
	s += errorLine(m.err)

	i := 0
	s += subtitleStyle.Render("  Examples") + "\n"
	for _, ex := range service.ExampleCommands {
		s += m.renderSuggestion(i, ex)
		i++
	}
	s += "\n" + subtitleStyle.Render("  Quick actions") + "\n"
	for _, qa := range service.QuickActions {
		s += m.renderSuggestion(i, qa)
		i++
	}

	if len(m.history) > 0 {
		s += "\n" + titleStyle.Render("History") + "\n"
		for _, h := range m.history {
			s += fmt.Sprintf("  %s  %s\n", subtitleStyle.Render(h.SentAt.Format("15:04")), h.Text)
			s += subtitleStyle.Render("         "+h.Reply) + "\n"
		}
	}

	if m.typing {
		s += "\n" + helpStyle.Render("  enter: send  esc: stop typing")
	} else {
		s += "\n" + helpStyle.Render("  j/k: choose  enter: use suggestion  i: type")
	}
	return s
}

func (m *CommandModel) renderSuggestion(i int, text string) string {
	if !m.typing && i == m.cursor {
		return selectedStyle.Render(cursorPrefix(true)+text) + "\n"
	}
	return cursorPrefix(false) + text + "\n"
}
