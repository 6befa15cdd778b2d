package tui

import (
	"github.com/andy/printdesk/internal/nav"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateMsg asks the root model to apply a navigation transition.
// OpenForm asks the destination screen to open its new-record form.
type NavigateMsg struct {
	To       nav.Transition
	OpenForm bool
}

// RefreshDataMsg requests data refresh under the current navigation context
type RefreshDataMsg struct {
	Nav      nav.Context
	OpenForm bool
}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

func navigate(to nav.Transition) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: to} }
}
