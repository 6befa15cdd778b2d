package tui

import (
	"fmt"

	"github.com/andy/printdesk/internal/filter"
	"github.com/andy/printdesk/internal/nav"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// listControls holds the search box and filter toggles shared by the
// quotes and invoices lists
type listControls struct {
	search    textinput.Model
	searching bool
	statuses  []string
	status    string
	view      filter.ViewMode
	dates     filter.DateFilter
	showAll   bool
}

func newListControls(statuses []string, dates filter.DateFilter) listControls {
	return listControls{
		search:   newInput("customer, number or description", 60, 40),
		statuses: append([]string{filter.StatusAll}, statuses...),
		status:   filter.StatusAll,
		view:     filter.ViewActive,
		dates:    dates,
	}
}

// params builds filter params for the navigation context. The focused
// quote or invoice is pinned and the list is scoped to the focused client.
func (c *listControls) params(ctx nav.Context, selectedID string) filter.Params {
	return filter.Params{
		SearchText:       c.search.Value(),
		Status:           c.status,
		SelectedID:       selectedID,
		SelectedClientID: ctx.SelectedClientID,
		View:             c.view,
		Dates:            c.dates,
		ShowAll:          c.showAll,
	}
}

// updateSearch feeds a key to the search box. It reports whether the
// search text changed.
func (c *listControls) updateSearch(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "enter", "esc":
		c.searching = false
		c.search.Blur()
		if msg.String() == "esc" {
			c.search.SetValue("")
			return nil, true
		}
		return nil, false
	}
	before := c.search.Value()
	var cmd tea.Cmd
	c.search, cmd = c.search.Update(msg)
	return cmd, c.search.Value() != before
}

// handleKey applies filter toggles. It reports whether the key was used
// and the list needs reloading.
func (c *listControls) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Search):
		c.searching = true
		return c.search.Focus(), false
	case key.Matches(msg, DefaultKeyMap.Filter):
		c.status = cycle(c.statuses, c.status)
		return nil, true
	case key.Matches(msg, DefaultKeyMap.View):
		c.view = c.view.Next()
		return nil, true
	case key.Matches(msg, DefaultKeyMap.Dates):
		c.dates = c.dates.Next()
		return nil, true
	}
	return nil, false
}

func (c *listControls) render() string {
	search := c.search.Value()
	if c.searching {
		search = c.search.View()
	} else if search == "" {
		search = "-"
	}
	return subtitleStyle.Render(fmt.Sprintf("  Search: %s  Status: %s  View: %s  Dates: %s",
		search, c.status, c.view, c.dates.Label()))
}

func countsLine(counts filter.Counts) string {
	line := fmt.Sprintf("  Showing %d of %d  (active %d, archived %d)", counts.Visible, counts.InView, counts.Active, counts.Archived)
	if counts.Hidden > 0 {
		line += fmt.Sprintf("  %d hidden by date or age", counts.Hidden)
	}
	return subtitleStyle.Render(line)
}
