package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/andy/printdesk/internal/domain"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func formatMoney(amount decimal.Decimal) string {
	return domain.FormatMoney(amount)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// cycle returns the value after cur in values, wrapping around
func cycle[T comparable](values []T, cur T) T {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func newInput(placeholder string, limit, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width
	return ti
}

// form is a vertical stack of labelled text inputs
type form struct {
	labels []string
	fields []textinput.Model
	focus  int
}

func newForm(labels []string, fields []textinput.Model) *form {
	f := &form{labels: labels, fields: fields}
	f.fields[0].Focus()
	return f
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].Value())
}

func (f *form) last() bool {
	return f.focus == len(f.fields)-1
}

func (f *form) move(delta int) tea.Cmd {
	f.fields[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].Focus()
}

// update handles field navigation and typing. It reports submit when the
// user saves or presses enter on the last field.
func (f *form) update(msg tea.Msg) (cmd tea.Cmd, submit bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			return f.move(1), false
		case "shift+tab", "up":
			return f.move(-1), false
		case "ctrl+s":
			return nil, true
		case "enter":
			if f.last() {
				return nil, true
			}
			return f.move(1), false
		}
	}
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return cmd, false
}

func (f *form) view() string {
	var s string
	for i, label := range f.labels {
		indicator := "  "
		ls := subtitleStyle
		if i == f.focus {
			indicator = "> "
			ls = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n", indicator, ls.Render(label), f.fields[i].View())
	}
	return s
}

// totalsView renders the live totals panel shown beside pricing forms
func totalsView(t domain.Totals, withDeposit bool) string {
	t = t.Rounded()
	s := fmt.Sprintf("%s %s\n", labelStyle.Render("Subtotal"), formatMoney(t.Subtotal))
	s += fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("Tax (%s%%)", domain.TaxRate.Shift(2).String())), formatMoney(t.Tax))
	s += fmt.Sprintf("%s %s", labelStyle.Render("Total"), valueStyle.Render(formatMoney(t.Total)))
	if withDeposit {
		s += fmt.Sprintf("\n%s %s", labelStyle.Render("Balance due"), valueStyle.Render(formatMoney(t.BalanceDue)))
	}
	return boxStyle.Render(s)
}

func errorLine(err error) string {
	if err == nil {
		return ""
	}
	return errStyle.Render(fmt.Sprintf("  Error: %v", err)) + "\n\n"
}

func statusLine(msg string) string {
	if msg == "" {
		return ""
	}
	return statusStyle.Render("  "+msg) + "\n\n"
}

func cursorPrefix(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}
