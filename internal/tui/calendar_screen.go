package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andy/printdesk/internal/app"
	"github.com/andy/printdesk/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type calendarMode int

const (
	calendarModeList calendarMode = iota
	calendarModeMove
	calendarModeSize
)

// CalendarModel shows one month of production jobs
type CalendarModel struct {
	app       *app.App
	month     time.Time // first day of the shown month, UTC
	jobs      []*domain.Job
	cursor    int
	loading   bool
	err       error
	statusMsg string

	mode calendarMode
	form *form
}

type jobsDataMsg struct {
	jobs []*domain.Job
	err  error
}

type jobSavedMsg struct {
	job *domain.Job
	msg string
	err error
}

// NewCalendarModel creates a calendar opened on the current month
func NewCalendarModel(a *app.App) tea.Model {
	now := a.Now().UTC()
	return &CalendarModel{
		app:     a,
		month:   time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		loading: true,
	}
}

// IsCapturingInput returns true when a form is active
func (m *CalendarModel) IsCapturingInput() bool {
	return m.mode != calendarModeList
}

func (m *CalendarModel) Init() tea.Cmd {
	return m.loadJobs()
}

func (m *CalendarModel) loadJobs() tea.Cmd {
	month := m.month
	return func() tea.Msg {
		jobs, err := m.app.JobService.ListMonth(context.Background(), month.Year(), month.Month())
		return jobsDataMsg{jobs: jobs, err: err}
	}
}

func (m *CalendarModel) selected() *domain.Job {
	if m.cursor < 0 || m.cursor >= len(m.jobs) {
		return nil
	}
	return m.jobs[m.cursor]
}

func (m *CalendarModel) saveJob(fn func(ctx context.Context, id string) (*domain.Job, error), verb string) tea.Cmd {
	job := m.selected()
	if job == nil {
		return nil
	}
	return func() tea.Msg {
		updated, err := fn(context.Background(), job.ID)
		if err != nil {
			return jobSavedMsg{err: err}
		}
		return jobSavedMsg{job: updated, msg: fmt.Sprintf("%s %s", verb, updated.Title)}
	}
}

func (m *CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode != calendarModeList {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadJobs()

	case jobsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.jobs = msg.jobs
			if m.cursor >= len(m.jobs) {
				m.cursor = max(0, len(m.jobs)-1)
			}
		}
		return m, nil

	case jobSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = msg.msg
		m.loading = true
		return m, m.loadJobs()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.jobs)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Left):
			m.month = m.month.AddDate(0, -1, 0)
			m.cursor = 0
			m.loading = true
			return m, m.loadJobs()
		case key.Matches(msg, DefaultKeyMap.Right):
			m.month = m.month.AddDate(0, 1, 0)
			m.cursor = 0
			m.loading = true
			return m, m.loadJobs()
		case key.Matches(msg, DefaultKeyMap.Status):
			if job := m.selected(); job != nil {
				next := cycle(domain.JobStatuses, job.Status)
				return m, m.saveJob(func(ctx context.Context, id string) (*domain.Job, error) {
					return m.app.JobService.UpdateStatus(ctx, id, next)
				}, "Updated")
			}
		case msg.String() == "m":
			if job := m.selected(); job != nil {
				if !domain.CanEditDate(job.Status) {
					m.err = domain.ErrDateLocked
					return m, nil
				}
				m.mode = calendarModeMove
				in := newInput(dateLayout, 10, 12)
				in.SetValue(job.Date.Format(dateLayout))
				m.form = newForm([]string{"Date (YYYY-MM-DD):"}, []textinput.Model{in})
				return m, m.form.fields[0].Focus()
			}
		case msg.String() == "z":
			if m.selected() != nil {
				m.mode = calendarModeSize
				m.form = newForm(
					[]string{"Size:", "Quantity (0 removes):"},
					[]textinput.Model{newInput("M", 8, 10), newInput("12", 6, 8)},
				)
				return m, m.form.fields[0].Focus()
			}
		}
	}

	return m, nil
}

func (m *CalendarModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jobSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = calendarModeList
		m.statusMsg = msg.msg
		m.loading = true
		return m, m.loadJobs()

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Back) {
			m.mode = calendarModeList
			m.err = nil
			return m, nil
		}
	}

	cmd, submit := m.form.update(msg)
	if !submit {
		return m, cmd
	}

	switch m.mode {
	case calendarModeMove:
		date, err := time.Parse(dateLayout, m.form.value(0))
		if err != nil {
			m.err = fmt.Errorf("invalid date %q", m.form.value(0))
			return m, nil
		}
		return m, m.saveJob(func(ctx context.Context, id string) (*domain.Job, error) {
			return m.app.JobService.Reschedule(ctx, id, date)
		}, "Moved")
	case calendarModeSize:
		size := strings.ToUpper(m.form.value(0))
		qty, err := strconv.Atoi(m.form.value(1))
		if err != nil {
			m.err = fmt.Errorf("invalid quantity %q", m.form.value(1))
			return m, nil
		}
		return m, m.saveJob(func(ctx context.Context, id string) (*domain.Job, error) {
			return m.app.JobService.SetSize(ctx, id, size, qty)
		}, "Sized")
	}
	return m, nil
}

func (m *CalendarModel) View() string {
	if m.mode != calendarModeList {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *CalendarModel) viewForm() string {
	job := m.selected()
	var s string
	if m.mode == calendarModeMove {
		s += titleStyle.Render("Reschedule "+job.Title) + "\n\n"
	} else {
		s += titleStyle.Render("Sizes for "+job.Title) + "\n\n"
		s += subtitleStyle.Render("  "+sizeSummary(job)) + "\n\n"
	}
	s += m.form.view() + "\n"
	s += errorLine(m.err)
	s += helpStyle.Render("  tab: next field  enter/ctrl+s: save  esc: cancel")
	return s
}

func (m *CalendarModel) viewList() string {
	if m.loading {
		return "Loading calendar..."
	}

	var s string
	s += titleStyle.Render(m.month.Format("January 2006")) + "\n\n"
	s += statusLine(m.statusMsg)
	s += errorLine(m.err)

	s += m.renderGrid() + "\n\n"

	if len(m.jobs) == 0 {
		s += subtitleStyle.Render("  No jobs scheduled this month.") + "\n"
	}
	for i, job := range m.jobs {
		s += m.renderJob(i == m.cursor, job) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: select  h/l: month  s: status  m: move  z: sizes")
	return s
}

// renderGrid draws the month as weeks, starring days with jobs
func (m *CalendarModel) renderGrid() string {
	counts := make(map[int]int)
	for _, j := range m.jobs {
		counts[j.Date.Day()]++
	}
	var selectedDay int
	if job := m.selected(); job != nil {
		selectedDay = job.Date.Day()
	}

	var b strings.Builder
	b.WriteString(subtitleStyle.Render("  Sun  Mon  Tue  Wed  Thu  Fri  Sat") + "\n  ")
	offset := int(m.month.Weekday())
	b.WriteString(strings.Repeat("     ", offset))

	days := m.month.AddDate(0, 1, -1).Day()
	for day := 1; day <= days; day++ {
		cell := fmt.Sprintf("%3d ", day)
		if counts[day] > 0 {
			cell = fmt.Sprintf("%3d*", day)
		}
		switch {
		case day == selectedDay:
			cell = selectedStyle.Render(cell)
		case counts[day] > 0:
			cell = valueStyle.Render(cell)
		}
		b.WriteString(cell + " ")
		if (offset+day)%7 == 0 && day != days {
			b.WriteString("\n  ")
		}
	}
	return b.String()
}

func (m *CalendarModel) renderJob(selected bool, job *domain.Job) string {
	line1 := fmt.Sprintf("%s%s  %-6s %s  %s",
		cursorPrefix(selected),
		job.Date.Format("Jan 02"),
		job.Title,
		renderStatus(job.Status.Label(), 14),
		truncateStr(job.Client, 24),
	)
	line2 := fmt.Sprintf("    %s  |  %d pcs  %s  |  %.1fh",
		truncateStr(job.Description, 40), job.TotalPieces(), sizeSummary(job), job.EstimatedHours)

	nameStyle := lipgloss.NewStyle()
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}
	return nameStyle.Render(line1) + "\n" + subtitleStyle.Render(line2)
}

func sizeSummary(job *domain.Job) string {
	parts := make([]string, 0, len(job.Sizes))
	for _, sq := range job.SizeBreakdown() {
		parts = append(parts, fmt.Sprintf("%s:%d", sq.Size, sq.Qty))
	}
	return strings.Join(parts, " ")
}
