// Package filter decides which quotes, invoices and clients a list shows.
//
// Visible applies its steps in a fixed order: archive partition, client
// scope, pinned selection, date window, age auto-hide, then text and status.
// A pinned record skips the last three steps so a deep link always lands on
// something visible.
package filter

import (
	"math"
	"strings"
	"time"

	"github.com/andy/printdesk/internal/domain"
)

// Record is implemented by list entities that can be filtered
type Record interface {
	RecordID() string
	OwnerID() string
	IsArchived() bool
	StatusValue() string
	FilterDate() time.Time
	Kind() domain.EntityKind
	SearchFields() []string
}

type ViewMode string

const (
	ViewActive   ViewMode = "active"
	ViewArchived ViewMode = "archived"
	ViewAll      ViewMode = "all"
)

type DateFilter string

const (
	Last30Days DateFilter = "30days"
	Last90Days DateFilter = "90days"
	ThisYear   DateFilter = "year"
	AllDates   DateFilter = "all"
)

// StatusAll disables status filtering
const StatusAll = "all"

const (
	paidHideAfterDays    = 180
	overdueHideAfterDays = 365
)

// Params is the selection context a list is rendered under.
// Zero values mean "no constraint": empty View is active, empty Dates is
// all, empty Status is all.
type Params struct {
	SearchText       string
	Status           string
	SelectedID       string
	SelectedClientID string
	View             ViewMode
	Dates            DateFilter
	ShowAll          bool
	Now              time.Time
}

func (p Params) now() time.Time {
	if p.Now.IsZero() {
		return time.Now()
	}
	return p.Now
}

// Visible returns the subset of records shown under p, in input order.
// The input slice is not modified.
func Visible[E Record](records []E, p Params) []E {
	now := p.now()
	needle := strings.ToLower(p.SearchText)

	out := make([]E, 0, len(records))
	for _, r := range records {
		if !inView(r, p) {
			continue
		}
		if p.SelectedID != "" && r.RecordID() == p.SelectedID {
			out = append(out, r)
			continue
		}
		if !inDateWindow(r, p.Dates, now) {
			continue
		}
		if autoHidden(r, p.ShowAll, now) {
			continue
		}
		if !matchesText(r, needle) || !matchesStatus(r, p.Status) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// inView covers the archive partition and client scope
func inView(r Record, p Params) bool {
	switch p.View {
	case ViewArchived:
		if !r.IsArchived() {
			return false
		}
	case ViewAll:
	default:
		if r.IsArchived() {
			return false
		}
	}
	if p.SelectedClientID != "" && r.OwnerID() != p.SelectedClientID {
		return false
	}
	return true
}

// DaysSince returns whole days elapsed from date to now, rounded down
func DaysSince(date, now time.Time) int {
	return int(math.Floor(now.Sub(date).Hours() / 24))
}

func inDateWindow(r Record, df DateFilter, now time.Time) bool {
	date := r.FilterDate()
	switch df {
	case Last30Days:
		return DaysSince(date, now) <= 30
	case Last90Days:
		return DaysSince(date, now) <= 90
	case ThisYear:
		return date.Year() == now.Year()
	default:
		return true
	}
}

// autoHidden hides long-settled or long-dead invoices unless overridden
func autoHidden(r Record, showAll bool, now time.Time) bool {
	if showAll || r.Kind() != domain.KindInvoice {
		return false
	}
	days := DaysSince(r.FilterDate(), now)
	switch domain.InvoiceStatus(r.StatusValue()) {
	case domain.InvoiceStatusPaid:
		return days > paidHideAfterDays
	case domain.InvoiceStatusOverdue:
		return days > overdueHideAfterDays
	}
	return false
}

func matchesText(r Record, needle string) bool {
	if needle == "" {
		return true
	}
	for _, f := range r.SearchFields() {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func matchesStatus(r Record, status string) bool {
	return status == "" || status == StatusAll || r.StatusValue() == status
}

// Label returns the list header text for a date filter
func (d DateFilter) Label() string {
	switch d {
	case Last30Days:
		return "Last 30 Days"
	case Last90Days:
		return "Last 90 Days"
	case ThisYear:
		return "This Year"
	default:
		return "All Time"
	}
}

// Next cycles 30days -> 90days -> year -> all -> 30days
func (d DateFilter) Next() DateFilter {
	switch d {
	case Last30Days:
		return Last90Days
	case Last90Days:
		return ThisYear
	case ThisYear:
		return AllDates
	default:
		return Last30Days
	}
}

// Next cycles active -> archived -> all -> active
func (v ViewMode) Next() ViewMode {
	switch v {
	case ViewArchived:
		return ViewAll
	case ViewAll:
		return ViewActive
	default:
		return ViewArchived
	}
}

func ParseViewMode(s string) (ViewMode, bool) {
	switch ViewMode(s) {
	case ViewActive, ViewArchived, ViewAll:
		return ViewMode(s), true
	}
	return "", false
}

func ParseDateFilter(s string) (DateFilter, bool) {
	switch DateFilter(s) {
	case Last30Days, Last90Days, ThisYear, AllDates:
		return DateFilter(s), true
	}
	return "", false
}
