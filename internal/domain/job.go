package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var ErrDateLocked = errors.New("completed jobs cannot be moved")

// Sizes lists garment sizes in print order
var Sizes = []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL", "2-4", "6-8", "10-12", "14-16"}

// Job is a production run scheduled on the calendar.
// Client is a free-text display name, not a client id.
type Job struct {
	ID             string
	Title          string `validate:"required"`
	Client         string
	Description    string
	Date           time.Time
	Status         JobStatus `validate:"oneof=IN_PRODUCTION READY URGENT COMPLETED"`
	EstimatedHours float64   `validate:"gte=0"`
	Sizes          map[string]int
	Notes          string
}

func (j *Job) Validate() error {
	return checkStruct(j)
}

// Reschedule moves the job to another day unless it is completed
func (j *Job) Reschedule(date time.Time) error {
	if !CanEditDate(j.Status) {
		return ErrDateLocked
	}
	j.Date = date
	return nil
}

// SetSize records the quantity for a size; zero or less removes it
func (j *Job) SetSize(size string, qty int) {
	size = strings.TrimSpace(size)
	if size == "" {
		return
	}
	if qty <= 0 {
		delete(j.Sizes, size)
		return
	}
	if j.Sizes == nil {
		j.Sizes = make(map[string]int)
	}
	j.Sizes[size] = qty
}

// TotalPieces sums quantities across all sizes
func (j *Job) TotalPieces() int {
	n := 0
	for _, q := range j.Sizes {
		n += q
	}
	return n
}

// SizeBreakdown returns sizes with quantities in print order, followed by
// any non-standard sizes sorted by name
func (j *Job) SizeBreakdown() []SizeQty {
	out := make([]SizeQty, 0, len(j.Sizes))
	seen := make(map[string]bool, len(j.Sizes))
	for _, s := range Sizes {
		if q, ok := j.Sizes[s]; ok {
			out = append(out, SizeQty{Size: s, Qty: q})
			seen[s] = true
		}
	}
	var extra []string
	for s := range j.Sizes {
		if !seen[s] {
			extra = append(extra, s)
		}
	}
	sort.Strings(extra)
	for _, s := range extra {
		out = append(out, SizeQty{Size: s, Qty: j.Sizes[s]})
	}
	return out
}

type SizeQty struct {
	Size string
	Qty  int
}

// OnDay reports whether the job falls on the same calendar day as d
func (j *Job) OnDay(d time.Time) bool {
	y1, m1, d1 := j.Date.Date()
	y2, m2, d2 := d.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (j *Job) Clone() *Job {
	out := *j
	if j.Sizes != nil {
		out.Sizes = make(map[string]int, len(j.Sizes))
		for k, v := range j.Sizes {
			out.Sizes[k] = v
		}
	}
	return &out
}
