package filter

// Counts backs the "showing X of Y" line and the view tab labels
type Counts struct {
	Total    int
	Active   int
	Archived int
	// InView is what survives the archive partition and client scope
	InView int
	// Hidden is in view but dropped by the date window or auto-hide
	Hidden  int
	Visible int
}

// Count tallies records under p. A pinned record is never counted as hidden.
func Count[E Record](records []E, p Params) Counts {
	now := p.now()
	c := Counts{Total: len(records)}

	for _, r := range records {
		if r.IsArchived() {
			c.Archived++
		} else {
			c.Active++
		}
		if !inView(r, p) {
			continue
		}
		c.InView++
		if p.SelectedID != "" && r.RecordID() == p.SelectedID {
			continue
		}
		if !inDateWindow(r, p.Dates, now) || autoHidden(r, p.ShowAll, now) {
			c.Hidden++
		}
	}

	c.Visible = len(Visible(records, p))
	return c
}
