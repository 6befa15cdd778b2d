package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/andy/printdesk/internal/domain"
	"github.com/andy/printdesk/internal/filter"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

// addListFlags registers the shared quote/invoice list filters
func addListFlags(cmd *cobra.Command, defaultDates string) {
	cmd.Flags().String("client", "", "Only show records for this client ID")
	cmd.Flags().String("search", "", "Match customer, number or description")
	cmd.Flags().String("status", filter.StatusAll, "Status to show, or 'all'")
	cmd.Flags().String("view", string(filter.ViewActive), "active, archived or all")
	cmd.Flags().String("date", defaultDates, "30days, 90days, year or all")
	cmd.Flags().String("select", "", "Pin one record by ID regardless of other filters")
}

// listParams reads the shared list filters
func listParams(cmd *cobra.Command) (filter.Params, error) {
	var p filter.Params

	p.SelectedClientID, _ = cmd.Flags().GetString("client")
	p.SearchText, _ = cmd.Flags().GetString("search")
	p.Status, _ = cmd.Flags().GetString("status")
	p.SelectedID, _ = cmd.Flags().GetString("select")

	view, _ := cmd.Flags().GetString("view")
	v, ok := filter.ParseViewMode(view)
	if !ok {
		return p, fmt.Errorf("invalid view %q: use active, archived or all", view)
	}
	p.View = v

	dates, _ := cmd.Flags().GetString("date")
	d, ok := filter.ParseDateFilter(dates)
	if !ok {
		return p, fmt.Errorf("invalid date filter %q: use 30days, 90days, year or all", dates)
	}
	p.Dates = d

	return p, nil
}

// checkStatus validates a --status value against the allowed statuses
func checkStatus(status string, parse func(string) error) error {
	if status == "" || status == filter.StatusAll {
		return nil
	}
	return parse(status)
}

func showingLine(c filter.Counts) string {
	line := fmt.Sprintf("Showing %d of %d", c.Visible, c.InView)
	if c.Hidden > 0 {
		line += fmt.Sprintf(" (%d hidden by date or age)", c.Hidden)
	}
	return line
}

func itemLines(items []domain.LineItem) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "    %-40s %5d x %10s = %s\n",
			truncate(it.Description, 40), it.Quantity, domain.FormatMoney(it.UnitPrice), domain.FormatMoney(it.Total))
	}
	return b.String()
}
