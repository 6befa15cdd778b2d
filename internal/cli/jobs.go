package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andy/printdesk/internal/domain"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Show the production calendar",
	Long:  `List production jobs scheduled for a month.`,
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs for a month",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		month, _ := cmd.Flags().GetString("month")
		start := appInstance.Now().UTC()
		if month != "" {
			t, err := time.Parse("2006-01", month)
			if err != nil {
				return fmt.Errorf("invalid month %q: use YYYY-MM", month)
			}
			start = t
		}

		jobs, err := appInstance.JobService.ListMonth(ctx, start.Year(), start.Month())
		if err != nil {
			return fmt.Errorf("failed to list jobs: %w", err)
		}

		fmt.Fprintf(out, "%s %d\n\n", start.Month(), start.Year())
		if len(jobs) == 0 {
			fmt.Fprintln(out, "No jobs scheduled")
			return nil
		}

		// Print table header
		fmt.Fprintf(out, "%-10s %-6s %-30s %-20s %-14s %-6s %s\n", "Date", "ID", "Title", "Client", "Status", "Pieces", "Sizes")
		fmt.Fprintln(out, "----------------------------------------------------------------------------------------------------")

		for _, j := range jobs {
			fmt.Fprintf(out, "%-10s %-6s %-30s %-20s %-14s %-6d %s\n",
				j.Date.Format(dateLayout),
				truncate(j.ID, 6),
				truncate(j.Title, 30),
				truncate(j.Client, 20),
				j.Status.Label(),
				j.TotalPieces(),
				sizeSummary(j.SizeBreakdown()),
			)
		}

		fmt.Fprintf(out, "\nTotal: %d job(s)\n", len(jobs))
		return nil
	},
}

var jobsMoveCmd = &cobra.Command{
	Use:   "move [id] [date]",
	Short: "Reschedule a job to another day (YYYY-MM-DD)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		date, err := time.Parse(dateLayout, args[1])
		if err != nil {
			return fmt.Errorf("invalid date %q: use YYYY-MM-DD", args[1])
		}
		job, err := appInstance.JobService.Reschedule(ctx, args[0], date)
		if err != nil {
			return fmt.Errorf("failed to move job: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", job.Title, job.Date.Format(dateLayout))
		return nil
	},
}

func sizeSummary(sizes []domain.SizeQty) string {
	parts := make([]string, 0, len(sizes))
	for _, s := range sizes {
		parts = append(parts, fmt.Sprintf("%s:%d", s.Size, s.Qty))
	}
	return strings.Join(parts, " ")
}

func init() {
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsMoveCmd)

	jobsListCmd.Flags().String("month", "", "Month to show as YYYY-MM (default current month)")
}
