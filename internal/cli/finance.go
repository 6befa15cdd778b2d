package cli

import (
	"context"
	"fmt"

	"github.com/andy/printdesk/internal/domain"
	"github.com/spf13/cobra"
)

var financeCmd = &cobra.Command{
	Use:   "finance",
	Short: "Financial reports",
}

var financeSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show billed, collected and outstanding totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		year, _ := cmd.Flags().GetInt("year")
		s, err := appInstance.ReportService.GetFinancialSummary(ctx, year)
		if err != nil {
			return fmt.Errorf("failed to build summary: %w", err)
		}

		period := "All years"
		if s.Year != 0 {
			period = fmt.Sprintf("%d", s.Year)
		}
		fmt.Fprintf(out, "Financial summary: %s\n\n", period)
		fmt.Fprintf(out, "  Invoices:    %d\n", s.InvoiceCount)
		fmt.Fprintf(out, "  Billed:      %s\n", domain.FormatMoney(s.Billed))
		fmt.Fprintf(out, "  Collected:   %s\n", domain.FormatMoney(s.Collected))
		fmt.Fprintf(out, "  Outstanding: %s\n", domain.FormatMoney(s.Outstanding))
		fmt.Fprintf(out, "  Overdue:     %s (%d)\n", domain.FormatMoney(s.Overdue), s.OverdueCount)

		if len(s.RevenueByMonth) > 0 {
			fmt.Fprintln(out, "\nCollected by month")
			for _, m := range s.RevenueByMonth {
				fmt.Fprintf(out, "  %d-%02d  %12s\n", m.Year, int(m.Month), domain.FormatMoney(m.Amount))
			}
		}

		fmt.Fprintln(out, "\nQuote pipeline")
		for _, st := range s.Pipeline {
			fmt.Fprintf(out, "  %-10s %3d  %12s\n", st.Status, st.Count, domain.FormatMoney(st.Amount))
		}

		if len(s.TopClients) > 0 {
			fmt.Fprintln(out, "\nTop clients")
			for _, c := range s.TopClients {
				fmt.Fprintf(out, "  %-24s %3d  %12s paid of %s\n",
					truncate(c.Name, 24), c.Invoices, domain.FormatMoney(c.Paid), domain.FormatMoney(c.Billed))
			}
		}
		return nil
	},
}

func init() {
	financeCmd.AddCommand(financeSummaryCmd)

	financeSummaryCmd.Flags().Int("year", 0, "Limit to one year (0 for all years)")
}
