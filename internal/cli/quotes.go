package cli

import (
	"context"
	"fmt"

	"github.com/andy/printdesk/internal/domain"
	"github.com/andy/printdesk/internal/filter"
	"github.com/spf13/cobra"
)

var quotesCmd = &cobra.Command{
	Use:   "quotes",
	Short: "Browse quotes",
	Long:  `List and inspect quotes.`,
}

var quotesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quotes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		p, err := listParams(cmd)
		if err != nil {
			return err
		}
		if err := checkStatus(p.Status, func(s string) error {
			_, err := domain.ParseQuoteStatus(s)
			return err
		}); err != nil {
			return err
		}

		res, err := appInstance.QuoteService.ListQuotes(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to list quotes: %w", err)
		}

		if len(res.Items) == 0 {
			fmt.Fprintln(out, "No quotes found")
			return nil
		}

		// Print table header
		fmt.Fprintf(out, "%-8s %-8s %-20s %-36s %-12s %-10s %-10s\n", "ID", "Number", "Customer", "Description", "Amount", "Status", "Created")
		fmt.Fprintln(out, "--------------------------------------------------------------------------------------------------------------")

		for _, q := range res.Items {
			status := string(q.Status)
			if q.Archived {
				status += "*"
			}
			fmt.Fprintf(out, "%-8s %-8s %-20s %-36s %-12s %-10s %-10s\n",
				truncate(q.ID, 8),
				q.Number,
				truncate(q.Customer, 20),
				truncate(q.Description, 36),
				domain.FormatMoney(q.Amount),
				status,
				q.CreatedDate.Format(dateLayout),
			)
		}

		fmt.Fprintf(out, "\n%s\n", showingLine(res.Counts))
		return nil
	},
}

var quotesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a quote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		q, err := appInstance.QuoteService.GetQuote(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get quote: %w", err)
		}

		fmt.Fprintf(out, "Quote %s (%s)\n", q.Number, q.Status)
		fmt.Fprintf(out, "  Customer:  %s\n", q.Customer)
		fmt.Fprintf(out, "  Created:   %s\n", q.CreatedDate.Format(dateLayout))
		fmt.Fprintf(out, "  Expires:   %s\n", q.ExpiryDate.Format(dateLayout))
		if q.Archived {
			fmt.Fprintf(out, "  Archived:  %s\n", formatDate(q.ArchivedDate))
		}
		fmt.Fprintf(out, "  %s\n\n", q.Description)
		fmt.Fprint(out, itemLines(q.Items))
		fmt.Fprintf(out, "\n  Subtotal:  %s\n", domain.FormatMoney(q.Subtotal()))
		fmt.Fprintf(out, "  Tax:       %s\n", domain.FormatMoney(q.Tax()))
		fmt.Fprintf(out, "  Total:     %s\n", domain.FormatMoney(q.Amount))

		if inv, err := appInstance.InvoiceService.FindByQuote(ctx, q.ID); err == nil {
			fmt.Fprintf(out, "\n  Invoiced as %s (%s)\n", inv.Number, inv.Status)
		} else if q.Status.CanInvoice() {
			fmt.Fprintln(out, "\n  Ready to invoice")
		}
		return nil
	},
}

func init() {
	quotesCmd.AddCommand(quotesListCmd)
	quotesCmd.AddCommand(quotesShowCmd)

	addListFlags(quotesListCmd, string(filter.AllDates))
}
