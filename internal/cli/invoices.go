package cli

import (
	"context"
	"fmt"

	"github.com/andy/printdesk/internal/domain"
	"github.com/spf13/cobra"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Browse invoices",
	Long:  `List invoices and inspect balances.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		if !cmd.Flags().Changed("date") {
			cmd.Flags().Set("date", appInstance.Config.Invoice.DefaultDateFilter)
		}
		p, err := listParams(cmd)
		if err != nil {
			return err
		}
		if err := checkStatus(p.Status, func(s string) error {
			_, err := domain.ParseInvoiceStatus(s)
			return err
		}); err != nil {
			return err
		}
		p.ShowAll, _ = cmd.Flags().GetBool("all")

		res, err := appInstance.InvoiceService.ListInvoices(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		if len(res.Items) == 0 {
			fmt.Fprintln(out, "No invoices found")
			fmt.Fprintln(out, showingLine(res.Counts))
			return nil
		}

		// Print table header
		fmt.Fprintf(out, "%-8s %-8s %-20s %-12s %-12s %-12s %-9s %-10s\n", "ID", "Number", "Customer", "Amount", "Paid", "Balance", "Status", "Due")
		fmt.Fprintln(out, "----------------------------------------------------------------------------------------------------")

		for _, inv := range res.Items {
			status := string(inv.Status)
			if inv.Archived {
				status += "*"
			}
			fmt.Fprintf(out, "%-8s %-8s %-20s %-12s %-12s %-12s %-9s %-10s\n",
				truncate(inv.ID, 8),
				inv.Number,
				truncate(inv.Customer, 20),
				domain.FormatMoney(inv.Amount),
				domain.FormatMoney(inv.PaidAmount),
				domain.FormatMoney(inv.Balance()),
				status,
				inv.DueDate.Format(dateLayout),
			)
		}

		fmt.Fprintf(out, "\n%s\n", showingLine(res.Counts))
		return nil
	},
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		inv, err := appInstance.InvoiceService.GetInvoice(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get invoice: %w", err)
		}

		fmt.Fprintf(out, "Invoice %s (%s)\n", inv.Number, inv.Status)
		fmt.Fprintf(out, "  Customer:  %s <%s>\n", inv.Customer, inv.Email)
		fmt.Fprintf(out, "  Issued:    %s\n", inv.IssueDate.Format(dateLayout))
		fmt.Fprintf(out, "  Due:       %s\n", inv.DueDate.Format(dateLayout))
		fmt.Fprintf(out, "  Paid on:   %s\n", formatDate(inv.PaymentDate))
		if inv.QuoteID != "" {
			if q, err := appInstance.QuoteService.GetQuote(ctx, inv.QuoteID); err == nil {
				fmt.Fprintf(out, "  From:      quote %s\n", q.Number)
			}
		}
		fmt.Fprintf(out, "  %s\n\n", inv.Description)
		fmt.Fprint(out, itemLines(inv.Items))

		fmt.Fprintf(out, "\n  Amount:    %s\n", domain.FormatMoney(inv.Amount))
		fmt.Fprintf(out, "  Paid:      %s (%s%%)\n", domain.FormatMoney(inv.PaidAmount), inv.PaidPercent().StringFixed(0))
		fmt.Fprintf(out, "  Balance:   %s\n", domain.FormatMoney(inv.Balance()))
		return nil
	},
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesShowCmd)

	addListFlags(invoicesListCmd, "30days")
	invoicesListCmd.Flags().Bool("all", false, "Include long-settled and long-overdue invoices")
}
