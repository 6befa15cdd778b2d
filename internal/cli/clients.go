package cli

import (
	"context"
	"fmt"

	"github.com/andy/printdesk/internal/domain"
	"github.com/andy/printdesk/internal/filter"
	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Browse clients",
	Long:  `List and inspect clients in the directory.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		search, _ := cmd.Flags().GetString("search")
		status, _ := cmd.Flags().GetString("status")
		if err := checkStatus(status, func(s string) error {
			_, err := domain.ParseClientStatus(s)
			return err
		}); err != nil {
			return err
		}

		clients, err := appInstance.ClientService.ListClients(ctx, filter.ClientParams{SearchText: search, Status: status})
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		if len(clients) == 0 {
			fmt.Fprintln(out, "No clients found")
			return nil
		}

		// Print table header
		fmt.Fprintf(out, "%-8s %-20s %-20s %-28s %-7s %-12s %-10s\n", "ID", "Name", "Company", "Email", "Orders", "Spent", "Status")
		fmt.Fprintln(out, "----------------------------------------------------------------------------------------------------------------")

		for _, client := range clients {
			fmt.Fprintf(out, "%-8s %-20s %-20s %-28s %-7d %-12s %-10s\n",
				truncate(client.ID, 8),
				truncate(client.Name, 20),
				truncate(client.Company, 20),
				truncate(client.Email, 28),
				client.TotalOrders,
				domain.FormatMoney(client.TotalSpent),
				client.Status,
			)
		}

		fmt.Fprintf(out, "\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a client with recent quotes and invoices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		act, err := appInstance.ClientService.GetActivity(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}
		c := act.Client

		fmt.Fprintf(out, "%s (%s)\n", c.Name, c.Status)
		if c.Company != "" {
			fmt.Fprintf(out, "  Company:     %s\n", c.Company)
		}
		fmt.Fprintf(out, "  Email:       %s\n", c.Email)
		fmt.Fprintf(out, "  Phone:       %s\n", c.Phone)
		fmt.Fprintf(out, "  Address:     %s, %s, %s %s\n", c.Address, c.City, c.State, c.ZipCode)
		fmt.Fprintf(out, "  Orders:      %d\n", c.TotalOrders)
		fmt.Fprintf(out, "  Total spent: %s\n", domain.FormatMoney(c.TotalSpent))
		fmt.Fprintf(out, "  Avg order:   %s\n", domain.FormatMoney(act.AverageOrder))
		fmt.Fprintf(out, "  Last order:  %s\n", formatDate(c.LastOrderDate))
		if c.Notes != "" {
			fmt.Fprintf(out, "  Notes:       %s\n", c.Notes)
		}

		fmt.Fprintf(out, "\nRecent quotes (%d total)\n", act.QuoteCount)
		for _, q := range act.RecentQuotes {
			fmt.Fprintf(out, "  %-8s %-40s %12s  %s\n", q.Number, truncate(q.Description, 40), domain.FormatMoney(q.Amount), q.Status)
		}
		fmt.Fprintf(out, "\nRecent invoices (%d total)\n", act.InvoiceCount)
		for _, inv := range act.RecentInvoices {
			fmt.Fprintf(out, "  %-8s %-40s %12s  %s\n", inv.Number, truncate(inv.Description, 40), domain.FormatMoney(inv.Amount), inv.Status)
		}
		return nil
	},
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsShowCmd)

	// List flags
	clientsListCmd.Flags().String("search", "", "Match name, email, company or phone")
	clientsListCmd.Flags().String("status", filter.StatusAll, "active, inactive, prospect or all")
}
