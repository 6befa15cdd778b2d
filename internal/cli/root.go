package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/andy/printdesk/internal/app"
	"github.com/andy/printdesk/internal/domain"
	"github.com/andy/printdesk/internal/filter"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "printdesk",
	Short: "A back-office desk for print shops",
	Long: `Printdesk keeps a print shop's production calendar, quotes, invoices and
client directory in one place.

Running printdesk without arguments launches the interactive TUI when attached
to a terminal, and prints a dashboard summary otherwise.
Use subcommands for CLI operations.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isTerminal(cmd.OutOrStdout()) {
			return launchTUI(cmd, args)
		}
		return printSummary(context.Background(), cmd.OutOrStdout())
	},
}

// Execute runs the root command with the given arguments
func Execute(args []string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	// Add all subcommands
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(quotesCmd)
	rootCmd.AddCommand(invoicesCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(financeCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(commandCmd)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printSummary is the non-interactive dashboard
func printSummary(ctx context.Context, out io.Writer) error {
	clients, err := appInstance.ClientService.ListClients(ctx, filter.ClientParams{})
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}
	quotes, err := appInstance.QuoteService.ListQuotes(ctx, filter.Params{})
	if err != nil {
		return fmt.Errorf("failed to list quotes: %w", err)
	}
	invoices, err := appInstance.InvoiceService.ListInvoices(ctx, filter.Params{View: filter.ViewAll, ShowAll: true})
	if err != nil {
		return fmt.Errorf("failed to list invoices: %w", err)
	}
	summary, err := appInstance.ReportService.GetFinancialSummary(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to build summary: %w", err)
	}

	pending := 0
	for _, q := range quotes.Items {
		if q.Status == domain.QuoteStatusPending {
			pending++
		}
	}

	fmt.Fprintf(out, "%s\n\n", appInstance.Config.Shop.Name)
	fmt.Fprintf(out, "Clients:      %d\n", len(clients))
	fmt.Fprintf(out, "Open quotes:  %d (%d pending)\n", quotes.Counts.Active, pending)
	fmt.Fprintf(out, "Invoices:     %d (%d archived)\n", invoices.Counts.Total, invoices.Counts.Archived)
	fmt.Fprintf(out, "Collected:    %s\n", domain.FormatMoney(summary.Collected))
	fmt.Fprintf(out, "Outstanding:  %s\n", domain.FormatMoney(summary.Outstanding))
	fmt.Fprintf(out, "Overdue:      %s\n", domain.FormatMoney(summary.Overdue))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'printdesk --help' for more commands")
	return nil
}
