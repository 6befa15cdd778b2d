package cli

import (
	"fmt"

	"github.com/andy/printdesk/internal/domain"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Price a line with sales tax",
	Long: `Compute subtotal, tax, total and balance due for a quantity and unit price.
Unparseable or negative values count as zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, _ := cmd.Flags().GetString("qty")
		price, _ := cmd.Flags().GetString("price")
		deposit, _ := cmd.Flags().GetString("deposit")

		t := domain.ComputeTotalsFromInput(qty, price, deposit).Rounded()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Subtotal:    %s\n", domain.FormatMoney(t.Subtotal))
		fmt.Fprintf(out, "Tax (%s%%): %s\n", domain.TaxRate.Shift(2).String(), domain.FormatMoney(t.Tax))
		fmt.Fprintf(out, "Total:       %s\n", domain.FormatMoney(t.Total))
		fmt.Fprintf(out, "Deposit:     %s\n", domain.FormatMoney(domain.ParseAmount(deposit)))
		fmt.Fprintf(out, "Balance due: %s\n", domain.FormatMoney(t.BalanceDue))
		return nil
	},
}

func init() {
	calcCmd.Flags().String("qty", "1", "Quantity")
	calcCmd.Flags().String("price", "0", "Unit price")
	calcCmd.Flags().String("deposit", "0", "Deposit already paid")
}
