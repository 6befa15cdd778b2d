package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/printdesk/internal/service"
	"github.com/spf13/cobra"
)

var commandCmd = &cobra.Command{
	Use:   "command [text]",
	Short: "Send a free-text command",
	Long: `Send a plain-language command to the shop assistant.

Examples:
  ` + strings.Join(service.ExampleCommands, "\n  "),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := appInstance.CommandService.Submit(context.Background(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "> %s\n%s\n", entry.Text, entry.Reply)
		return nil
	},
}
