package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/andy/printdesk/internal/app"
	"github.com/andy/printdesk/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 7, 20, 12, 0, 0, 0, time.UTC)

func setupTestApp(t *testing.T) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Log.Path = ""

	a, err := app.NewWithConfig(context.Background(), cfg, app.Options{
		Now: func() time.Time { return testNow },
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	SetApp(a)
}

// resetFlags restores every flag to its default; cobra keeps values between runs
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoot_PrintsSummaryWhenNotATerminal(t *testing.T) {
	setupTestApp(t)

	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Print Shop")
	assert.Contains(t, out, "Clients:      6")
	assert.Contains(t, out, "Outstanding:  $396.88")
}

func TestClientsCommands(t *testing.T) {
	setupTestApp(t)

	out, err := run(t, "clients", "list", "--status", "prospect")
	require.NoError(t, err)
	assert.Contains(t, out, "Lisa")
	assert.Contains(t, out, "Total: 1 client(s)")

	_, err = run(t, "clients", "list", "--status", "vip")
	assert.Error(t, err)

	out, err = run(t, "clients", "list", "--search", "nobody-matches-this")
	require.NoError(t, err)
	assert.Contains(t, out, "No clients found")

	_, err = run(t, "clients", "show", "missing")
	assert.Error(t, err)
}

func TestQuotesCommands(t *testing.T) {
	setupTestApp(t)

	out, err := run(t, "quotes", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Q011", "archived quotes are hidden by default")
	assert.Contains(t, out, "Showing")

	out, err = run(t, "quotes", "list", "--view", "archived")
	require.NoError(t, err)
	assert.Contains(t, out, "Q011")

	_, err = run(t, "quotes", "list", "--view", "trash")
	assert.ErrorContains(t, err, "invalid view")

	_, err = run(t, "quotes", "list", "--date", "week")
	assert.ErrorContains(t, err, "invalid date filter")
}

func TestInvoicesCommands(t *testing.T) {
	setupTestApp(t)

	out, err := run(t, "invoices", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "INV001")
	assert.Contains(t, out, "Showing 3 of 3")

	out, err = run(t, "invoices", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Invoice INV001 (partial)")
	assert.Contains(t, out, "Balance:   $396.88")

	_, err = run(t, "invoices", "list", "--status", "bogus")
	assert.Error(t, err)
}

func TestJobsList(t *testing.T) {
	setupTestApp(t)

	out, err := run(t, "jobs", "list", "--month", "2025-01")
	require.NoError(t, err)
	assert.Contains(t, out, "January 2025")
	assert.Contains(t, out, "J001")

	_, err = run(t, "jobs", "list", "--month", "January")
	assert.ErrorContains(t, err, "invalid month")

	out, err = run(t, "jobs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "July 2025")
	assert.Contains(t, out, "No jobs scheduled")
}

func TestJobsMove(t *testing.T) {
	setupTestApp(t)

	out, err := run(t, "jobs", "move", "1", "2025-01-20")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved J001 to 2025-01-20")

	_, err = run(t, "jobs", "move", "5", "2025-01-20")
	assert.Error(t, err, "completed jobs keep their date")

	_, err = run(t, "jobs", "move", "1", "next week")
	assert.ErrorContains(t, err, "invalid date")
}

func TestFinanceSummary(t *testing.T) {
	setupTestApp(t)

	out, err := run(t, "finance", "summary", "--year", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "Financial summary: 2025")
	assert.Contains(t, out, "Collected:   $1,794.10")
}

func TestCalc(t *testing.T) {
	setupTestApp(t)

	out, err := run(t, "calc", "--qty", "10", "--price", "20", "--deposit", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Subtotal:    $200.00")
	assert.Contains(t, out, "Tax (11.5%): $23.00")
	assert.Contains(t, out, "Total:       $223.00")
	assert.Contains(t, out, "Balance due: $123.00")

	out, err = run(t, "calc", "--qty", "abc", "--price", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "Total:       $0.00")
}

func TestCommand(t *testing.T) {
	setupTestApp(t)

	out, err := run(t, "command", "Update", "inventory")
	require.NoError(t, err)
	assert.Contains(t, out, "> Update inventory")

	_, err = run(t, "command", "  ")
	assert.Error(t, err)
}
