package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/printdesk/internal/config"
	"github.com/andy/printdesk/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Log.Path = ""
	cfg.Log.Level = "debug"
	return cfg
}

func TestNewWithConfig_WiresServices(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	now := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)

	a, err := NewWithConfig(ctx, testConfig(t), Options{LogWriter: &logs, Now: func() time.Time { return now }})
	require.NoError(t, err)
	defer a.Close()

	assert.Contains(t, logs.String(), "seed loaded")

	clients, err := a.ClientService.ListClients(ctx, filter.ClientParams{})
	require.NoError(t, err)
	assert.Len(t, clients, 6)

	res, err := a.InvoiceService.ListInvoices(ctx, filter.Params{Dates: filter.Last30Days})
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)

	// repositories and services share state
	_, err = a.InvoiceService.RecordPayment(ctx, "1", res.Items[0].Amount)
	require.NoError(t, err)
	inv, err := a.InvoiceRepo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.True(t, inv.Balance().IsZero())
}

func TestNewWithConfig_Numbering(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Numbering.QuotePrefix = "EST"

	a, err := NewWithConfig(ctx, cfg, Options{})
	require.NoError(t, err)
	defer a.Close()

	n, err := a.QuoteRepo.NextNumber(ctx, a.Config.Numbering.QuotePrefix)
	require.NoError(t, err)
	assert.Equal(t, "EST001", n)
}

func TestNewWithConfig_FixturesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
clients:
  - id: c1
    name: Solo Client
    email: solo@example.com
    status: active
`), 0644))

	cfg := testConfig(t)
	cfg.Fixtures = path

	a, err := NewWithConfig(context.Background(), cfg, Options{})
	require.NoError(t, err)
	defer a.Close()

	clients, err := a.ClientRepo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Solo Client", clients[0].Name)

	cfg.Fixtures = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = NewWithConfig(context.Background(), cfg, Options{})
	assert.Error(t, err)
}
