package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Numbering, cfg.Numbering)
	assert.Equal(t, 14, cfg.Invoice.DefaultDueDays)
	assert.Equal(t, "30days", cfg.Invoice.DefaultDateFilter)
	assert.Equal(t, 30, cfg.Quote.ValidDays)
	assert.Empty(t, cfg.Fixtures)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
shop:
  name: Ink & Thread
numbering:
  invoice_prefix: INV-
invoice:
  default_due_days: 30
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Ink & Thread", cfg.Shop.Name)
	assert.Equal(t, "INV-", cfg.Numbering.InvoicePrefix)
	assert.Equal(t, "Q", cfg.Numbering.QuotePrefix, "unset keys keep defaults")
	assert.Equal(t, 30, cfg.Invoice.DefaultDueDays)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0644))

	t.Setenv("PRINTDESK_LOG_LEVEL", "debug")
	t.Setenv("PRINTDESK_LOG_FORMAT", "json")
	t.Setenv("PRINTDESK_INVOICE_DEFAULT_DUE_DAYS", "21")
	t.Setenv("PRINTDESK_FIXTURES", "/tmp/seed.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 21, cfg.Invoice.DefaultDueDays)
	assert.Equal(t, "/tmp/seed.yaml", cfg.Fixtures)
	assert.NotEqual(t, os.Getenv("PATH"), cfg.Log.Path, "unprefixed variables are ignored")
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, os.WriteFile(path, []byte("invoice: [broken"), 0644))
	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("invoice:\n  default_date_filter: fortnight\n"), 0644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "invalid config")

	t.Setenv("PRINTDESK_QUOTE_VALID_DAYS", "soon")
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Shop.Email = "hello@printshop.test"
	cfg.Log.Path = ""

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Log.Path = filepath.Join(dir, "logs", "printdesk.log")

	require.NoError(t, cfg.EnsureDirectories())
	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
