package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ClosesAppWhenCommandFails(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "printdesk.log")
	t.Setenv("HOME", dir)
	t.Setenv("PRINTDESK_LOG_PATH", logPath)
	t.Setenv("PRINTDESK_LOG_LEVEL", "debug")

	code := run([]string{"quotes", "show", "no-such-quote"})
	assert.Equal(t, 1, code)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "app closed")
}

func TestRun_Success(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("PRINTDESK_LOG_PATH", filepath.Join(dir, "printdesk.log"))

	assert.Equal(t, 0, run([]string{"calc", "--qty", "2", "--price", "10"}))
}
