package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandService_Submit(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	svc := NewCommandService(logger, fixedClock)

	_, err := svc.Submit(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)

	first, err := svc.Submit(ctx, ExampleCommands[0])
	require.NoError(t, err)
	assert.Equal(t, fixedNow, first.SentAt)
	assert.NotEmpty(t, first.Reply)

	_, err = svc.Submit(ctx, " "+QuickActions[1]+" ")
	require.NoError(t, err)

	history := svc.History(ctx)
	require.Len(t, history, 2)
	assert.Equal(t, "Update inventory", history[0].Text, "newest first, trimmed")
	assert.Equal(t, first.ID, history[1].ID)

	assert.Contains(t, buf.String(), "command sent")
	assert.Contains(t, buf.String(), "ABC Corp")
}

func TestCommandService_HistoryLimit(t *testing.T) {
	ctx := context.Background()
	svc := NewCommandService(nil, fixedClock)

	for i := 0; i < commandHistoryLimit+5; i++ {
		_, err := svc.Submit(ctx, fmt.Sprintf("cmd %d", i))
		require.NoError(t, err)
	}

	history := svc.History(ctx)
	require.Len(t, history, commandHistoryLimit)
	assert.Equal(t, fmt.Sprintf("cmd %d", commandHistoryLimit+4), history[0].Text)
}
