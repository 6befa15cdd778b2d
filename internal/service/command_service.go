package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const commandHistoryLimit = 100

// commandReply is sent back for every command until workflows are wired up
const commandReply = "Command queued. Workflow dispatch is not connected yet."

// ExampleCommands are offered as starting points in the command center
var ExampleCommands = []string{
	"Create quote for 30 hoodies, logo front, ABC Corp",
	"Juan's quote is approved with $200 deposit",
	"Update inventory: 50 white smalls received",
	"Schedule production for INV001 on July 15",
}

// QuickActions are one-key shortcuts that insert a command stub
var QuickActions = []string{
	"Create quote for 25 shirts",
	"Update inventory",
	"Schedule production",
}

// CommandEntry is one submitted command
type CommandEntry struct {
	ID     string
	Text   string
	SentAt time.Time
	Reply  string
}

// CommandService records free-text commands. Commands are logged and kept in
// history; nothing is dispatched.
type CommandService interface {
	Submit(ctx context.Context, text string) (*CommandEntry, error)

	// History returns submitted commands, newest first
	History(ctx context.Context) []CommandEntry
}

type commandService struct {
	logger *slog.Logger
	now    Clock

	mu      sync.Mutex
	history []CommandEntry
}

// NewCommandService creates a new command service
func NewCommandService(logger *slog.Logger, now Clock) CommandService {
	if logger == nil {
		logger = slog.Default()
	}
	return &commandService{logger: logger, now: now}
}

func (s *commandService) Submit(ctx context.Context, text string) (*CommandEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyCommand
	}

	entry := CommandEntry{
		ID:     uuid.NewString(),
		Text:   text,
		SentAt: s.now.now(),
		Reply:  commandReply,
	}
	s.logger.InfoContext(ctx, "command sent", slog.String("id", entry.ID), slog.String("command", text))

	s.mu.Lock()
	s.history = append(s.history, entry)
	if len(s.history) > commandHistoryLimit {
		s.history = s.history[len(s.history)-commandHistoryLimit:]
	}
	s.mu.Unlock()

	return &entry, nil
}

func (s *commandService) History(ctx context.Context) []CommandEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]CommandEntry, len(s.history))
	for i, e := range s.history {
		out[len(s.history)-1-i] = e
	}
	return out
}
