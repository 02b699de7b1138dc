// Package conversation tracks per-chat interaction state in PostgreSQL.
//
// The state machine has two states. A chat in StateIdle treats the next
// message as a command; after an explicit prompt for a question it moves
// to StateAwaitingQuestion and the next message is answered, returning
// the chat to StateIdle.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// State is a chat's position in the interaction flow.
type State string

const (
	// StateIdle is the resting state; unknown chats are idle.
	StateIdle State = "idle"

	// StateAwaitingQuestion means the chat's next message is answered as
	// a question.
	StateAwaitingQuestion State = "awaiting_question"
)

// ErrInvalidState indicates a state value outside the machine.
var ErrInvalidState = errors.New("invalid conversation state")

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	switch s {
	case StateIdle, StateAwaitingQuestion:
		return true
	}
	return false
}

const (
	getStateSQL = `SELECT state FROM conversations WHERE chat_id = $1`

	setStateSQL = `
		INSERT INTO conversations (chat_id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (chat_id) DO UPDATE
		SET state = EXCLUDED.state, updated_at = now()`
)

// Store persists conversation states with a PostgreSQL backend.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewStore creates a Store over the given connection pool.
// A nil logger uses slog.Default().
func NewStore(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		pool:   pool,
		logger: logger,
	}
}

// State returns the chat's current state. A chat without a stored row is
// StateIdle.
func (s *Store) State(ctx context.Context, chatID string) (State, error) {
	var state State
	err := s.pool.QueryRow(ctx, getStateSQL, chatID).Scan(&state)
	if errors.Is(err, pgx.ErrNoRows) {
		return StateIdle, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get conversation state: %w", err)
	}

	if !state.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidState, state)
	}
	return state, nil
}

// SetState stores the chat's state, creating the conversation row if it
// does not exist yet.
func (s *Store) SetState(ctx context.Context, chatID string, state State) error {
	if !state.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidState, state)
	}

	if _, err := s.pool.Exec(ctx, setStateSQL, chatID, state); err != nil {
		return fmt.Errorf("failed to set conversation state: %w", err)
	}

	s.logger.Debug("conversation state changed", "chat_id", chatID, "state", state)
	return nil
}
