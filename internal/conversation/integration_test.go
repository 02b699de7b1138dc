//go:build integration
// +build integration

package conversation

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/ganderhq/gander/internal/testutil"
)

var sharedDB *testutil.TestDBContainer

func TestMain(m *testing.M) {
	var cleanup func()
	var err error
	sharedDB, cleanup, err = testutil.SetupTestDBForMain()
	if err != nil {
		log.Fatalf("starting test database: %v", err)
	}
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupIntegrationTest(t *testing.T) *Store {
	t.Helper()
	testutil.CleanTables(t, sharedDB.Pool)
	return NewStore(sharedDB.Pool, testutil.DiscardLogger())
}

func TestState_UnknownChatIsIdle(t *testing.T) {
	s := setupIntegrationTest(t)

	state, err := s.State(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("State() unexpected error: %v", err)
	}
	if state != StateIdle {
		t.Errorf("unknown chat must be idle, got %q", state)
	}
}

func TestSetState_RoundTrip(t *testing.T) {
	s := setupIntegrationTest(t)
	ctx := context.Background()

	if err := s.SetState(ctx, "chat-1", StateAwaitingQuestion); err != nil {
		t.Fatalf("SetState() unexpected error: %v", err)
	}

	state, err := s.State(ctx, "chat-1")
	if err != nil {
		t.Fatalf("State() unexpected error: %v", err)
	}
	if state != StateAwaitingQuestion {
		t.Errorf("expected awaiting_question, got %q", state)
	}

	// Upsert back to idle.
	if err := s.SetState(ctx, "chat-1", StateIdle); err != nil {
		t.Fatalf("SetState() unexpected error: %v", err)
	}
	state, err = s.State(ctx, "chat-1")
	if err != nil {
		t.Fatalf("State() unexpected error: %v", err)
	}
	if state != StateIdle {
		t.Errorf("expected idle after reset, got %q", state)
	}
}

func TestSetState_IsolatedPerChat(t *testing.T) {
	s := setupIntegrationTest(t)
	ctx := context.Background()

	if err := s.SetState(ctx, "chat-a", StateAwaitingQuestion); err != nil {
		t.Fatalf("SetState() unexpected error: %v", err)
	}

	state, err := s.State(ctx, "chat-b")
	if err != nil {
		t.Fatalf("State() unexpected error: %v", err)
	}
	if state != StateIdle {
		t.Errorf("other chats must stay idle, got %q", state)
	}
}
