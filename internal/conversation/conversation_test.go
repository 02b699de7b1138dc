package conversation

import (
	"context"
	"errors"
	"testing"
)

func TestStateValid(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateIdle, true},
		{StateAwaitingQuestion, true},
		{State(""), false},
		{State("pending"), false},
		{State("IDLE"), false},
	}

	for _, tt := range tests {
		if got := tt.state.Valid(); got != tt.want {
			t.Errorf("State(%q).Valid() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestSetState_RejectsInvalidState(t *testing.T) {
	// Validation happens before the pool is touched, so a nil pool is
	// safe here.
	s := NewStore(nil, nil)

	err := s.SetState(context.Background(), "chat-1", State("bogus"))
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}
