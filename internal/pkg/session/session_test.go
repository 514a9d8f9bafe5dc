package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestGuestHasNoUserID(t *testing.T) {
	var s *Session
	if !s.IsGuest() || s.UserIDPtr() != nil {
		t.Fatalf("nil session must be a guest without user id")
	}
	if FromContext(context.Background()) != nil {
		t.Fatalf("empty context must yield nil session")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithSession(context.Background(), &Session{UserID: id, Role: "client"})

	s := FromContext(ctx)
	if s.IsGuest() {
		t.Fatalf("expected signed-in session")
	}
	if got := s.UserIDPtr(); got == nil || *got != id {
		t.Fatalf("expected user id %s, got %v", id, got)
	}
}
