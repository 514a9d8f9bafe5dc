// Package session carries the caller's identity through a request.
//
// A nil *Session means "no session" (a guest). Callers pass it explicitly
// into services instead of reading ambient state.
package session

import (
	"context"

	"github.com/google/uuid"
)

type Session struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, or nil for guests.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}

// IsGuest reports whether s represents an unauthenticated caller.
func (s *Session) IsGuest() bool {
	return s == nil || s.UserID == uuid.Nil
}

// UserIDPtr returns the user id, or nil for guests.
func (s *Session) UserIDPtr() *uuid.UUID {
	if s.IsGuest() {
		return nil
	}
	id := s.UserID
	return &id
}
