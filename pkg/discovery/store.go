package discovery

import "context"

// SessionStore keeps browse sessions for their lifetime only.
// Load returns ErrSessionNotFound when the user has no session.
type SessionStore interface {
	Load(ctx context.Context, userID string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, userID string) error
}
