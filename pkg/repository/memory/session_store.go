package memory

import (
	"context"
	"sync"

	"github.com/artem13815/win/pkg/discovery"
)

// SessionStore keeps browse sessions for the life of the process.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]discovery.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]discovery.Session)}
}

func (s *SessionStore) Load(ctx context.Context, userID string) (*discovery.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, discovery.ErrSessionNotFound
	}
	out := cloneSession(sess)
	return &out, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *discovery.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = cloneSession(*sess)
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func cloneSession(s discovery.Session) discovery.Session {
	s.Candidates = append([]string(nil), s.Candidates...)
	s.Matches = append([]string{}, s.Matches...)
	return s
}
