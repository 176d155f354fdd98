package discovery

import (
	"errors"
	"time"
)

var (
	ErrNoCandidates    = errors.New("no candidates to show")
	ErrSessionNotFound = errors.New("browse session not found")
)

// Session is the browse state of one user: a fixed candidate list, a cursor into it and
// the profiles liked so far. The cursor wraps to the start after the last candidate.
type Session struct {
	UserID     string    `json:"userId"`
	Candidates []string  `json:"candidates"`
	Index      int       `json:"index"`
	Matches    []string  `json:"matches"`
	Laps       int       `json:"laps"`
	StartedAt  time.Time `json:"startedAt"`
}

func NewSession(userID string, candidates []string, now time.Time) *Session {
	ids := make([]string, len(candidates))
	copy(ids, candidates)
	return &Session{
		UserID:     userID,
		Candidates: ids,
		Matches:    []string{},
		StartedAt:  now.UTC(),
	}
}

// Current returns the candidate under the cursor.
func (s *Session) Current() (string, error) {
	if len(s.Candidates) == 0 {
		return "", ErrNoCandidates
	}
	if s.Index < 0 || s.Index >= len(s.Candidates) {
		s.Index = 0
	}
	return s.Candidates[s.Index], nil
}

// Like records the current candidate as a match and advances. A candidate that is already
// matched (seen again after a wrap) is not appended a second time; added reports whether
// the match set grew.
func (s *Session) Like() (id string, added bool, err error) {
	id, err = s.Current()
	if err != nil {
		return "", false, err
	}
	if !s.IsMatched(id) {
		s.Matches = append(s.Matches, id)
		added = true
	}
	s.advance()
	return id, added, nil
}

// Dislike advances past the current candidate.
func (s *Session) Dislike() (string, error) {
	id, err := s.Current()
	if err != nil {
		return "", err
	}
	s.advance()
	return id, nil
}

func (s *Session) IsMatched(id string) bool {
	for _, m := range s.Matches {
		if m == id {
			return true
		}
	}
	return false
}

// Position returns the zero-based cursor and the candidate count.
func (s *Session) Position() (int, int) {
	return s.Index, len(s.Candidates)
}

func (s *Session) advance() {
	if s.Index < len(s.Candidates)-1 {
		s.Index++
		return
	}
	s.Index = 0
	s.Laps++
}
