package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/artem13815/win/pkg/compatibility"
	"github.com/artem13815/win/pkg/profile"
)

// Card is what the user sees while browsing.
type Card struct {
	Profile       profile.Profile     `json:"profile"`
	Compatibility compatibility.Score `json:"compatibility"`
	Position      int                 `json:"position"`
	Total         int                 `json:"total"`
	Laps          int                 `json:"laps"`
}

// Decision is the outcome of a like or dislike.
type Decision struct {
	Profile profile.Profile `json:"profile"`
	// Matched is true when a like added a new entry to the match set.
	Matched bool  `json:"matched"`
	Next    *Card `json:"next,omitempty"`
}

// Match is a liked profile with its score against the user.
type Match struct {
	Profile       profile.Profile     `json:"profile"`
	Compatibility compatibility.Score `json:"compatibility"`
}

// UseCase drives the per-user browse/match state machine.
type UseCase interface {
	Current(ctx context.Context, userID string) (Card, error)
	Like(ctx context.Context, userID string) (Decision, error)
	Dislike(ctx context.Context, userID string) (Decision, error)
	Matches(ctx context.Context, userID string) ([]Match, error)
	Reset(ctx context.Context, userID string) (Card, error)
}

type service struct {
	profiles profile.UseCase
	sessions SessionStore
	scorer   *compatibility.Scorer
	now      func() time.Time

	mu    sync.Mutex
	locks map[string]*userLock
}

// userLock is dropped from the map once nobody holds or waits on it.
type userLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(profiles profile.UseCase, sessions SessionStore, scorer *compatibility.Scorer) UseCase {
	return &service{
		profiles: profiles,
		sessions: sessions,
		scorer:   scorer,
		now:      time.Now,
		locks:    make(map[string]*userLock),
	}
}

func (s *service) Current(ctx context.Context, userID string) (Card, error) {
	defer s.lock(userID)()
	user, sess, err := s.session(ctx, userID)
	if err != nil {
		return Card{}, err
	}
	return s.card(ctx, user, sess)
}

func (s *service) Like(ctx context.Context, userID string) (Decision, error) {
	defer s.lock(userID)()
	user, sess, err := s.session(ctx, userID)
	if err != nil {
		return Decision{}, err
	}
	id, added, err := sess.Like()
	if err != nil {
		return Decision{}, err
	}
	return s.decide(ctx, user, sess, id, added)
}

func (s *service) Dislike(ctx context.Context, userID string) (Decision, error) {
	defer s.lock(userID)()
	user, sess, err := s.session(ctx, userID)
	if err != nil {
		return Decision{}, err
	}
	id, err := sess.Dislike()
	if err != nil {
		return Decision{}, err
	}
	return s.decide(ctx, user, sess, id, false)
}

func (s *service) Matches(ctx context.Context, userID string) ([]Match, error) {
	defer s.lock(userID)()
	user, sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Match, 0, len(sess.Matches))
	for _, id := range sess.Matches {
		p, err := s.profiles.Get(ctx, id)
		if err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, Match{Profile: p, Compatibility: s.scorer.Score(user, p)})
	}
	return out, nil
}

func (s *service) Reset(ctx context.Context, userID string) (Card, error) {
	defer s.lock(userID)()
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return Card{}, fmt.Errorf("delete session: %w", err)
	}
	user, sess, err := s.session(ctx, userID)
	if err != nil {
		return Card{}, err
	}
	return s.card(ctx, user, sess)
}

func (s *service) decide(ctx context.Context, user profile.Profile, sess *Session, id string, added bool) (Decision, error) {
	if err := s.sessions.Save(ctx, sess); err != nil {
		return Decision{}, fmt.Errorf("save session: %w", err)
	}
	acted, err := s.profiles.Get(ctx, id)
	if err != nil {
		return Decision{}, err
	}
	out := Decision{Profile: acted, Matched: added}
	next, err := s.card(ctx, user, sess)
	if err == nil {
		out.Next = &next
	} else if !errors.Is(err, ErrNoCandidates) {
		return Decision{}, err
	}
	return out, nil
}

// session loads the user's session or starts one over the current catalog.
func (s *service) session(ctx context.Context, userID string) (profile.Profile, *Session, error) {
	user, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return profile.Profile{}, nil, err
	}
	sess, err := s.sessions.Load(ctx, userID)
	if err == nil {
		return user, sess, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return profile.Profile{}, nil, fmt.Errorf("load session: %w", err)
	}
	candidates, err := s.profiles.Candidates(ctx, userID)
	if err != nil {
		return profile.Profile{}, nil, err
	}
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	sess = NewSession(userID, ids, s.now())
	if err := s.sessions.Save(ctx, sess); err != nil {
		return profile.Profile{}, nil, fmt.Errorf("save session: %w", err)
	}
	return user, sess, nil
}

func (s *service) card(ctx context.Context, user profile.Profile, sess *Session) (Card, error) {
	id, err := sess.Current()
	if err != nil {
		return Card{}, err
	}
	p, err := s.profiles.Get(ctx, id)
	if err != nil {
		return Card{}, err
	}
	pos, total := sess.Position()
	return Card{
		Profile:       p,
		Compatibility: s.scorer.Score(user, p),
		Position:      pos,
		Total:         total,
		Laps:          sess.Laps,
	}, nil
}

func (s *service) lock(userID string) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, userID)
		}
		s.mu.Unlock()
	}
}
