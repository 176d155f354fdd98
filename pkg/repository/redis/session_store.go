package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/artem13815/win/pkg/discovery"
)

const keyPrefix = "win:session:"

// SessionStore keeps browse sessions in Redis. Every save refreshes the TTL, so an idle
// session expires and the next visit starts over.
type SessionStore struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewSessionStore(client goredis.Cmdable, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Load(ctx context.Context, userID string) (*discovery.Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, discovery.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var sess discovery.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.Matches == nil {
		sess.Matches = []string{}
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *discovery.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, keyPrefix+sess.UserID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
