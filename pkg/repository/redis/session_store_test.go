package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/win/pkg/discovery"
)

// fakeRedis implements the three commands the store uses on top of a map.
type fakeRedis struct {
	goredis.Cmdable
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *goredis.StringCmd {
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	if f.err != nil {
		return goredis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttl[key] = expiration
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	n := 0
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return goredis.NewIntResult(int64(n), f.err)
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	store := NewSessionStore(rdb, time.Hour)

	sess := discovery.NewSession("user", []string{"1", "2", "3"}, time.Now())
	_, _, err := sess.Like()
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sess))

	assert.Equal(t, time.Hour, rdb.ttl["win:session:user"])

	got, err := store.Load(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, got.Matches)
	assert.Equal(t, 1, got.Index)
	assert.Equal(t, []string{"1", "2", "3"}, got.Candidates)
}

func TestLoadMissingSession(t *testing.T) {
	store := NewSessionStore(newFakeRedis(), 0)

	_, err := store.Load(context.Background(), "nobody")

	assert.ErrorIs(t, err, discovery.ErrSessionNotFound)
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(newFakeRedis(), time.Minute)
	require.NoError(t, store.Save(ctx, discovery.NewSession("user", []string{"1"}, time.Now())))

	require.NoError(t, store.Delete(ctx, "user"))

	_, err := store.Load(ctx, "user")
	assert.ErrorIs(t, err, discovery.ErrSessionNotFound)
}

func TestRedisFailureIsWrapped(t *testing.T) {
	rdb := newFakeRedis()
	rdb.err = errors.New("connection refused")
	store := NewSessionStore(rdb, time.Minute)

	_, err := store.Load(context.Background(), "user")

	assert.ErrorIs(t, err, rdb.err)
	assert.NotErrorIs(t, err, discovery.ErrSessionNotFound)
}

func TestDefaultTTL(t *testing.T) {
	rdb := newFakeRedis()
	store := NewSessionStore(rdb, 0)

	require.NoError(t, store.Save(context.Background(), discovery.NewSession("u", nil, time.Now())))

	assert.Equal(t, 24*time.Hour, rdb.ttl["win:session:u"])
}
