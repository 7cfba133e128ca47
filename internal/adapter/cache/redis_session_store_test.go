package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/amit-sw/ChatAuthenticated/internal/domain"
)

func TestRedisSessionStore_MissReadsAsAbsent(t *testing.T) {
	store := NewRedisSessionStore(newFakeRedis(), time.Hour)

	session, err := store.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestRedisSessionStore_RoundTrip(t *testing.T) {
	fake := newFakeRedis()
	store := NewRedisSessionStore(fake, time.Hour)
	ctx := context.Background()

	session := domain.Session{
		AccessToken: "at-1",
		TokenType:   "bearer",
		User: domain.User{
			ID:           "u-1",
			Email:        "user@x.com",
			UserMetadata: map[string]any{"email_verified": true},
		},
	}
	require.NoError(t, store.Put(ctx, "sid-1", session))
	require.Contains(t, fake.data, "session:sid-1")
	require.Equal(t, time.Hour, fake.ttls["session:sid-1"])

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "at-1", got.AccessToken)
	require.Equal(t, "user@x.com", got.User.Email)
	require.True(t, got.User.EmailVerified())
}

func TestRedisSessionStore_Delete(t *testing.T) {
	fake := newFakeRedis()
	store := NewRedisSessionStore(fake, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", domain.Session{AccessToken: "at-1"}))
	require.NoError(t, store.Delete(ctx, "sid-1"))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.Nil(t, got)

	// deleting a key that was never stored is not an error
	require.NoError(t, store.Delete(ctx, "sid-2"))
}

func TestRedisSessionStore_CorruptPayload(t *testing.T) {
	fake := newFakeRedis()
	fake.data["session:sid-1"] = "not-json"
	store := NewRedisSessionStore(fake, time.Hour)

	_, err := store.Get(context.Background(), "sid-1")
	require.ErrorContains(t, err, "decode session")
}

func TestNewRedisSessionStore_DefaultTTL(t *testing.T) {
	fake := newFakeRedis()
	store := NewRedisSessionStore(fake, 0)

	require.NoError(t, store.Put(context.Background(), "sid-1", domain.Session{AccessToken: "at-1"}))
	require.Equal(t, 12*time.Hour, fake.ttls["session:sid-1"])
}

// fakeRedis implements the three commands the store issues; embedding the
// interface satisfies the rest.
type fakeRedis struct {
	redis.UniversalClient
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	value, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	payload, ok := value.([]byte)
	if !ok {
		return redis.NewStatusResult("", redis.ErrClosed)
	}
	f.data[key] = string(payload)
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			delete(f.ttls, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}
