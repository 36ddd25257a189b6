//go:build integration

package lookupcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"importintel/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
	ctx   context.Context
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = NewRedisStore(s.redis.Client)
	s.ctx = context.Background()
}

func (s *RedisStoreSuite) SetupTest() {
	require.NoError(s.T(), s.redis.FlushAll(s.ctx))
}

func (s *RedisStoreSuite) TestRoundTrip() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	entry := Entry{
		Key:        Key(KindResolution, "supra"),
		Payload:    []byte(`{"make":"Toyota"}`),
		CreatedAt:  now,
		ValidUntil: now.Add(time.Hour),
	}
	s.Require().NoError(s.store.Put(s.ctx, entry))

	got, err := s.store.Get(s.ctx, entry.Key)
	s.Require().NoError(err)
	s.Equal(entry.Payload, got.Payload)
	s.True(entry.CreatedAt.Equal(got.CreatedAt))
	s.Equal(entry.AccessCount, got.AccessCount)
}

func (s *RedisStoreSuite) TestMissingKey() {
	_, err := s.store.Get(s.ctx, Key(KindResolution, "absent"))
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *RedisStoreSuite) TestTouch() {
	now := time.Now().UTC()
	entry := Entry{
		Key:        Key(KindResolution, "supra"),
		Payload:    []byte("payload"),
		CreatedAt:  now,
		ValidUntil: now.Add(time.Hour),
	}
	s.Require().NoError(s.store.Put(s.ctx, entry))

	s.Require().NoError(s.store.Touch(s.ctx, entry.Key))
	s.Require().NoError(s.store.Touch(s.ctx, entry.Key))

	got, err := s.store.Get(s.ctx, entry.Key)
	s.Require().NoError(err)
	s.Equal(int64(2), got.AccessCount)
	s.Equal(entry.Payload, got.Payload)

	// Touch keeps the server-side TTL.
	ttl, err := s.redis.Client.TTL(s.ctx, "lookup:"+entry.Key).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *RedisStoreSuite) TestServerSideExpiry() {
	now := time.Now().UTC()
	entry := Entry{
		Key:        Key(KindResolution, "blink"),
		Payload:    []byte("payload"),
		CreatedAt:  now,
		ValidUntil: now.Add(50 * time.Millisecond),
	}
	s.Require().NoError(s.store.Put(s.ctx, entry))

	time.Sleep(100 * time.Millisecond)

	_, err := s.store.Get(s.ctx, entry.Key)
	s.Require().ErrorIs(err, ErrNotFound)
}
