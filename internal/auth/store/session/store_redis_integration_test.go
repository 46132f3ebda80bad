//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"sesaco/internal/auth/models"
	"sesaco/internal/auth/store/session"
	"sesaco/pkg/platform/sentinel"
	"sesaco/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.Redis
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = session.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func makeSession(ttl time.Duration) models.Session {
	now := time.Now()
	return models.Session{
		ID:          uuid.NewString(),
		InspectorID: "1722212253",
		Device:      "Firefox 128.0 (Linux x86_64)",
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	record := makeSession(time.Hour)
	s.Require().NoError(s.store.Save(ctx, record))

	found, err := s.store.Find(ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(record.InspectorID, found.InspectorID)
	s.Equal(record.Device, found.Device)
}

func (s *RedisStoreSuite) TestExpiredSessionIsRejectedOnSave() {
	record := makeSession(-time.Minute)
	s.Require().ErrorIs(s.store.Save(context.Background(), record), sentinel.ErrExpired)
}

func (s *RedisStoreSuite) TestTTLEviction() {
	ctx := context.Background()
	record := makeSession(time.Second)
	s.Require().NoError(s.store.Save(ctx, record))

	s.Require().Eventually(func() bool {
		_, err := s.store.Find(ctx, record.ID)
		return err != nil
	}, 5*time.Second, 200*time.Millisecond, "session should expire with its TTL")
}

func (s *RedisStoreSuite) TestRevoke() {
	ctx := context.Background()
	record := makeSession(time.Hour)
	s.Require().NoError(s.store.Save(ctx, record))

	s.Require().NoError(s.store.Revoke(ctx, record.ID))
	_, err := s.store.Find(ctx, record.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	// Revoking again is a no-op.
	s.Require().NoError(s.store.Revoke(ctx, record.ID))
}
