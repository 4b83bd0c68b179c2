package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, func() {
		client.Close()
		mr.Close()
	}
}

func TestSessionService_Create(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	svc := NewSessionService(client, nil)
	ctx := context.Background()

	session := &Session{
		StaffID:   "staff-1",
		Position:  "agent",
		IPAddress: "10.0.0.5",
		UserAgent: "Mozilla/5.0",
	}

	err := svc.Create(ctx, session)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.False(t, session.ExpiresAt.IsZero())
}

func TestSessionService_Get(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	svc := NewSessionService(client, nil)
	ctx := context.Background()

	session := &Session{
		StaffID:  "staff-1",
		Position: "manager",
	}
	err := svc.Create(ctx, session)
	require.NoError(t, err)

	retrieved, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, "staff-1", retrieved.StaffID)
	assert.Equal(t, "manager", retrieved.Position)
}

func TestSessionService_Get_NotFound(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	svc := NewSessionService(client, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, "no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_Delete(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	svc := NewSessionService(client, nil)
	ctx := context.Background()

	session := &Session{StaffID: "staff-1"}
	require.NoError(t, svc.Create(ctx, session))

	require.NoError(t, svc.Delete(ctx, session.ID))

	_, err := svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting a missing session is a no-op.
	assert.NoError(t, svc.Delete(ctx, session.ID))
}

func TestSessionService_DeleteByStaffID(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	svc := NewSessionService(client, nil)
	ctx := context.Background()

	first := &Session{StaffID: "staff-1"}
	second := &Session{StaffID: "staff-1"}
	other := &Session{StaffID: "staff-2"}
	require.NoError(t, svc.Create(ctx, first))
	require.NoError(t, svc.Create(ctx, second))
	require.NoError(t, svc.Create(ctx, other))

	require.NoError(t, svc.DeleteByStaffID(ctx, "staff-1"))

	_, err := svc.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Get(ctx, second.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Other staff keep their sessions.
	retrieved, err := svc.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "staff-2", retrieved.StaffID)
}

func TestSessionService_RefreshTokenRevocation(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	svc := NewSessionService(client, nil)
	ctx := context.Background()

	revoked, err := svc.IsRefreshTokenRevoked(ctx, "token-abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.RevokeRefreshToken(ctx, "token-abc", time.Hour))

	revoked, err = svc.IsRefreshTokenRevoked(ctx, "token-abc")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestSessionService_RevokeExpiredToken(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	svc := NewSessionService(client, nil)
	ctx := context.Background()

	// A token past its expiry needs no blacklist entry.
	require.NoError(t, svc.RevokeRefreshToken(ctx, "stale-token", -time.Minute))

	revoked, err := svc.IsRefreshTokenRevoked(ctx, "stale-token")
	require.NoError(t, err)
	assert.False(t, revoked)
}
