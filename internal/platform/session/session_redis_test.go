package session

import (
	"context"
	"testing"
	"time"

	"movie_browser/internal/feature/auth/domain/entity"
	"movie_browser/internal/feature/auth/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// createTestSession creates a session entity for testing.
func createTestSession(id, userID string, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestNewSessionRedis(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.client, "client is nil")
	assert.Equal(t, "session", repo.prefix)
}

func TestSessionRedis_CreateAndFind(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	s := createTestSession("session-001", "64f0c6d9e13b4a0c8a1b2c3d", 7*24*time.Hour)
	require.NoError(t, repo.Create(ctx, s))

	found, err := repo.FindByID(ctx, "session-001")
	require.NoError(t, err)
	assert.Equal(t, s.ID, found.ID)
	assert.Equal(t, s.UserID, found.UserID)
	assert.True(t, found.IsValid())
}

func TestSessionRedis_Create_AlreadyExpired(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	s := createTestSession("session-002", "64f0c6d9e13b4a0c8a1b2c3d", -time.Hour)
	err := repo.Create(context.Background(), s)
	assert.Error(t, err, "creating an already expired session should fail")
}

func TestSessionRedis_FindByID_NotFound(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	_, err := repo.FindByID(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_Revoke(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	s := createTestSession("session-003", "64f0c6d9e13b4a0c8a1b2c3d", time.Hour)
	require.NoError(t, repo.Create(ctx, s))
	require.NoError(t, repo.Revoke(ctx, s.ID))

	found, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, found.IsRevoked())
	assert.False(t, found.IsValid())
}

func TestSessionRedis_CountByUserID(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()
	userID := "64f0c6d9e13b4a0c8a1b2c3d"

	require.NoError(t, repo.Create(ctx, createTestSession("s1", userID, time.Hour)))
	require.NoError(t, repo.Create(ctx, createTestSession("s2", userID, time.Hour)))
	require.NoError(t, repo.Create(ctx, createTestSession("other", "64f0c6d9e13b4a0c8a1b2c3e", time.Hour)))

	count, err := repo.CountByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Revoked sessions are not counted
	require.NoError(t, repo.Revoke(ctx, "s1"))
	count, err = repo.CountByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSessionRedis_DeleteOldestByUserID(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()
	userID := "64f0c6d9e13b4a0c8a1b2c3d"

	oldest := createTestSession("old", userID, time.Hour)
	oldest.CreatedAt = time.Now().Add(-time.Hour)
	newest := createTestSession("new", userID, time.Hour)

	require.NoError(t, repo.Create(ctx, oldest))
	require.NoError(t, repo.Create(ctx, newest))

	require.NoError(t, repo.DeleteOldestByUserID(ctx, userID))

	_, err := repo.FindByID(ctx, "old")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)

	_, err = repo.FindByID(ctx, "new")
	assert.NoError(t, err)
}

func TestSessionRedis_DeleteOldestByUserID_NoSessions(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	err := repo.DeleteOldestByUserID(context.Background(), "64f0c6d9e13b4a0c8a1b2c3d")
	assert.NoError(t, err, "deleting with no sessions should be a no-op")
}
