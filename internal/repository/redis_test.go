package repository

import (
	"context"
	"testing"
	"time"

	"seatbooking/internal/config"
	"seatbooking/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStateRepository(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := NewRedisClient(config.RedisConfig{Address: s.Addr()})
	defer Close(client)

	repo := NewRedisStateRepository(client)
	ctx := context.Background()
	require.NoError(t, Ping(ctx, client))

	t.Run("SetAndGetState", func(t *testing.T) {
		state := &models.ResetState{
			SessionID: "abc",
			Stage:     models.StageVerification,
			Email:     "alice@example.com",
			Code:      "123456",
			ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, repo.SetState(ctx, state, time.Minute))

		got, err := repo.GetState(ctx, "abc")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, state.Stage, got.Stage)
		assert.Equal(t, state.Code, got.Code)
		assert.True(t, state.ExpiresAt.Equal(got.ExpiresAt))
	})

	t.Run("TTLExpires", func(t *testing.T) {
		require.NoError(t, repo.SetState(ctx, &models.ResetState{SessionID: "ttl", Stage: models.StageEmail}, time.Minute))
		s.FastForward(2 * time.Minute)
		got, err := repo.GetState(ctx, "ttl")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("GetNonExistentState", func(t *testing.T) {
		got, err := repo.GetState(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ClearState", func(t *testing.T) {
		require.NoError(t, repo.SetState(ctx, &models.ResetState{SessionID: "gone", Stage: models.StageEmail}, 0))
		require.NoError(t, repo.ClearState(ctx, "gone"))
		got, err := repo.GetState(ctx, "gone")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("RejectsEmptySession", func(t *testing.T) {
		assert.Error(t, repo.SetState(ctx, &models.ResetState{}, time.Minute))
	})

	t.Run("CheckRateLimit", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			ok, err := repo.CheckRateLimit(ctx, "send:alice", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, ok)
		}
		ok, err := repo.CheckRateLimit(ctx, "send:alice", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		s.FastForward(2 * time.Minute)
		ok, err = repo.CheckRateLimit(ctx, "send:alice", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("ServerDown", func(t *testing.T) {
		s.Close()
		_, err := repo.GetState(ctx, "abc")
		assert.Error(t, err)
	})
}

func TestRedisStateRepository_NilClient(t *testing.T) {
	repo := NewRedisStateRepository(nil)
	ctx := context.Background()
	_, err := repo.GetState(ctx, "x")
	assert.Error(t, err)
	assert.Error(t, repo.SetState(ctx, &models.ResetState{SessionID: "x"}, 0))
	assert.Error(t, repo.ClearState(ctx, "x"))
	_, err = repo.CheckRateLimit(ctx, "x", 1, time.Second)
	assert.Error(t, err)
}
