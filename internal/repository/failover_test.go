package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"seatbooking/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetState(ctx context.Context, sessionID string) (*models.ResetState, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResetState), args.Error(1)
}

func (m *mockRepo) SetState(ctx context.Context, state *models.ResetState, ttl time.Duration) error {
	args := m.Called(ctx, state, ttl)
	return args.Error(0)
}

func (m *mockRepo) ClearState(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *mockRepo) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func TestFailoverStateRepository(t *testing.T) {
	primary := new(mockRepo)
	fallback := new(mockRepo)
	logger := zerolog.New(io.Discard)
	repo := NewFailoverStateRepository(primary, fallback, &logger)
	ctx := context.Background()

	t.Run("PrimarySuccess", func(t *testing.T) {
		state := &models.ResetState{SessionID: "s"}
		primary.On("GetState", ctx, "s").Return(state, nil).Once()

		got, err := repo.GetState(ctx, "s")
		assert.NoError(t, err)
		assert.Equal(t, state, got)
		primary.AssertExpectations(t)
	})

	t.Run("PrimaryFailsFallbackServes", func(t *testing.T) {
		state := &models.ResetState{SessionID: "s", Stage: models.StageEmail}
		primary.On("SetState", ctx, state, time.Minute).Return(errors.New("redis down")).Once()
		fallback.On("SetState", ctx, state, time.Minute).Return(nil).Once()

		require.NoError(t, repo.SetState(ctx, state, time.Minute))
		assert.True(t, repo.isDown.Load())

		// while down, primary is not consulted
		fallback.On("GetState", ctx, "s").Return(state, nil).Once()
		got, err := repo.GetState(ctx, "s")
		require.NoError(t, err)
		assert.Equal(t, state, got)

		fallback.On("CheckRateLimit", ctx, "k", 3, time.Minute).Return(true, nil).Once()
		allowed, err := repo.CheckRateLimit(ctx, "k", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)

		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("Recovery", func(t *testing.T) {
		repo.lastCheck.Store(time.Now().Add(-2 * recoveryInterval).UnixNano())
		primary.On("ClearState", ctx, "s").Return(nil).Once()
		fallback.On("ClearState", ctx, "s").Return(nil).Once()

		require.NoError(t, repo.ClearState(ctx, "s"))
		assert.False(t, repo.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})
}
