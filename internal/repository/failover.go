package repository

import (
	"context"
	"sync/atomic"
	"time"

	"seatbooking/internal/domain"
	"seatbooking/internal/models"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverStateRepository serves from primary until it errors, then from
// fallback, probing primary again once per recoveryInterval.
type FailoverStateRepository struct {
	primary   domain.ResetStateRepository
	fallback  domain.ResetStateRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

var _ domain.ResetStateRepository = (*FailoverStateRepository)(nil)

func NewFailoverStateRepository(primary, fallback domain.ResetStateRepository, logger *zerolog.Logger) *FailoverStateRepository {
	return &FailoverStateRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// usePrimary reports whether the next call should try primary.
func (r *FailoverStateRepository) usePrimary() bool {
	if !r.isDown.Load() {
		return true
	}
	last := time.Unix(0, r.lastCheck.Load())
	return time.Since(last) > recoveryInterval
}

func (r *FailoverStateRepository) observe(err error) {
	if err == nil {
		if r.isDown.Swap(false) {
			r.logger.Info().Msg("Primary state repository recovered")
		}
		return
	}
	if !r.isDown.Swap(true) {
		r.logger.Error().Err(err).Msg("Primary state repository failed, falling back to memory")
	}
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverStateRepository) GetState(ctx context.Context, sessionID string) (*models.ResetState, error) {
	if r.usePrimary() {
		state, err := r.primary.GetState(ctx, sessionID)
		r.observe(err)
		if err == nil {
			return state, nil
		}
	}
	return r.fallback.GetState(ctx, sessionID)
}

func (r *FailoverStateRepository) SetState(ctx context.Context, state *models.ResetState, ttl time.Duration) error {
	if r.usePrimary() {
		err := r.primary.SetState(ctx, state, ttl)
		r.observe(err)
		if err == nil {
			return nil
		}
	}
	return r.fallback.SetState(ctx, state, ttl)
}

func (r *FailoverStateRepository) ClearState(ctx context.Context, sessionID string) error {
	if r.usePrimary() {
		err := r.primary.ClearState(ctx, sessionID)
		r.observe(err)
		if err == nil {
			// a session may have been written while primary was down
			_ = r.fallback.ClearState(ctx, sessionID)
			return nil
		}
	}
	return r.fallback.ClearState(ctx, sessionID)
}

func (r *FailoverStateRepository) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if r.usePrimary() {
		allowed, err := r.primary.CheckRateLimit(ctx, key, limit, window)
		r.observe(err)
		if err == nil {
			return allowed, nil
		}
	}
	return r.fallback.CheckRateLimit(ctx, key, limit, window)
}
