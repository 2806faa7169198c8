package repository

import (
	"context"
	"sync"
	"time"

	"seatbooking/internal/models"
)

type memoryEntry struct {
	state     models.ResetState
	expiresAt time.Time
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

// MemoryStateRepository is the in-process fallback for Redis.
type MemoryStateRepository struct {
	mu         sync.Mutex
	states     map[string]memoryEntry
	rateLimits map[string]*rateLimitEntry
	now        func() time.Time
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{
		states:     make(map[string]memoryEntry),
		rateLimits: make(map[string]*rateLimitEntry),
		now:        time.Now,
	}
}

func (r *MemoryStateRepository) GetState(_ context.Context, sessionID string) (*models.ResetState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.states[sessionID]
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && !r.now().Before(entry.expiresAt) {
		delete(r.states, sessionID)
		return nil, nil
	}
	state := entry.state
	return &state, nil
}

func (r *MemoryStateRepository) SetState(_ context.Context, state *models.ResetState, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := memoryEntry{state: *state}
	if ttl > 0 {
		entry.expiresAt = r.now().Add(ttl)
	}
	r.states[state.SessionID] = entry
	return nil
}

func (r *MemoryStateRepository) ClearState(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.states, sessionID)
	r.mu.Unlock()
	return nil
}

func (r *MemoryStateRepository) CheckRateLimit(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	entry, ok := r.rateLimits[key]
	if !ok || now.After(entry.expiresAt) {
		entry = &rateLimitEntry{expiresAt: now.Add(window)}
		r.rateLimits[key] = entry
	}
	entry.count++
	return entry.count <= limit, nil
}
