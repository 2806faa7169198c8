package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"seatbooking/internal/domain"
	"seatbooking/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPG(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("SEATBOOKING_PG_DSN")
	if dsn == "" {
		t.Skip("SEATBOOKING_PG_DSN not set")
	}
	ctx := context.Background()
	db, err := NewDB(ctx, dsn, Options{}, nil)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `TRUNCATE reports, reservations, sync_queue, users, seats RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

type affectedResult struct {
	n   int64
	err error
}

func (r affectedResult) LastInsertId() (int64, error) { return 0, nil }
func (r affectedResult) RowsAffected() (int64, error) { return r.n, r.err }

func TestExpectAffected(t *testing.T) {
	assert.NoError(t, expectAffected(affectedResult{n: 1}, domain.ErrNotFound))
	assert.ErrorIs(t, expectAffected(affectedResult{}, domain.ErrConcurrentModification), domain.ErrConcurrentModification)

	err := expectAffected(affectedResult{err: errors.New("driver gone")}, domain.ErrConcurrentModification)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConcurrentModification)
	assert.Contains(t, err.Error(), "driver gone")
}

func TestTranslate(t *testing.T) {
	assert.ErrorIs(t, translate(&pq.Error{Code: "23P01", Constraint: constraintSeatOverlap}), domain.ErrSeatConflict)
	assert.ErrorIs(t, translate(&pq.Error{Code: "23P01", Constraint: constraintUserOverlap}), domain.ErrUserDoubleBooking)
	assert.ErrorIs(t, translate(&pq.Error{Code: "23505"}), domain.ErrUserExists)
	assert.ErrorIs(t, translate(&pq.Error{Code: "23514"}), domain.ErrInvalidInterval)
	assert.ErrorIs(t, translate(fmt.Errorf("wrapped: %w", &pq.Error{Code: "23503"})), domain.ErrNotFound)

	plain := errors.New("boom")
	assert.Equal(t, plain, translate(plain))
}

func TestReservationsAgainstPostgres(t *testing.T) {
	db := setupPG(t)
	ctx := context.Background()

	require.NoError(t, db.SyncSeats(ctx, []*models.Seat{{Name: "A1"}, {Name: "B2"}}))
	a1, err := db.GetSeatByName(ctx, "A1")
	require.NoError(t, err)
	b2, err := db.GetSeatByName(ctx, "B2")
	require.NoError(t, err)

	users := make([]*models.User, 8)
	for i := range users {
		users[i] = &models.User{Username: fmt.Sprintf("u%d", i), Email: fmt.Sprintf("u%d@example.com", i), PasswordHash: "x"}
		require.NoError(t, db.CreateUser(ctx, users[i]))
	}

	base := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("RaceHasOneWinner", func(t *testing.T) {
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for i := range users {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := db.InsertReservation(ctx, &models.Reservation{
					SeatID: a1.ID, UserID: users[i].ID,
					StartTime: base.Add(time.Duration(i) * time.Minute), EndTime: base.Add(time.Hour),
				})
				if err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
					return
				}
				assert.ErrorIs(t, err, domain.ErrSeatConflict)
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 1, wins)
	})

	t.Run("TouchingAdmitted", func(t *testing.T) {
		err := db.InsertReservation(ctx, &models.Reservation{
			SeatID: a1.ID, UserID: users[0].ID, StartTime: base.Add(time.Hour), EndTime: base.Add(2 * time.Hour),
		})
		require.NoError(t, err)
	})

	t.Run("UserDoubleBooking", func(t *testing.T) {
		err := db.InsertReservation(ctx, &models.Reservation{
			SeatID: b2.ID, UserID: users[0].ID, StartTime: base.Add(90 * time.Minute), EndTime: base.Add(3 * time.Hour),
		})
		assert.ErrorIs(t, err, domain.ErrUserDoubleBooking)
	})

	t.Run("Occupants", func(t *testing.T) {
		rs, err := db.FindOccupants(ctx, a1.ID, base.Add(time.Hour))
		require.NoError(t, err)
		require.Len(t, rs, 1)
		assert.Equal(t, users[0].ID, rs[0].UserID)
	})
}
