package database

import (
	"context"
	"io"
	"testing"
	"time"

	"seatbooking/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedSeat(t *testing.T, db *DB, name string) *models.Seat {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, db.SyncSeats(ctx, []*models.Seat{{Name: name}}))
	seat, err := db.GetSeatByName(ctx, name)
	require.NoError(t, err)
	return seat
}

func seedUser(t *testing.T, db *DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.CreateUser(context.Background(), u))
	return u
}

// at builds 2024-01-01 hh:mm UTC.
func at(hh, mm int) time.Time {
	return time.Date(2024, 1, 1, hh, mm, 0, 0, time.UTC)
}

func reserve(t *testing.T, db *DB, seatID, userID int64, start, end time.Time) *models.Reservation {
	t.Helper()
	r := &models.Reservation{SeatID: seatID, UserID: userID, StartTime: start, EndTime: end}
	require.NoError(t, db.InsertReservation(context.Background(), r))
	return r
}
