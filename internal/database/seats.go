package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"seatbooking/internal/domain"
	"seatbooking/internal/models"
)

func (db *DB) ListSeats(ctx context.Context) ([]*models.Seat, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, x, y, created_at FROM seats ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}
	defer rows.Close()

	var seats []*models.Seat
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}

func (db *DB) GetSeat(ctx context.Context, id int64) (*models.Seat, error) {
	row := db.QueryRowContext(ctx, `SELECT id, name, x, y, created_at FROM seats WHERE id = ?`, id)
	return scanSeat(row)
}

func (db *DB) GetSeatByName(ctx context.Context, name string) (*models.Seat, error) {
	row := db.QueryRowContext(ctx, `SELECT id, name, x, y, created_at FROM seats WHERE name = ?`, name)
	return scanSeat(row)
}

// SyncSeats upserts the configured layout by name. Seats missing from the
// list are kept so that historical reservations still resolve.
func (db *DB) SyncSeats(ctx context.Context, seats []*models.Seat) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO seats (id, name, x, y, created_at)
              VALUES (NULLIF(?, 0), ?, ?, ?, ?)
              ON CONFLICT(name) DO UPDATE SET x = excluded.x, y = excluded.y`
	now := toMicros(time.Now())
	for _, seat := range seats {
		if _, err := tx.ExecContext(ctx, query, seat.ID, seat.Name, seat.X, seat.Y, now); err != nil {
			return fmt.Errorf("failed to sync seat %s: %w", seat.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seats: %w", err)
	}

	db.logger.Info().Int("count", len(seats)).Msg("Seats synced")
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSeat(row rowScanner) (*models.Seat, error) {
	var (
		seat    models.Seat
		created int64
	)
	if err := row.Scan(&seat.ID, &seat.Name, &seat.X, &seat.Y, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan seat: %w", err)
	}
	seat.CreatedAt = fromMicros(created)
	return &seat, nil
}
