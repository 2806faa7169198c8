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

const reservationColumns = `r.id, r.seat_id, s.name, r.user_id, u.username,
                 r.start_time, r.end_time, r.status, r.created_at
              FROM reservations r
              JOIN seats s ON s.id = r.seat_id
              JOIN users u ON u.id = r.user_id`

// FindOverlapping returns reservations on seatID overlapping [start, end).
// An empty status matches every status.
func (db *DB) FindOverlapping(ctx context.Context, seatID int64, start, end time.Time, status string) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
              WHERE r.seat_id = ? AND (? = '' OR r.status = ?)
                AND r.start_time < ? AND r.end_time > ?
              ORDER BY r.start_time`
	return db.queryReservations(ctx, query, seatID, status, status, toMicros(end), toMicros(start))
}

// FindOverlappingForUser is FindOverlapping scoped to a user across all seats.
func (db *DB) FindOverlappingForUser(ctx context.Context, userID int64, start, end time.Time, status string) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
              WHERE r.user_id = ? AND (? = '' OR r.status = ?)
                AND r.start_time < ? AND r.end_time > ?
              ORDER BY r.start_time`
	return db.queryReservations(ctx, query, userID, status, status, toMicros(end), toMicros(start))
}

// InsertReservation re-runs both overlap checks and inserts inside one
// transaction. The schema triggers reject anything that slips past.
func (db *DB) InsertReservation(ctx context.Context, r *models.Reservation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	start, end := toMicros(r.StartTime), toMicros(r.EndTime)

	var n int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations
              WHERE seat_id = ? AND status = ? AND start_time < ? AND end_time > ?`,
		r.SeatID, models.StatusReserved, end, start).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to check seat overlap in tx: %w", err)
	}
	if n > 0 {
		return domain.ErrSeatConflict
	}

	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations
              WHERE user_id = ? AND status = ? AND start_time < ? AND end_time > ?`,
		r.UserID, models.StatusReserved, end, start).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to check user overlap in tx: %w", err)
	}
	if n > 0 {
		return domain.ErrUserDoubleBooking
	}

	if r.Status == "" {
		r.Status = models.StatusReserved
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	result, err := tx.ExecContext(ctx, `INSERT INTO reservations (seat_id, user_id, start_time, end_time, status, created_at)
              VALUES (?, ?, ?, ?, ?, ?)`,
		r.SeatID, r.UserID, start, end, r.Status, toMicros(r.CreatedAt))
	if err != nil {
		if mapped := translateConstraint(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to insert reservation in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reservation: %w", err)
	}
	r.ID = id
	return nil
}

// GetReservation looks a reservation up, scoped to ownerID when given.
func (db *DB) GetReservation(ctx context.Context, id int64, ownerID *int64) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` WHERE r.id = ?`
	args := []interface{}{id}
	if ownerID != nil {
		query += ` AND r.user_id = ?`
		args = append(args, *ownerID)
	}
	return scanReservation(db.QueryRowContext(ctx, query, args...))
}

func (db *DB) UpdateReservation(ctx context.Context, r *models.Reservation, expectedStatus string) error {
	result, err := db.ExecContext(ctx, `UPDATE reservations SET status = ?, start_time = ?, end_time = ?
              WHERE id = ? AND status = ?`,
		r.Status, toMicros(r.StartTime), toMicros(r.EndTime), r.ID, expectedStatus)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", translateConstraint(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}

// FindOccupants returns reserved rows on seatID containing at, latest start first.
func (db *DB) FindOccupants(ctx context.Context, seatID int64, at time.Time) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
              WHERE r.seat_id = ? AND r.status = ? AND r.start_time <= ? AND r.end_time > ?
              ORDER BY r.start_time DESC, r.id DESC`
	ts := toMicros(at)
	return db.queryReservations(ctx, query, seatID, models.StatusReserved, ts, ts)
}

func (db *DB) ListReservedAt(ctx context.Context, at time.Time) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
              WHERE r.status = ? AND r.start_time <= ? AND r.end_time > ?
              ORDER BY r.seat_id`
	ts := toMicros(at)
	return db.queryReservations(ctx, query, models.StatusReserved, ts, ts)
}

func (db *DB) ListReservedBetween(ctx context.Context, start, end time.Time) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
              WHERE r.status = ? AND r.start_time < ? AND r.end_time > ?
              ORDER BY r.seat_id, r.start_time`
	return db.queryReservations(ctx, query, models.StatusReserved, toMicros(end), toMicros(start))
}

func (db *DB) ListUserReservations(ctx context.Context, userID int64, limit, offset int) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
              WHERE r.user_id = ?
              ORDER BY r.start_time DESC, r.id DESC
              LIMIT ? OFFSET ?`
	return db.queryReservations(ctx, query, userID, limit, offset)
}

func (db *DB) CountUserReservations(ctx context.Context, userID int64) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}

// GetReservationsByDateRange returns every reservation touching [start, end), any status.
func (db *DB) GetReservationsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
              WHERE r.start_time < ? AND r.end_time > ?
              ORDER BY r.start_time, r.id`
	return db.queryReservations(ctx, query, toMicros(end), toMicros(start))
}

func (db *DB) queryReservations(ctx context.Context, query string, args ...interface{}) ([]*models.Reservation, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	var out []*models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reservations: %w", err)
	}
	return out, nil
}

func scanReservation(row rowScanner) (*models.Reservation, error) {
	var (
		r                   models.Reservation
		start, end, created int64
	)
	err := row.Scan(&r.ID, &r.SeatID, &r.SeatName, &r.UserID, &r.UserName, &start, &end, &r.Status, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan reservation: %w", err)
	}
	r.StartTime = fromMicros(start)
	r.EndTime = fromMicros(end)
	r.CreatedAt = fromMicros(created)
	return &r, nil
}
