package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"seatbooking/internal/domain"
	"seatbooking/internal/models"
)

const advisorySeatClass = 1

const reservationSelect = `SELECT r.id, r.seat_id, s.name AS seat_name, r.user_id, u.username AS user_name,
            r.start_time, r.end_time, r.status, r.created_at
        FROM reservations r
        JOIN seats s ON s.id = r.seat_id
        JOIN users u ON u.id = r.user_id`

const reportSelect = `SELECT p.id, p.seat_id, COALESCE(s.name, '') AS seat_name, p.reporter_id,
            p.reported_user_id, COALESCE(u.username, '') AS reported_user_name,
            p.reported_reservation_id, p.reported_date, p.reported_time, p.reason,
            p.status, p.submitted_at, p.admin_notes
        FROM reports p
        LEFT JOIN seats s ON s.id = p.seat_id
        LEFT JOIN users u ON u.id = p.reported_user_id`

const userSelect = `SELECT id, username, email, password_hash, is_admin, created_at, updated_at FROM users`

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// Seats

// expectAffected returns missing when res touched no row.
func expectAffected(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return missing
	}
	return nil
}

func (db *DB) ListSeats(ctx context.Context) ([]*models.Seat, error) {
	var rows []seatRow
	if err := db.SelectContext(ctx, &rows, `SELECT id, name, x, y, created_at FROM seats ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}
	out := make([]*models.Seat, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

func (db *DB) GetSeat(ctx context.Context, id int64) (*models.Seat, error) {
	var row seatRow
	if err := db.GetContext(ctx, &row, `SELECT id, name, x, y, created_at FROM seats WHERE id = $1`, id); err != nil {
		return nil, notFound(err)
	}
	return row.model(), nil
}

func (db *DB) GetSeatByName(ctx context.Context, name string) (*models.Seat, error) {
	var row seatRow
	if err := db.GetContext(ctx, &row, `SELECT id, name, x, y, created_at FROM seats WHERE name = $1`, name); err != nil {
		return nil, notFound(err)
	}
	return row.model(), nil
}

func (db *DB) SyncSeats(ctx context.Context, seats []*models.Seat) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, seat := range seats {
		var err error
		if seat.ID > 0 {
			_, err = tx.ExecContext(ctx, `INSERT INTO seats (id, name, x, y) VALUES ($1, $2, $3, $4)
                ON CONFLICT (name) DO UPDATE SET x = EXCLUDED.x, y = EXCLUDED.y`,
				seat.ID, seat.Name, seat.X, seat.Y)
		} else {
			_, err = tx.ExecContext(ctx, `INSERT INTO seats (name, x, y) VALUES ($1, $2, $3)
                ON CONFLICT (name) DO UPDATE SET x = EXCLUDED.x, y = EXCLUDED.y`,
				seat.Name, seat.X, seat.Y)
		}
		if err != nil {
			return fmt.Errorf("failed to sync seat %s: %w", seat.Name, err)
		}
	}
	// explicit ids leave the serial behind
	if _, err := tx.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('seats', 'id'), COALESCE(MAX(id), 1)) FROM seats`); err != nil {
		return fmt.Errorf("failed to reset seat sequence: %w", err)
	}
	return tx.Commit()
}

// Reservations

func (db *DB) FindOverlapping(ctx context.Context, seatID int64, start, end time.Time, status string) ([]*models.Reservation, error) {
	var rows []reservationRow
	err := db.SelectContext(ctx, &rows, reservationSelect+`
        WHERE r.seat_id = $1 AND ($2 = '' OR r.status = $2) AND r.start_time < $3 AND r.end_time > $4
        ORDER BY r.start_time`, seatID, status, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping reservations: %w", err)
	}
	return reservationModels(rows), nil
}

func (db *DB) FindOverlappingForUser(ctx context.Context, userID int64, start, end time.Time, status string) ([]*models.Reservation, error) {
	var rows []reservationRow
	err := db.SelectContext(ctx, &rows, reservationSelect+`
        WHERE r.user_id = $1 AND ($2 = '' OR r.status = $2) AND r.start_time < $3 AND r.end_time > $4
        ORDER BY r.start_time`, userID, status, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping user reservations: %w", err)
	}
	return reservationModels(rows), nil
}

// InsertReservation serializes writers per seat with a transaction-scoped
// advisory lock; the exclusion constraints still reject anything else.
func (db *DB) InsertReservation(ctx context.Context, r *models.Reservation) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2::int)`, advisorySeatClass, r.SeatID); err != nil {
		return fmt.Errorf("failed to lock seat: %w", err)
	}

	var n int
	if err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM reservations
        WHERE seat_id = $1 AND status = $2 AND start_time < $3 AND end_time > $4`,
		r.SeatID, models.StatusReserved, r.EndTime, r.StartTime); err != nil {
		return fmt.Errorf("failed to check seat overlap in tx: %w", err)
	}
	if n > 0 {
		return domain.ErrSeatConflict
	}

	if err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM reservations
        WHERE user_id = $1 AND status = $2 AND start_time < $3 AND end_time > $4`,
		r.UserID, models.StatusReserved, r.EndTime, r.StartTime); err != nil {
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

	err = tx.GetContext(ctx, &r.ID, `INSERT INTO reservations (seat_id, user_id, start_time, end_time, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		r.SeatID, r.UserID, r.StartTime, r.EndTime, r.Status, r.CreatedAt)
	if err != nil {
		if mapped := translate(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to insert reservation in tx: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reservation: %w", translate(err))
	}
	return nil
}

func (db *DB) GetReservation(ctx context.Context, id int64, ownerID *int64) (*models.Reservation, error) {
	var row reservationRow
	query := reservationSelect + ` WHERE r.id = $1`
	args := []interface{}{id}
	if ownerID != nil {
		query += ` AND r.user_id = $2`
		args = append(args, *ownerID)
	}
	if err := db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, notFound(err)
	}
	return row.model(), nil
}

func (db *DB) UpdateReservation(ctx context.Context, r *models.Reservation, expectedStatus string) error {
	res, err := db.ExecContext(ctx, `UPDATE reservations SET status = $1, start_time = $2, end_time = $3
        WHERE id = $4 AND status = $5`, r.Status, r.StartTime, r.EndTime, r.ID, expectedStatus)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", translate(err))
	}
	return expectAffected(res, domain.ErrConcurrentModification)
}

func (db *DB) FindOccupants(ctx context.Context, seatID int64, at time.Time) ([]*models.Reservation, error) {
	var rows []reservationRow
	err := db.SelectContext(ctx, &rows, reservationSelect+`
        WHERE r.seat_id = $1 AND r.status = $2 AND r.start_time <= $3 AND r.end_time > $3
        ORDER BY r.start_time DESC, r.id DESC`, seatID, models.StatusReserved, at)
	if err != nil {
		return nil, fmt.Errorf("failed to find occupants: %w", err)
	}
	return reservationModels(rows), nil
}

func (db *DB) ListReservedAt(ctx context.Context, at time.Time) ([]*models.Reservation, error) {
	var rows []reservationRow
	err := db.SelectContext(ctx, &rows, reservationSelect+`
        WHERE r.status = $1 AND r.start_time <= $2 AND r.end_time > $2
        ORDER BY r.seat_id`, models.StatusReserved, at)
	if err != nil {
		return nil, fmt.Errorf("failed to list reserved seats: %w", err)
	}
	return reservationModels(rows), nil
}

func (db *DB) ListReservedBetween(ctx context.Context, start, end time.Time) ([]*models.Reservation, error) {
	var rows []reservationRow
	err := db.SelectContext(ctx, &rows, reservationSelect+`
        WHERE r.status = $1 AND r.start_time < $2 AND r.end_time > $3
        ORDER BY r.seat_id, r.start_time`, models.StatusReserved, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to list reserved range: %w", err)
	}
	return reservationModels(rows), nil
}

func (db *DB) ListUserReservations(ctx context.Context, userID int64, limit, offset int) ([]*models.Reservation, error) {
	var rows []reservationRow
	err := db.SelectContext(ctx, &rows, reservationSelect+`
        WHERE r.user_id = $1 ORDER BY r.start_time DESC, r.id DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list user reservations: %w", err)
	}
	return reservationModels(rows), nil
}

func (db *DB) CountUserReservations(ctx context.Context, userID int64) (int, error) {
	return db.count(ctx, `SELECT COUNT(*) FROM reservations WHERE user_id = $1`, userID)
}

func (db *DB) GetReservationsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Reservation, error) {
	var rows []reservationRow
	err := db.SelectContext(ctx, &rows, reservationSelect+`
        WHERE r.start_time < $1 AND r.end_time > $2 ORDER BY r.start_time, r.id`, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations by range: %w", err)
	}
	return reservationModels(rows), nil
}

// Reports

func (db *DB) CreateReport(ctx context.Context, r *models.Report) error {
	if r.Status == "" {
		r.Status = models.ReportStatusPending
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now()
	}
	err := db.GetContext(ctx, &r.ID, `INSERT INTO reports (
            seat_id, reporter_id, reported_user_id, reported_reservation_id,
            reported_date, reported_time, reason, status, submitted_at, admin_notes
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		r.SeatID, r.ReporterID, r.ReportedUserID, r.ReportedReservationID,
		r.ReportedDate, r.ReportedTime, r.Reason, r.Status, r.SubmittedAt, r.AdminNotes)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", translate(err))
	}
	return nil
}

func (db *DB) GetReport(ctx context.Context, id int64) (*models.Report, error) {
	var row reportRow
	if err := db.GetContext(ctx, &row, reportSelect+` WHERE p.id = $1`, id); err != nil {
		return nil, notFound(err)
	}
	return row.model(), nil
}

func (db *DB) UpdateReportStatus(ctx context.Context, id int64, status, notes string) error {
	res, err := db.ExecContext(ctx, `UPDATE reports SET status = $1, admin_notes = $2 WHERE id = $3`, status, notes, id)
	if err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}
	return expectAffected(res, domain.ErrNotFound)
}

func (db *DB) ListReportsByReporter(ctx context.Context, reporterID int64, limit, offset int) ([]*models.Report, error) {
	return db.selectReports(ctx, reportSelect+` WHERE p.reporter_id = $1
        ORDER BY p.submitted_at DESC, p.id DESC LIMIT $2 OFFSET $3`, reporterID, limit, offset)
}

func (db *DB) CountReportsByReporter(ctx context.Context, reporterID int64) (int, error) {
	return db.count(ctx, `SELECT COUNT(*) FROM reports WHERE reporter_id = $1`, reporterID)
}

func (db *DB) ListReportsAbout(ctx context.Context, userID int64, limit, offset int) ([]*models.Report, error) {
	return db.selectReports(ctx, reportSelect+` WHERE p.reported_user_id = $1
        ORDER BY p.submitted_at DESC, p.id DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
}

func (db *DB) CountReportsAbout(ctx context.Context, userID int64) (int, error) {
	return db.count(ctx, `SELECT COUNT(*) FROM reports WHERE reported_user_id = $1`, userID)
}

func (db *DB) ListReports(ctx context.Context) ([]*models.Report, error) {
	return db.selectReports(ctx, reportSelect+` ORDER BY p.submitted_at DESC, p.id DESC`)
}

func (db *DB) selectReports(ctx context.Context, query string, args ...interface{}) ([]*models.Report, error) {
	var rows []reportRow
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	out := make([]*models.Report, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

func (db *DB) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	if err := db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return n, nil
}

// Users

func (db *DB) CreateUser(ctx context.Context, u *models.User) error {
	var row userRow
	err := db.GetContext(ctx, &row, `INSERT INTO users (username, email, password_hash, is_admin)
        VALUES ($1, $2, $3, $4) RETURNING id, username, email, password_hash, is_admin, created_at, updated_at`,
		u.Username, strings.TrimSpace(u.Email), u.PasswordHash, u.IsAdmin)
	if err != nil {
		if errors.Is(translate(err), domain.ErrUserExists) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	*u = *row.model()
	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return db.getUser(ctx, userSelect+` WHERE id = $1`, id)
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return db.getUser(ctx, userSelect+` WHERE username = $1`, username)
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return db.getUser(ctx, userSelect+` WHERE lower(email) = lower($1)`, strings.TrimSpace(email))
}

func (db *DB) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var row userRow
	if err := db.GetContext(ctx, &row, query, arg); err != nil {
		return nil, notFound(err)
	}
	return row.model(), nil
}

func (db *DB) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	res, err := db.ExecContext(ctx, `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, hash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return expectAffected(res, domain.ErrNotFound)
}

// Sync queue

func (db *DB) CreateSyncTask(ctx context.Context, task *models.SyncTask) error {
	if task.Status == "" {
		task.Status = "pending"
	}
	err := db.QueryRowxContext(ctx, `INSERT INTO sync_queue (task_type, reservation_id, payload, status, retry_count, last_error, next_retry_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`,
		task.TaskType, task.ReservationID, task.Payload, task.Status, task.RetryCount, task.LastError, task.NextRetryAt,
	).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sync task: %w", err)
	}
	return nil
}

func (db *DB) GetPendingSyncTasks(ctx context.Context, limit int) ([]models.SyncTask, error) {
	var rows []syncTaskRow
	err := db.SelectContext(ctx, &rows, `SELECT id, task_type, reservation_id, payload, status, retry_count,
            last_error, created_at, processed_at, next_retry_at
        FROM sync_queue
        WHERE status IN ('pending', 'retry') AND (next_retry_at IS NULL OR next_retry_at <= now())
        ORDER BY created_at ASC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending sync tasks: %w", err)
	}
	out := make([]models.SyncTask, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

func (db *DB) UpdateSyncTaskStatus(ctx context.Context, id int64, status, errMsg string, nextRetryAt *time.Time) error {
	var query string
	switch status {
	case "retry":
		query = `UPDATE sync_queue SET status = $1, last_error = $2, next_retry_at = $3, retry_count = retry_count + 1 WHERE id = $4`
	case "completed", "failed":
		query = `UPDATE sync_queue SET status = $1, last_error = $2, next_retry_at = $3, processed_at = now() WHERE id = $4`
	default:
		query = `UPDATE sync_queue SET status = $1, last_error = $2, next_retry_at = $3 WHERE id = $4`
	}
	if _, err := db.ExecContext(ctx, query, status, errMsg, nextRetryAt, id); err != nil {
		return fmt.Errorf("failed to update sync task status: %w", err)
	}
	return nil
}
