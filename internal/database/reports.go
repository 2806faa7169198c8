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

const reportColumns = `p.id, p.seat_id, COALESCE(s.name, ''), p.reporter_id, p.reported_user_id,
                 COALESCE(u.username, ''), p.reported_reservation_id, p.reported_date,
                 p.reported_time, p.reason, p.status, p.submitted_at, p.admin_notes
              FROM reports p
              LEFT JOIN seats s ON s.id = p.seat_id
              LEFT JOIN users u ON u.id = p.reported_user_id`

func (db *DB) CreateReport(ctx context.Context, r *models.Report) error {
	if r.Status == "" {
		r.Status = models.ReportStatusPending
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now()
	}

	result, err := db.ExecContext(ctx, `INSERT INTO reports (
                seat_id, reporter_id, reported_user_id, reported_reservation_id,
                reported_date, reported_time, reason, status, submitted_at, admin_notes
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SeatID, r.ReporterID, r.ReportedUserID, r.ReportedReservationID,
		r.ReportedDate, r.ReportedTime, r.Reason, r.Status, toMicros(r.SubmittedAt), r.AdminNotes)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", translateConstraint(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	r.ID = id
	return nil
}

func (db *DB) GetReport(ctx context.Context, id int64) (*models.Report, error) {
	return scanReport(db.QueryRowContext(ctx, `SELECT `+reportColumns+` WHERE p.id = ?`, id))
}

func (db *DB) UpdateReportStatus(ctx context.Context, id int64, status, notes string) error {
	result, err := db.ExecContext(ctx, `UPDATE reports SET status = ?, admin_notes = ? WHERE id = ?`, status, notes, id)
	if err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (db *DB) ListReportsByReporter(ctx context.Context, reporterID int64, limit, offset int) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + ` WHERE p.reporter_id = ?
              ORDER BY p.submitted_at DESC, p.id DESC LIMIT ? OFFSET ?`
	return db.queryReports(ctx, query, reporterID, limit, offset)
}

func (db *DB) CountReportsByReporter(ctx context.Context, reporterID int64) (int, error) {
	return db.count(ctx, `SELECT COUNT(*) FROM reports WHERE reporter_id = ?`, reporterID)
}

func (db *DB) ListReportsAbout(ctx context.Context, userID int64, limit, offset int) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + ` WHERE p.reported_user_id = ?
              ORDER BY p.submitted_at DESC, p.id DESC LIMIT ? OFFSET ?`
	return db.queryReports(ctx, query, userID, limit, offset)
}

func (db *DB) CountReportsAbout(ctx context.Context, userID int64) (int, error) {
	return db.count(ctx, `SELECT COUNT(*) FROM reports WHERE reported_user_id = ?`, userID)
}

func (db *DB) ListReports(ctx context.Context) ([]*models.Report, error) {
	return db.queryReports(ctx, `SELECT `+reportColumns+` ORDER BY p.submitted_at DESC, p.id DESC`)
}

func (db *DB) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return n, nil
}

func (db *DB) queryReports(ctx context.Context, query string, args ...interface{}) ([]*models.Report, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var out []*models.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return out, nil
}

func scanReport(row rowScanner) (*models.Report, error) {
	var (
		r                                    models.Report
		seatID, reportedUser, reportedReserv sql.NullInt64
		submitted                            int64
	)
	err := row.Scan(&r.ID, &seatID, &r.SeatName, &r.ReporterID, &reportedUser, &r.ReportedUserName,
		&reportedReserv, &r.ReportedDate, &r.ReportedTime, &r.Reason, &r.Status, &submitted, &r.AdminNotes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}
	r.SeatID = nullableID(seatID)
	r.ReportedUserID = nullableID(reportedUser)
	r.ReportedReservationID = nullableID(reportedReserv)
	r.SubmittedAt = fromMicros(submitted)
	return &r, nil
}

func nullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
