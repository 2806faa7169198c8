package postgres

import (
	"database/sql"
	"time"

	"seatbooking/internal/models"
)

type seatRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	X         int       `db:"x"`
	Y         int       `db:"y"`
	CreatedAt time.Time `db:"created_at"`
}

func (r seatRow) model() *models.Seat {
	return &models.Seat{ID: r.ID, Name: r.Name, X: r.X, Y: r.Y, CreatedAt: r.CreatedAt}
}

type reservationRow struct {
	ID        int64     `db:"id"`
	SeatID    int64     `db:"seat_id"`
	SeatName  string    `db:"seat_name"`
	UserID    int64     `db:"user_id"`
	UserName  string    `db:"user_name"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

func (r reservationRow) model() *models.Reservation {
	return &models.Reservation{
		ID:        r.ID,
		SeatID:    r.SeatID,
		SeatName:  r.SeatName,
		UserID:    r.UserID,
		UserName:  r.UserName,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

func reservationModels(rows []reservationRow) []*models.Reservation {
	out := make([]*models.Reservation, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out
}

type reportRow struct {
	ID                    int64         `db:"id"`
	SeatID                sql.NullInt64 `db:"seat_id"`
	SeatName              string        `db:"seat_name"`
	ReporterID            int64         `db:"reporter_id"`
	ReportedUserID        sql.NullInt64 `db:"reported_user_id"`
	ReportedUserName      string        `db:"reported_user_name"`
	ReportedReservationID sql.NullInt64 `db:"reported_reservation_id"`
	ReportedDate          string        `db:"reported_date"`
	ReportedTime          string        `db:"reported_time"`
	Reason                string        `db:"reason"`
	Status                string        `db:"status"`
	SubmittedAt           time.Time     `db:"submitted_at"`
	AdminNotes            string        `db:"admin_notes"`
}

func (r reportRow) model() *models.Report {
	return &models.Report{
		ID:                    r.ID,
		SeatID:                nullable(r.SeatID),
		SeatName:              r.SeatName,
		ReporterID:            r.ReporterID,
		ReportedUserID:        nullable(r.ReportedUserID),
		ReportedUserName:      r.ReportedUserName,
		ReportedReservationID: nullable(r.ReportedReservationID),
		ReportedDate:          r.ReportedDate,
		ReportedTime:          r.ReportedTime,
		Reason:                r.Reason,
		Status:                r.Status,
		SubmittedAt:           r.SubmittedAt,
		AdminNotes:            r.AdminNotes,
	}
}

type userRow struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r userRow) model() *models.User {
	return &models.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		IsAdmin:      r.IsAdmin,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type syncTaskRow struct {
	ID            int64          `db:"id"`
	TaskType      string         `db:"task_type"`
	ReservationID int64          `db:"reservation_id"`
	Payload       string         `db:"payload"`
	Status        string         `db:"status"`
	RetryCount    int            `db:"retry_count"`
	LastError     sql.NullString `db:"last_error"`
	CreatedAt     time.Time      `db:"created_at"`
	ProcessedAt   sql.NullTime   `db:"processed_at"`
	NextRetryAt   sql.NullTime   `db:"next_retry_at"`
}

func (r syncTaskRow) model() models.SyncTask {
	t := models.SyncTask{
		ID:            r.ID,
		TaskType:      r.TaskType,
		ReservationID: r.ReservationID,
		Payload:       r.Payload,
		Status:        r.Status,
		RetryCount:    r.RetryCount,
		CreatedAt:     r.CreatedAt,
	}
	if r.LastError.Valid {
		s := r.LastError.String
		t.LastError = &s
	}
	if r.ProcessedAt.Valid {
		p := r.ProcessedAt.Time
		t.ProcessedAt = &p
	}
	if r.NextRetryAt.Valid {
		n := r.NextRetryAt.Time
		t.NextRetryAt = &n
	}
	return t
}

func nullable(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
