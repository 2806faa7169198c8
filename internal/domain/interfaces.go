package domain

import (
	"context"
	"time"

	"seatbooking/internal/models"
)

// Clock supplies the current zone-aware instant.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type SeatStore interface {
	ListSeats(ctx context.Context) ([]*models.Seat, error)
	GetSeat(ctx context.Context, id int64) (*models.Seat, error)
	GetSeatByName(ctx context.Context, name string) (*models.Seat, error)
	SyncSeats(ctx context.Context, seats []*models.Seat) error
}

// ReservationStore is the single shared mutable resource of the engine.
// InsertReservation must re-check both overlap predicates and insert as one
// atomic unit, returning ErrSeatConflict or ErrUserDoubleBooking on a lost race.
type ReservationStore interface {
	FindOverlapping(ctx context.Context, seatID int64, start, end time.Time, status string) ([]*models.Reservation, error)
	FindOverlappingForUser(ctx context.Context, userID int64, start, end time.Time, status string) ([]*models.Reservation, error)
	InsertReservation(ctx context.Context, r *models.Reservation) error
	GetReservation(ctx context.Context, id int64, ownerID *int64) (*models.Reservation, error)
	// UpdateReservation persists r only if the stored status still equals
	// expectedStatus, otherwise it returns ErrConcurrentModification.
	UpdateReservation(ctx context.Context, r *models.Reservation, expectedStatus string) error
	FindOccupants(ctx context.Context, seatID int64, at time.Time) ([]*models.Reservation, error)
	ListReservedAt(ctx context.Context, at time.Time) ([]*models.Reservation, error)
	ListReservedBetween(ctx context.Context, start, end time.Time) ([]*models.Reservation, error)
	ListUserReservations(ctx context.Context, userID int64, limit, offset int) ([]*models.Reservation, error)
	CountUserReservations(ctx context.Context, userID int64) (int, error)
	GetReservationsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Reservation, error)
}

type ReportStore interface {
	CreateReport(ctx context.Context, r *models.Report) error
	GetReport(ctx context.Context, id int64) (*models.Report, error)
	UpdateReportStatus(ctx context.Context, id int64, status, notes string) error
	ListReportsByReporter(ctx context.Context, reporterID int64, limit, offset int) ([]*models.Report, error)
	CountReportsByReporter(ctx context.Context, reporterID int64) (int, error)
	ListReportsAbout(ctx context.Context, userID int64, limit, offset int) ([]*models.Report, error)
	CountReportsAbout(ctx context.Context, userID int64) (int, error)
	ListReports(ctx context.Context) ([]*models.Report, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, hash string) error
}

// SyncQueue persists sheet sync tasks.
type SyncQueue interface {
	CreateSyncTask(ctx context.Context, task *models.SyncTask) error
	GetPendingSyncTasks(ctx context.Context, limit int) ([]models.SyncTask, error)
	UpdateSyncTaskStatus(ctx context.Context, id int64, status, errMsg string, nextRetryAt *time.Time) error
}

// Store is everything a storage backend provides.
type Store interface {
	SeatStore
	ReservationStore
	ReportStore
	UserStore
	SyncQueue
	Ping(ctx context.Context) error
	Close() error
}

// Identity is the user directory consulted by the reset flow.
type Identity interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	SetPassword(ctx context.Context, email, password string) error
}

// Mailer delivers best-effort email notifications.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type ResetStateRepository interface {
	GetState(ctx context.Context, sessionID string) (*models.ResetState, error)
	SetState(ctx context.Context, state *models.ResetState, ttl time.Duration) error
	ClearState(ctx context.Context, sessionID string) error
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type SheetsWriter interface {
	UpsertReservation(ctx context.Context, r *models.Reservation) error
	UpdateReservationStatus(ctx context.Context, reservationID int64, status string) error
	AppendReport(ctx context.Context, r *models.Report) error
}

type SyncWorker interface {
	EnqueueTask(ctx context.Context, taskType string, reservationID int64, r *models.Reservation, status string) error
}
