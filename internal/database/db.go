package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"seatbooking/internal/domain"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// DB is the SQLite store. One connection serializes every write, so the
// conflict check and the insert of a reservation never interleave.
type DB struct {
	*sql.DB
	path   string
	logger *zerolog.Logger
}

var _ domain.Store = (*DB)(nil)

func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("Database initialized")
	return &DB{DB: sqlDB, path: path, logger: logger}, nil
}

// Path is the file the store was opened from.
func (db *DB) Path() string { return db.path }

func (db *DB) Ping(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS seats (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL UNIQUE,
            x INTEGER NOT NULL DEFAULT 0,
            y INTEGER NOT NULL DEFAULT 0,
            created_at INTEGER NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            username TEXT NOT NULL UNIQUE,
            email TEXT NOT NULL UNIQUE COLLATE NOCASE,
            password_hash TEXT NOT NULL,
            is_admin BOOLEAN NOT NULL DEFAULT 0,
            created_at INTEGER NOT NULL,
            updated_at INTEGER NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS reservations (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            seat_id INTEGER NOT NULL REFERENCES seats(id),
            user_id INTEGER NOT NULL REFERENCES users(id),
            start_time INTEGER NOT NULL,
            end_time INTEGER NOT NULL,
            status TEXT NOT NULL DEFAULT 'reserved'
                CHECK (status IN ('reserved', 'cancelled', 'completed')),
            created_at INTEGER NOT NULL,
            CHECK (start_time < end_time)
        )`,
		`CREATE TABLE IF NOT EXISTS reports (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            seat_id INTEGER REFERENCES seats(id) ON DELETE SET NULL,
            reporter_id INTEGER NOT NULL REFERENCES users(id),
            reported_user_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
            reported_reservation_id INTEGER REFERENCES reservations(id) ON DELETE SET NULL,
            reported_date TEXT NOT NULL DEFAULT '',
            reported_time TEXT NOT NULL DEFAULT '',
            reason TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            submitted_at INTEGER NOT NULL,
            admin_notes TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS sync_queue (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            task_type TEXT NOT NULL,
            reservation_id INTEGER NOT NULL,
            payload TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            retry_count INTEGER NOT NULL DEFAULT 0,
            last_error TEXT,
            created_at DATETIME NOT NULL,
            processed_at DATETIME,
            next_retry_at DATETIME
        )`,

		// Store-level backstop: no two reserved rows overlap per seat or per user.
		`CREATE TRIGGER IF NOT EXISTS trg_reservations_seat_overlap
            BEFORE INSERT ON reservations
            WHEN NEW.status = 'reserved'
        BEGIN
            SELECT RAISE(ABORT, 'seat_conflict')
            WHERE EXISTS (
                SELECT 1 FROM reservations
                WHERE seat_id = NEW.seat_id AND status = 'reserved'
                  AND start_time < NEW.end_time AND end_time > NEW.start_time
            );
        END`,
		`CREATE TRIGGER IF NOT EXISTS trg_reservations_user_overlap
            BEFORE INSERT ON reservations
            WHEN NEW.status = 'reserved'
        BEGIN
            SELECT RAISE(ABORT, 'user_double_booking')
            WHERE EXISTS (
                SELECT 1 FROM reservations
                WHERE user_id = NEW.user_id AND status = 'reserved'
                  AND start_time < NEW.end_time AND end_time > NEW.start_time
            );
        END`,

		`CREATE INDEX IF NOT EXISTS idx_reservations_seat_time ON reservations(seat_id, status, start_time, end_time)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_user_time ON reservations(user_id, status, start_time, end_time)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_reporter ON reports(reporter_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_reported_user ON reports(reported_user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sync_queue_status ON sync_queue(status, next_retry_at)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

// Timestamps are stored as Unix microseconds, the resolution PostgreSQL keeps.
func toMicros(t time.Time) int64 { return t.UnixMicro() }

func fromMicros(us int64) time.Time { return time.UnixMicro(us).UTC() }

// translateConstraint turns trigger aborts and constraint failures into domain errors.
func translateConstraint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "seat_conflict"):
		return domain.ErrSeatConflict
	case strings.Contains(msg, "user_double_booking"):
		return domain.ErrUserDoubleBooking
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique:
			return domain.ErrUserExists
		case sqlite3.ErrConstraintCheck:
			return domain.ErrInvalidInterval
		case sqlite3.ErrConstraintForeignKey:
			return domain.ErrNotFound
		}
	}
	return err
}
