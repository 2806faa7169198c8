// Package postgres is the PostgreSQL store. Overlap is guarded by
// exclusion constraints on tstzrange, so concurrent writers never both win.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"seatbooking/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

const (
	constraintSeatOverlap = "reservations_no_seat_overlap"
	constraintUserOverlap = "reservations_no_user_overlap"
)

type DB struct {
	*sqlx.DB
	logger *zerolog.Logger
}

var _ domain.Store = (*DB)(nil)

type Options struct {
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

func NewDB(ctx context.Context, dsn string, opts Options, logger *zerolog.Logger) (*DB, error) {
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}

	conn, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = 25
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = 5 * time.Minute
	}
	conn.SetMaxOpenConns(opts.MaxOpenConns)
	conn.SetMaxIdleConns(opts.MaxOpenConns)
	conn.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	logger.Info().Msg("PostgreSQL store initialized")
	return &DB{DB: conn, logger: logger}, nil
}

func (db *DB) Ping(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func migrate(ctx context.Context, conn *sqlx.DB) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`CREATE TABLE IF NOT EXISTS seats (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            x INTEGER NOT NULL DEFAULT 0,
            y INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            username TEXT NOT NULL UNIQUE,
            email TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            is_admin BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower ON users (lower(email))`,
		`CREATE TABLE IF NOT EXISTS reservations (
            id BIGSERIAL PRIMARY KEY,
            seat_id BIGINT NOT NULL REFERENCES seats(id),
            user_id BIGINT NOT NULL REFERENCES users(id),
            start_time TIMESTAMPTZ NOT NULL,
            end_time TIMESTAMPTZ NOT NULL,
            status TEXT NOT NULL DEFAULT 'reserved'
                CHECK (status IN ('reserved', 'cancelled', 'completed')),
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            CHECK (start_time < end_time),
            CONSTRAINT ` + constraintSeatOverlap + ` EXCLUDE USING gist (
                seat_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&
            ) WHERE (status = 'reserved'),
            CONSTRAINT ` + constraintUserOverlap + ` EXCLUDE USING gist (
                user_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&
            ) WHERE (status = 'reserved')
        )`,
		`CREATE TABLE IF NOT EXISTS reports (
            id BIGSERIAL PRIMARY KEY,
            seat_id BIGINT REFERENCES seats(id) ON DELETE SET NULL,
            reporter_id BIGINT NOT NULL REFERENCES users(id),
            reported_user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
            reported_reservation_id BIGINT REFERENCES reservations(id) ON DELETE SET NULL,
            reported_date TEXT NOT NULL DEFAULT '',
            reported_time TEXT NOT NULL DEFAULT '',
            reason TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            submitted_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            admin_notes TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS sync_queue (
            id BIGSERIAL PRIMARY KEY,
            task_type TEXT NOT NULL,
            reservation_id BIGINT NOT NULL,
            payload TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            retry_count INTEGER NOT NULL DEFAULT 0,
            last_error TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            processed_at TIMESTAMPTZ,
            next_retry_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_reports_reporter ON reports(reporter_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_reported_user ON reports(reported_user_id)`,
	}
	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt, err)
		}
	}
	return nil
}

// translate maps PostgreSQL constraint violations to domain errors.
func translate(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case "23P01":
		if pqErr.Constraint == constraintUserOverlap {
			return domain.ErrUserDoubleBooking
		}
		return domain.ErrSeatConflict
	case "23505":
		return domain.ErrUserExists
	case "23514":
		return domain.ErrInvalidInterval
	case "23503":
		return domain.ErrNotFound
	case "40001":
		// serialization failure: another writer committed first on this seat
		return domain.ErrSeatConflict
	}
	return err
}
