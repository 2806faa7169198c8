package database

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

const userColumns = `id, username, email, password_hash, is_admin, created_at, updated_at FROM users`

func (db *DB) CreateUser(ctx context.Context, u *models.User) error {
	now := time.Now()
	result, err := db.ExecContext(ctx, `INSERT INTO users (username, email, password_hash, is_admin, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?)`,
		u.Username, strings.TrimSpace(u.Email), u.PasswordHash, u.IsAdmin, toMicros(now), toMicros(now))
	if err != nil {
		if errors.Is(translateConstraint(err), domain.ErrUserExists) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	u.ID = id
	u.CreatedAt = fromMicros(toMicros(now))
	u.UpdatedAt = u.CreatedAt
	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(db.QueryRowContext(ctx, `SELECT `+userColumns+` WHERE id = ?`, id))
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(db.QueryRowContext(ctx, `SELECT `+userColumns+` WHERE username = ?`, username))
}

// GetUserByEmail matches case-insensitively.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(db.QueryRowContext(ctx, `SELECT `+userColumns+` WHERE email = ?`, strings.TrimSpace(email)))
}

func (db *DB) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	result, err := db.ExecContext(ctx, `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, toMicros(time.Now()), userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
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

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u                models.User
		created, updated int64
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u.CreatedAt = fromMicros(created)
	u.UpdatedAt = fromMicros(updated)
	return &u, nil
}
