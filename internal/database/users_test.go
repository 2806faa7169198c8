package database

import (
	"context"
	"testing"

	"seatbooking/internal/domain"
	"seatbooking/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := &models.User{Username: "alice", Email: "Alice@Example.com", PasswordHash: "hash"}
	require.NoError(t, db.CreateUser(ctx, u))
	assert.NotZero(t, u.ID)

	t.Run("Lookups", func(t *testing.T) {
		got, err := db.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)

		got, err = db.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		got, err = db.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		_, err = db.GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Duplicates", func(t *testing.T) {
		err := db.CreateUser(ctx, &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"})
		assert.ErrorIs(t, err, domain.ErrUserExists)
		err = db.CreateUser(ctx, &models.User{Username: "alice2", Email: "ALICE@example.com", PasswordHash: "x"})
		assert.ErrorIs(t, err, domain.ErrUserExists)
	})

	t.Run("UpdatePassword", func(t *testing.T) {
		require.NoError(t, db.UpdatePassword(ctx, u.ID, "new-hash"))
		got, err := db.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "new-hash", got.PasswordHash)
		assert.ErrorIs(t, db.UpdatePassword(ctx, 999, "x"), domain.ErrNotFound)
	})
}
