package service

import (
	"context"
	"testing"

	"seatbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.users.Register(ctx, " carol ", "Carol@Example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "carol", u.Username)
	assert.NotEqual(t, "correct-horse", u.PasswordHash)

	_, err = env.users.Register(ctx, "carol", "other@example.com", "correct-horse")
	assert.ErrorIs(t, err, domain.ErrUserExists)

	_, err = env.users.Register(ctx, "dave", "dave@example.com", "short")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)

	_, err = env.users.Register(ctx, "dave", "not-an-email", "long-enough")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := env.users.Authenticate(ctx, "carol", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = env.users.Authenticate(ctx, "carol", "wrong-horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = env.users.Authenticate(ctx, "nobody", "correct-horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserService_Identity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, "carol", "carol@example.com", "correct-horse")
	require.NoError(t, err)

	ok, err := env.users.ExistsByEmail(ctx, "CAROL@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.users.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, env.users.SetPassword(ctx, "carol@example.com", "short"), domain.ErrPasswordTooShort)
	require.NoError(t, env.users.SetPassword(ctx, "carol@example.com", "battery-staple"))

	_, err = env.users.Authenticate(ctx, "carol", "correct-horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = env.users.Authenticate(ctx, "carol", "battery-staple")
	assert.NoError(t, err)

	assert.ErrorIs(t, env.users.SetPassword(ctx, "nobody@example.com", "battery-staple"), domain.ErrNotFound)
}
