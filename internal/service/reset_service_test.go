package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"seatbooking/internal/config"
	"seatbooking/internal/domain"
	"seatbooking/internal/models"
	"seatbooking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

func newResetService(t *testing.T, env *testEnv, identity domain.Identity) *ResetService {
	t.Helper()
	limiter := repository.NewMemoryStateRepository()
	return NewResetService(identity, env.mailer, limiter, env.clock, config.ResetConfig{CodeTTL: 15 * time.Minute, SendLimit: 1, SendLimitWindow: time.Hour}, nopLogger())
}

func TestReset_HappyPath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.users.Register(ctx, "carol", "carol@example.com", "correct-horse")
	require.NoError(t, err)
	svc := newResetService(t, env, env.users)

	st := svc.Start()
	assert.Equal(t, models.StageEmail, st.Stage)
	assert.NotEmpty(t, st.SessionID)

	st, err = svc.SendCode(ctx, st, "Carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.StageVerification, st.Stage)
	assert.Equal(t, "carol@example.com", st.Email)
	assert.Equal(t, codePattern.FindString(env.mailer.last().Body), st.Code)
	assert.True(t, st.ExpiresAt.Equal(hm(8, 15)))

	st, err = svc.VerifyCode(ctx, st, "carol@example.com", st.Code)
	require.NoError(t, err)
	assert.Equal(t, models.StagePassword, st.Stage)

	st, err = svc.ResetPassword(ctx, st, "carol@example.com", st.Code, "battery-staple", "battery-staple")
	require.NoError(t, err)
	assert.Nil(t, st)

	_, err = env.users.Authenticate(ctx, "carol", "battery-staple")
	assert.NoError(t, err)
}

func TestReset_SendCodeFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	identity := new(mockIdentity)
	svc := newResetService(t, env, identity)

	identity.On("ExistsByEmail", ctx, "ghost@example.com").Return(false, nil)
	identity.On("ExistsByEmail", ctx, "carol@example.com").Return(true, nil)

	st, err := svc.SendCode(ctx, svc.Start(), "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrEmailUnknown)
	assert.Equal(t, models.StageEmail, st.Stage)

	env.mailer.err = errors.New("smtp down")
	st, err = svc.SendCode(ctx, st, "carol@example.com")
	require.Error(t, err)
	assert.Equal(t, models.StageEmail, st.Stage)
	assert.Empty(t, st.Code)

	env.mailer.err = nil
	_, err = svc.SendCode(ctx, st, "carol@example.com")
	assert.ErrorIs(t, err, domain.ErrRateLimited, "the failed delivery still counts against the limit")
}

func TestReset_VerifyCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	identity := new(mockIdentity)
	identity.On("ExistsByEmail", ctx, "carol@example.com").Return(true, nil)
	svc := newResetService(t, env, identity)

	_, err := svc.VerifyCode(ctx, svc.Start(), "carol@example.com", "123456")
	assert.ErrorIs(t, err, domain.ErrStageInvalid)

	st, err := svc.SendCode(ctx, svc.Start(), "carol@example.com")
	require.NoError(t, err)

	next, err := svc.VerifyCode(ctx, st, "mallory@example.com", st.Code)
	assert.ErrorIs(t, err, domain.ErrEmailMismatch)
	assert.Equal(t, models.StageVerification, next.Stage)

	wrong := "000000"
	if st.Code == wrong {
		wrong = "111111"
	}
	next, err = svc.VerifyCode(ctx, st, "carol@example.com", wrong)
	assert.ErrorIs(t, err, domain.ErrCodeMismatch)
	assert.Equal(t, models.StageVerification, next.Stage)

	env.clock.Advance(15 * time.Minute)
	next, err = svc.VerifyCode(ctx, st, "carol@example.com", st.Code)
	assert.ErrorIs(t, err, domain.ErrCodeExpired)
	assert.Equal(t, models.StageEmail, next.Stage)
	assert.Empty(t, next.Code)
}

func TestReset_WrongCodesLockSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	identity := new(mockIdentity)
	identity.On("ExistsByEmail", ctx, "carol@example.com").Return(true, nil)
	svc := NewResetService(identity, env.mailer, nil, env.clock,
		config.ResetConfig{CodeTTL: 15 * time.Minute, MaxAttempts: 3}, nopLogger())

	st, err := svc.SendCode(ctx, svc.Start(), "carol@example.com")
	require.NoError(t, err)
	code := st.Code
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	for i := 1; i < 3; i++ {
		st, err = svc.VerifyCode(ctx, st, "carol@example.com", wrong)
		assert.ErrorIs(t, err, domain.ErrCodeMismatch)
		assert.Equal(t, models.StageVerification, st.Stage)
		assert.Equal(t, i, st.Attempts)
	}

	st, err = svc.VerifyCode(ctx, st, "carol@example.com", wrong)
	assert.ErrorIs(t, err, domain.ErrTooManyAttempts)
	assert.Equal(t, "too_many_attempts", domain.Kind(err))
	assert.Equal(t, models.StageEmail, st.Stage)
	assert.Empty(t, st.Code)
	assert.Zero(t, st.Attempts)

	_, err = svc.VerifyCode(ctx, st, "carol@example.com", code)
	assert.ErrorIs(t, err, domain.ErrStageInvalid, "the old code is gone")

	st, err = svc.SendCode(ctx, st, "carol@example.com")
	require.NoError(t, err)
	assert.Zero(t, st.Attempts)
	st, err = svc.VerifyCode(ctx, st, "carol@example.com", st.Code)
	require.NoError(t, err)
	assert.Equal(t, models.StagePassword, st.Stage)
}

func TestReset_ResetPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	identity := new(mockIdentity)
	identity.On("ExistsByEmail", ctx, "carol@example.com").Return(true, nil)
	svc := newResetService(t, env, identity)

	st, err := svc.SendCode(ctx, svc.Start(), "carol@example.com")
	require.NoError(t, err)

	_, err = svc.ResetPassword(ctx, st, "carol@example.com", st.Code, "battery-staple", "battery-staple")
	assert.ErrorIs(t, err, domain.ErrStageInvalid, "the code must be verified first")

	st, err = svc.VerifyCode(ctx, st, "carol@example.com", st.Code)
	require.NoError(t, err)

	next, err := svc.ResetPassword(ctx, st, "mallory@example.com", st.Code, "battery-staple", "battery-staple")
	assert.ErrorIs(t, err, domain.ErrEmailMismatch)
	assert.Equal(t, models.StageVerification, next.Stage)

	next, err = svc.ResetPassword(ctx, st, "carol@example.com", st.Code, "battery-staple", "battery-stable")
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
	assert.Equal(t, models.StagePassword, next.Stage)

	next, err = svc.ResetPassword(ctx, st, "carol@example.com", st.Code, "short", "short")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	assert.Equal(t, models.StagePassword, next.Stage)

	identity.On("SetPassword", ctx, "carol@example.com", "battery-staple").Return(nil).Once()
	next, err = svc.ResetPassword(ctx, st, "carol@example.com", st.Code, "battery-staple", "battery-staple")
	require.NoError(t, err)
	assert.Nil(t, next)
	identity.AssertExpectations(t)
}

func TestReset_CodeRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := newCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.NotEqual(t, byte('0'), code[0])
	}
}
