package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"seatbooking/internal/config"
	"seatbooking/internal/domain"
	"seatbooking/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RateLimiter counts attempts per key within a window.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// ResetService drives the email -> verification -> password reset flow.
// It never stores the state itself: every step takes the caller's state and
// returns the next one, which is never nil except after a successful reset.
type ResetService struct {
	identity domain.Identity
	mailer   domain.Mailer
	limiter  RateLimiter
	clock    domain.Clock
	cfg      config.ResetConfig
	logger   *zerolog.Logger
}

func NewResetService(identity domain.Identity, mailer domain.Mailer, limiter RateLimiter, clk domain.Clock, cfg config.ResetConfig, logger *zerolog.Logger) *ResetService {
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = models.DefaultResetCodeTTL * time.Second
	}
	if cfg.SendLimit <= 0 {
		cfg.SendLimit = models.ResetSendLimit
	}
	if cfg.SendLimitWindow <= 0 {
		cfg.SendLimitWindow = models.ResetSendWindow * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = models.ResetMaxAttempts
	}
	return &ResetService{identity: identity, mailer: mailer, limiter: limiter, clock: clk, cfg: cfg, logger: logger}
}

// CodeTTL is how long a session and its code stay valid.
func (s *ResetService) CodeTTL() time.Duration { return s.cfg.CodeTTL }

// Start opens a fresh session; any earlier code is forgotten.
func (s *ResetService) Start() *models.ResetState {
	return &models.ResetState{SessionID: uuid.NewString(), Stage: models.StageEmail}
}

// SendCode issues a new code to email. On any failure the state stays at
// the email stage.
func (s *ResetService) SendCode(ctx context.Context, st *models.ResetState, email string) (*models.ResetState, error) {
	email = normalizeEmail(email)
	atEmail := s.at(st, models.StageEmail)
	if email == "" {
		return atEmail, domain.ErrInvalidInput
	}

	ok, err := s.identity.ExistsByEmail(ctx, email)
	if err != nil {
		return atEmail, err
	}
	if !ok {
		return atEmail, domain.ErrEmailUnknown
	}

	if s.limiter != nil {
		allowed, err := s.limiter.CheckRateLimit(ctx, "reset:"+email, s.cfg.SendLimit, s.cfg.SendLimitWindow)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Reset rate limit check failed")
		} else if !allowed {
			return atEmail, domain.ErrRateLimited
		}
	}

	code, err := newCode()
	if err != nil {
		return atEmail, err
	}

	body := fmt.Sprintf("Your verification code is %s.\nIt expires in %d minutes.\n", code, int(s.cfg.CodeTTL.Minutes()))
	if err := s.mailer.Send(ctx, email, "Password reset code", body); err != nil {
		s.logger.Error().Err(err).Msg("Reset code delivery failed")
		return atEmail, fmt.Errorf("send verification code: %w", err)
	}

	next := s.at(st, models.StageVerification)
	next.Email = email
	next.Code = code
	next.ExpiresAt = s.clock.Now().Add(s.cfg.CodeTTL)
	next.Attempts = 0
	s.logger.Info().Str("session_id", next.SessionID).Msg("Reset code sent")
	return next, nil
}

// VerifyCode moves a session holding a matching, unexpired code to the
// password stage.
func (s *ResetService) VerifyCode(ctx context.Context, st *models.ResetState, email, code string) (*models.ResetState, error) {
	stage := st.StageOrDefault()
	if stage != models.StageVerification && stage != models.StagePassword {
		return s.at(st, stage), domain.ErrStageInvalid
	}
	if err := s.checkCode(st, email, code); err != nil {
		return s.fallback(st, err)
	}
	return s.at(st, models.StagePassword), nil
}

// ResetPassword sets the new password and ends the session.
func (s *ResetService) ResetPassword(ctx context.Context, st *models.ResetState, email, code, password, confirm string) (*models.ResetState, error) {
	stage := st.StageOrDefault()
	if stage != models.StagePassword {
		return s.at(st, stage), domain.ErrStageInvalid
	}
	if err := s.checkCode(st, email, code); err != nil {
		return s.fallback(st, err)
	}
	if password != confirm {
		return s.at(st, models.StagePassword), domain.ErrPasswordMismatch
	}
	if len(password) < models.MinPasswordLength {
		return s.at(st, models.StagePassword), domain.ErrPasswordTooShort
	}

	if err := s.identity.SetPassword(ctx, st.Email, password); err != nil {
		return s.at(st, models.StagePassword), err
	}
	s.logger.Info().Str("session_id", st.SessionID).Msg("Password reset completed")
	return nil, nil
}

func (s *ResetService) checkCode(st *models.ResetState, email, code string) error {
	if normalizeEmail(email) != st.Email {
		return domain.ErrEmailMismatch
	}
	if strings.TrimSpace(code) != st.Code {
		return domain.ErrCodeMismatch
	}
	if st.Expired(s.clock.Now()) {
		return domain.ErrCodeExpired
	}
	return nil
}

// fallback is the stage a failed code check lands on. An expired code can
// only be replaced by sending a new one, and so can a code guessed wrong
// MaxAttempts times.
func (s *ResetService) fallback(st *models.ResetState, err error) (*models.ResetState, error) {
	if errors.Is(err, domain.ErrCodeExpired) {
		return s.at(st, models.StageEmail), err
	}
	next := s.at(st, models.StageVerification)
	next.Attempts++
	if next.Attempts >= s.cfg.MaxAttempts {
		s.logger.Warn().Str("session_id", next.SessionID).Int("attempts", next.Attempts).Msg("Reset session locked after wrong codes")
		return s.at(next, models.StageEmail), fmt.Errorf("%w: %v", domain.ErrTooManyAttempts, err)
	}
	return next, err
}

// at copies st into a new value at stage. Returning to the email stage drops
// the issued code.
func (s *ResetService) at(st *models.ResetState, stage string) *models.ResetState {
	next := &models.ResetState{Stage: stage}
	if st != nil {
		*next = *st
		next.Stage = stage
	}
	if next.SessionID == "" {
		next.SessionID = uuid.NewString()
	}
	if stage == models.StageEmail {
		next.Code = ""
		next.ExpiresAt = time.Time{}
		next.Attempts = 0
	}
	return next
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newCode draws a uniform six digit code in [100000, 999999].
func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
