package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"seatbooking/internal/domain"
	"seatbooking/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// UserService is the identity collaborator: registration, login and the
// password changes driven by the reset flow.
type UserService struct {
	repo   domain.UserStore
	clock  domain.Clock
	logger *zerolog.Logger
}

var _ domain.Identity = (*UserService)(nil)

func NewUserService(repo domain.UserStore, clk domain.Clock, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, clock: clk, logger: logger}
}

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidInput
	}
	if len(password) < models.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, storeErr(err)
	}

	s.logger.Info().Int64("user_id", u.ID).Str("username", u.Username).Msg("User registered")
	return u, nil
}

// Authenticate never distinguishes an unknown user from a wrong password.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, storeErr(err)
	}
	if !checkPassword(u.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	return u, storeErr(err)
}

func (s *UserService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, storeErr(err)
	}
}

func (s *UserService) SetPassword(ctx context.Context, email, password string) error {
	if len(password) < models.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	u, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return storeErr(err)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return storeErr(err)
	}
	s.logger.Info().Int64("user_id", u.ID).Time("at", s.clock.Now().Truncate(time.Second)).Msg("Password changed")
	return nil
}
