package domain

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInterval   = errors.New("end must be after start")
	ErrPastStart         = errors.New("start is in the past")
	ErrSeatConflict      = errors.New("seat is already reserved for this time")
	ErrUserDoubleBooking = errors.New("user already holds an overlapping reservation")
	ErrAlreadyCancelled  = errors.New("reservation is not active")
	ErrTooLateToCancel   = errors.New("reservation has already started")
	ErrStoreUnavailable  = errors.New("store unavailable")

	ErrConcurrentModification = errors.New("concurrent modification")

	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailUnknown       = errors.New("no user with this email")
	ErrCodeMismatch       = errors.New("verification code does not match")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrEmailMismatch      = errors.New("email does not match the reset session")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrStageInvalid       = errors.New("reset step not allowed in current stage")
	ErrTooManyAttempts    = errors.New("too many wrong codes, request a new one")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrPermissionDenied   = errors.New("permission denied")
)

type kindEntry struct {
	err    error
	kind   string
	status int
}

var kinds = []kindEntry{
	{ErrNotFound, "not_found", http.StatusNotFound},
	{ErrInvalidInterval, "invalid_interval", http.StatusBadRequest},
	{ErrPastStart, "past_start", http.StatusBadRequest},
	{ErrSeatConflict, "seat_conflict", http.StatusConflict},
	{ErrUserDoubleBooking, "user_double_booking", http.StatusConflict},
	{ErrAlreadyCancelled, "already_cancelled", http.StatusConflict},
	{ErrTooLateToCancel, "too_late_to_cancel", http.StatusConflict},
	{ErrStoreUnavailable, "store_unavailable", http.StatusServiceUnavailable},
	{ErrConcurrentModification, "concurrent_modification", http.StatusConflict},
	{ErrInvalidInput, "invalid_input", http.StatusBadRequest},
	{ErrEmailUnknown, "email_unknown", http.StatusBadRequest},
	{ErrCodeMismatch, "code_mismatch", http.StatusBadRequest},
	{ErrCodeExpired, "code_expired", http.StatusBadRequest},
	{ErrEmailMismatch, "email_mismatch", http.StatusBadRequest},
	{ErrPasswordMismatch, "password_mismatch", http.StatusBadRequest},
	{ErrPasswordTooShort, "password_too_short", http.StatusBadRequest},
	{ErrStageInvalid, "stage_invalid", http.StatusConflict},
	{ErrTooManyAttempts, "too_many_attempts", http.StatusTooManyRequests},
	{ErrInvalidCredentials, "invalid_credentials", http.StatusUnauthorized},
	{ErrUserExists, "user_exists", http.StatusConflict},
	{ErrRateLimited, "rate_limited", http.StatusTooManyRequests},
	{ErrPermissionDenied, "permission_denied", http.StatusForbidden},
}

// Kind returns the stable name of the first known error kind in err's chain.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}

// HTTPStatus maps an error kind to a response status.
func HTTPStatus(err error) int {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.status
		}
	}
	return http.StatusInternalServerError
}

// IsKnown reports whether err carries one of the declared kinds.
func IsKnown(err error) bool {
	return Kind(err) != "internal" && err != nil
}
