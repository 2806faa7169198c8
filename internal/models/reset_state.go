package models

import "time"

// ResetState is the password reset session. It is passed in and out of the
// reset service explicitly and persisted by the caller.
type ResetState struct {
	SessionID string    `json:"session_id"`
	Stage     string    `json:"stage"`
	Email     string    `json:"email,omitempty"`
	Code      string    `json:"code,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	Attempts  int       `json:"attempts,omitempty"`
}

func (s *ResetState) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// StageOrDefault treats a nil or empty state as the first stage.
func (s *ResetState) StageOrDefault() string {
	if s == nil || s.Stage == "" {
		return StageEmail
	}
	return s.Stage
}
