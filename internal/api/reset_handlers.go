package api

import (
	"net/http"
	"strings"
	"time"

	"seatbooking/internal/models"
)

// ResetSessionHeader carries the password reset session id between steps.
const ResetSessionHeader = "X-Reset-Session"

type resetRequest struct {
	Email           string `json:"email"`
	Code            string `json:"code"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// resetResponse never includes the issued code.
type resetResponse struct {
	SessionID string     `json:"session_id"`
	Stage     string     `json:"stage"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Done      bool       `json:"done,omitempty"`
}

func newResetResponse(st *models.ResetState) resetResponse {
	resp := resetResponse{SessionID: st.SessionID, Stage: st.StageOrDefault()}
	if !st.ExpiresAt.IsZero() {
		expires := st.ExpiresAt
		resp.ExpiresAt = &expires
	}
	return resp
}

func (s *HTTPServer) handleResetStart(w http.ResponseWriter, r *http.Request) {
	if old := strings.TrimSpace(r.Header.Get(ResetSessionHeader)); old != "" {
		if err := s.svc.ResetStates.ClearState(r.Context(), old); err != nil {
			writeDomainError(w, r, err)
			return
		}
	}

	st := s.svc.Reset.Start()
	if err := s.svc.ResetStates.SetState(r.Context(), st, s.svc.Reset.CodeTTL()); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newResetResponse(st))
}

func (s *HTTPServer) handleResetSendCode(w http.ResponseWriter, r *http.Request) {
	s.resetStep(w, r, func(st *models.ResetState, body resetRequest) (*models.ResetState, error) {
		return s.svc.Reset.SendCode(r.Context(), st, body.Email)
	})
}

func (s *HTTPServer) handleResetVerify(w http.ResponseWriter, r *http.Request) {
	s.resetStep(w, r, func(st *models.ResetState, body resetRequest) (*models.ResetState, error) {
		return s.svc.Reset.VerifyCode(r.Context(), st, body.Email, body.Code)
	})
}

func (s *HTTPServer) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	s.resetStep(w, r, func(st *models.ResetState, body resetRequest) (*models.ResetState, error) {
		return s.svc.Reset.ResetPassword(r.Context(), st, body.Email, body.Code, body.Password, body.ConfirmPassword)
	})
}

type resetTransition func(st *models.ResetState, body resetRequest) (*models.ResetState, error)

// resetStep loads the session, applies one transition and persists whatever
// state it lands on, failed or not. A nil result ends the session.
func (s *HTTPServer) resetStep(w http.ResponseWriter, r *http.Request, step resetTransition) {
	var body resetRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, err)
		return
	}

	sessionID := strings.TrimSpace(r.Header.Get(ResetSessionHeader))
	var st *models.ResetState
	if sessionID != "" {
		loaded, err := s.svc.ResetStates.GetState(r.Context(), sessionID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		st = loaded
	}
	if st == nil && sessionID != "" {
		st = &models.ResetState{SessionID: sessionID, Stage: models.StageEmail}
	}

	next, stepErr := step(st, body)
	if next == nil {
		if stepErr == nil {
			if err := s.svc.ResetStates.ClearState(r.Context(), sessionID); err != nil {
				writeDomainError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, resetResponse{SessionID: sessionID, Done: true})
			return
		}
		writeDomainError(w, r, stepErr)
		return
	}

	if err := s.svc.ResetStates.SetState(r.Context(), next, s.svc.Reset.CodeTTL()); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set(ResetSessionHeader, next.SessionID)

	if stepErr != nil {
		statusCode, resp := errorResponseFor(r, stepErr)
		resp.Stage = next.StageOrDefault()
		writeJSON(w, statusCode, resp)
		return
	}
	writeJSON(w, http.StatusOK, newResetResponse(next))
}
