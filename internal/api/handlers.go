package api

import (
	"net/http"
	"strings"
	"time"

	"seatbooking/internal/models"
	"seatbooking/internal/service"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, err)
		return
	}

	user, err := s.svc.Users.Register(r.Context(), body.Username, body.Email, body.Password)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, err)
		return
	}

	user, err := s.svc.Users.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	token, expires, err := s.tokens.Issue(user)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires, User: user})
}

func (s *HTTPServer) handleSeats(w http.ResponseWriter, r *http.Request) {
	seats, err := s.svc.Seats.ListSeats(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"seats": seats})
}

func (s *HTTPServer) handleLiveMap(w http.ResponseWriter, r *http.Request) {
	seats, err := s.svc.Seats.LiveMap(r.Context(), currentUser(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"seats": seats})
}

func (s *HTTPServer) handleMapAt(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := strings.TrimSpace(q.Get("date"))
	hm := strings.TrimSpace(q.Get("time"))

	seats, err := s.svc.Seats.MapAt(r.Context(), currentUser(r), date, hm)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "time": hm, "seats": seats})
}

func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	av, err := s.svc.Seats.Availability(r.Context(), currentUser(r),
		strings.TrimSpace(q.Get("date")),
		strings.TrimSpace(q.Get("start_time")),
		strings.TrimSpace(q.Get("end_time")))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, av)
}

func (s *HTTPServer) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Seats.Options())
}

type reserveRequest struct {
	SeatID    int64  `json:"seat_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (s *HTTPServer) handleReserve(w http.ResponseWriter, r *http.Request) {
	var body reserveRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, err)
		return
	}

	res, err := s.svc.Booking.ReserveSlot(r.Context(), body.SeatID, currentUser(r),
		strings.TrimSpace(body.Date), strings.TrimSpace(body.StartTime), strings.TrimSpace(body.EndTime))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *HTTPServer) handleGetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res, err := s.svc.Booking.GetReservation(r.Context(), id, currentUser(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	res.Status = res.EffectiveStatus(s.svc.Clock.Now())
	writeJSON(w, http.StatusOK, res)
}

func (s *HTTPServer) handleCancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res, err := s.svc.Booking.Cancel(r.Context(), id, currentUser(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *HTTPServer) handleRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, err := s.svc.Seats.UserRecords(r.Context(), currentUser(r), service.PageRequest{
		Reservations: q.Get("res_page"),
		Submitted:    q.Get("sub_page"),
		Received:     q.Get("rep_page"),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type fileReportRequest struct {
	SeatID int64  `json:"seat_id"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

func (s *HTTPServer) handleFileReport(w http.ResponseWriter, r *http.Request) {
	var body fileReportRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, err)
		return
	}

	rep, err := s.svc.Reports.FileReport(r.Context(), currentUser(r), body.SeatID,
		strings.TrimSpace(body.Date), strings.TrimSpace(body.Time), body.Reason)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}

// handleReportReservation reports the holder of a known reservation. Date
// and time default to the reservation start.
func (s *HTTPServer) handleReportReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	var body fileReportRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, err)
		return
	}

	rep, err := s.svc.Reports.FileReportForReservation(r.Context(), currentUser(r), id, body.Reason,
		strings.TrimSpace(body.Date), strings.TrimSpace(body.Time))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}
