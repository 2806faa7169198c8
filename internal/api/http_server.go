package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"seatbooking/internal/config"
	"seatbooking/internal/domain"
	"seatbooking/internal/export"
	"seatbooking/internal/metrics"
	"seatbooking/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// Services bundles what the HTTP handlers call into.
type Services struct {
	Booking     *service.BookingService
	Seats       *service.SeatService
	Reports     *service.ReportService
	Users       *service.UserService
	Reset       *service.ResetService
	Exporter    *export.Exporter
	ResetStates domain.ResetStateRepository
	Clock       domain.Clock
	Store       Pinger
}

// HTTPServer exposes the JSON API.
type HTTPServer struct {
	cfg    config.APIConfig
	svc    Services
	tokens *TokenIssuer
	keys   *apiKeyAuth
	limit  *rateLimiter
	server *http.Server
	log    zerolog.Logger
}

func NewHTTPServer(cfg config.APIConfig, svc Services, logger *zerolog.Logger) *HTTPServer {
	s := &HTTPServer{
		cfg:    cfg,
		svc:    svc,
		tokens: NewTokenIssuer(cfg.JWT),
		keys:   newAPIKeyAuth(cfg.Auth),
		limit:  newRateLimiter(cfg.RateLimit),
		log:    componentLogger(logger, "http"),
	}
	if !cfg.Auth.Enabled {
		s.log.Warn().Msg("API key auth disabled; admin endpoints are open")
	}

	mux := http.NewServeMux()
	s.routes(mux)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           s.logging(s.rateLimit(mux)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *HTTPServer) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	mux.Handle("GET /api/v1/seats", s.requireUser(s.handleSeats))
	mux.Handle("GET /api/v1/seats/live", s.requireUser(s.handleLiveMap))
	mux.Handle("GET /api/v1/seats/map", s.requireUser(s.handleMapAt))
	mux.Handle("GET /api/v1/seats/availability", s.requireUser(s.handleAvailability))
	mux.Handle("GET /api/v1/options", s.requireUser(s.handleOptions))

	mux.Handle("POST /api/v1/reservations", s.requireUser(s.handleReserve))
	mux.Handle("GET /api/v1/reservations/{id}", s.requireUser(s.handleGetReservation))
	mux.Handle("POST /api/v1/reservations/{id}/cancel", s.requireUser(s.handleCancel))
	mux.Handle("POST /api/v1/reservations/{id}/report", s.requireUser(s.handleReportReservation))
	mux.Handle("GET /api/v1/records", s.requireUser(s.handleRecords))
	mux.Handle("POST /api/v1/reports", s.requireUser(s.handleFileReport))

	mux.HandleFunc("POST /api/v1/password-reset/start", s.handleResetStart)
	mux.HandleFunc("POST /api/v1/password-reset/send-code", s.handleResetSendCode)
	mux.HandleFunc("POST /api/v1/password-reset/verify", s.handleResetVerify)
	mux.HandleFunc("POST /api/v1/password-reset/reset", s.handleResetPassword)

	mux.Handle("GET /api/v1/admin/export/reservations", s.requireKey(permExport, s.handleExportReservations))
	mux.Handle("GET /api/v1/admin/export/reports", s.requireKey(permExport, s.handleExportReports))
	mux.Handle("GET /api/v1/admin/reports", s.requireKey(permReports, s.handleListReports))
	mux.Handle("PATCH /api/v1/admin/reports/{id}", s.requireKey(permReports, s.handleUpdateReport))
}

func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	return s.server.ListenAndServe()
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.svc.Store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.svc.Store.Ping(ctx); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireUser admits requests carrying a valid bearer token.
func (s *HTTPServer) requireUser(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			writeDomainError(w, r, errMissingToken)
			return
		}
		userID, err := s.tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		ctx := withUserID(r.Context(), userID)
		l := zerolog.Ctx(ctx).With().Int64("user_id", userID).Logger()
		next.ServeHTTP(w, r.WithContext(l.WithContext(ctx)))
	})
}

// requireKey admits admin clients holding permission.
func (s *HTTPServer) requireKey(permission string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Auth.Enabled {
			client, err := s.keys.authenticate(r.Header.Get(s.keys.headerKey), r.Header.Get(s.keys.headerExtra))
			if err != nil {
				writeDomainError(w, r, err)
				return
			}
			if !permitted(client, permission) {
				writeDomainError(w, r, domain.ErrPermissionDenied)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limit.allow(s.clientKey(r)) {
			writeDomainError(w, r, domain.ErrRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) clientKey(r *http.Request) string {
	if apiKey := strings.TrimSpace(r.Header.Get(s.keys.headerKey)); apiKey != "" {
		return apiKey
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return clientKeyUnknown
}

// logging tags each request with an id, puts a request logger in the
// context and records the outcome.
func (s *HTTPServer) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		l := s.log.With().Str("request_id", requestID).Logger()
		r = r.WithContext(l.WithContext(r.Context()))

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		endpoint := r.Pattern
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.IncHTTP(endpoint)

		level := zerolog.InfoLevel
		if recorder.status >= http.StatusInternalServerError {
			level = zerolog.ErrorLevel
		}
		l.WithLevel(level).Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", domain.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid json: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", domain.ErrInvalidInput, r.PathValue("id"))
	}
	return id, nil
}

func currentUser(r *http.Request) int64 {
	id, _ := UserIDFromContext(r.Context())
	return id
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Stage string `json:"stage,omitempty"`
}

// writeDomainError maps err to its status and kind.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode, resp := errorResponseFor(r, err)
	writeJSON(w, statusCode, resp)
}

// errorResponseFor logs server-side failures and answers them without
// internal detail.
func errorResponseFor(r *http.Request, err error) (int, errorResponse) {
	statusCode := domain.HTTPStatus(err)
	message := err.Error()
	if statusCode >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		message = http.StatusText(statusCode)
	}
	return statusCode, errorResponse{Error: message, Kind: domain.Kind(err)}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
