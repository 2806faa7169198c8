package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"seatbooking/internal/clock"
	"seatbooking/internal/domain"
	"seatbooking/internal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExportReservations streams an XLSX of the local days [from, to].
// Missing bounds default to today.
func (s *HTTPServer) handleExportReservations(w http.ResponseWriter, r *http.Request) {
	today := s.svc.Clock.Now().In(s.svc.Clock.Location()).Format(models.DateLayout)
	from, err := s.exportDay(r.URL.Query().Get("from"), today)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	to, err := s.exportDay(r.URL.Query().Get("to"), today)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	path, err := s.svc.Exporter.ExportReservations(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	serveXLSX(w, r, path)
}

func (s *HTTPServer) handleExportReports(w http.ResponseWriter, r *http.Request) {
	path, err := s.svc.Exporter.ExportReports(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	serveXLSX(w, r, path)
}

func (s *HTTPServer) exportDay(raw, fallback string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fallback
	}
	day, err := clock.Combine(raw, "00:00", s.svc.Clock.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return day, nil
}

func serveXLSX(w http.ResponseWriter, r *http.Request, path string) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

func (s *HTTPServer) handleListReports(w http.ResponseWriter, r *http.Request) {
	reps, err := s.svc.Reports.ListReports(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": reps})
}

type updateReportRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (s *HTTPServer) handleUpdateReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	var body updateReportRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, r, err)
		return
	}

	rep, err := s.svc.Reports.UpdateReportStatus(r.Context(), id, strings.TrimSpace(body.Status), body.Notes)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
