package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"seatbooking/internal/clock"
	"seatbooking/internal/domain"
	"seatbooking/internal/events"
	"seatbooking/internal/metrics"
	"seatbooking/internal/models"

	"github.com/rs/zerolog"
)

// ReportService files occupancy reports and attributes them to whoever held
// the seat at the reported moment.
type ReportService struct {
	seats        domain.SeatStore
	reservations domain.ReservationStore
	reports      domain.ReportStore
	users        domain.UserStore
	mailer       domain.Mailer
	clock        domain.Clock
	eventBus     domain.EventPublisher
	logger       *zerolog.Logger
}

func NewReportService(
	seats domain.SeatStore,
	reservations domain.ReservationStore,
	reports domain.ReportStore,
	users domain.UserStore,
	mailer domain.Mailer,
	clk domain.Clock,
	eventBus domain.EventPublisher,
	logger *zerolog.Logger,
) *ReportService {
	return &ReportService{
		seats:        seats,
		reservations: reservations,
		reports:      reports,
		users:        users,
		mailer:       mailer,
		clock:        clk,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// ResolveOccupant returns the reserved reservation on seatID whose
// [start, end) contains at, or nil when the seat was free. When several
// match, the one with the latest start wins.
func (s *ReportService) ResolveOccupant(ctx context.Context, seatID int64, at time.Time) (*models.Reservation, error) {
	rows, err := s.reservations.FindOccupants(ctx, seatID, at)
	if err != nil {
		return nil, storeErr(err)
	}

	var best *models.Reservation
	for _, r := range rows {
		if r.Status != models.StatusReserved || !r.Contains(at) {
			continue
		}
		if best == nil || r.StartTime.After(best.StartTime) {
			best = r
		}
	}
	if len(rows) > 1 {
		s.logger.Warn().Int64("seat_id", seatID).Time("at", at).Int("matches", len(rows)).
			Msg("Several reservations contain the same instant")
	}
	return best, nil
}

// FileReport records a report about seatID at a local date and time.
// A report is stored even when nobody held the seat.
func (s *ReportService) FileReport(ctx context.Context, reporterID, seatID int64, date, hm, reason string) (*models.Report, error) {
	reason = strings.TrimSpace(reason)
	if seatID == 0 || date == "" || hm == "" || reason == "" {
		return nil, domain.ErrInvalidInput
	}

	seat, err := s.seats.GetSeat(ctx, seatID)
	if err != nil {
		return nil, storeErr(err)
	}

	at, err := clock.Combine(date, hm, s.clock.Location())
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidInput, err)
	}

	occupant, err := s.ResolveOccupant(ctx, seat.ID, at)
	if err != nil {
		return nil, err
	}

	rep := &models.Report{
		SeatID:       &seat.ID,
		SeatName:     seat.Name,
		ReporterID:   reporterID,
		ReportedDate: date,
		ReportedTime: hm,
		Reason:       reason,
		Status:       models.ReportStatusPending,
		SubmittedAt:  s.clock.Now(),
	}
	if occupant != nil {
		rep.ReportedUserID = &occupant.UserID
		rep.ReportedUserName = occupant.UserName
		rep.ReportedReservationID = &occupant.ID
	}
	return s.save(ctx, rep)
}

// FileReportForReservation links a report straight to a known reservation.
// Empty date or time default to the reservation start.
func (s *ReportService) FileReportForReservation(ctx context.Context, reporterID, reservationID int64, reason, date, hm string) (*models.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}

	r, err := s.reservations.GetReservation(ctx, reservationID, nil)
	if err != nil {
		return nil, storeErr(err)
	}

	start := r.StartTime.In(s.clock.Location())
	if date == "" {
		date = start.Format(models.DateLayout)
	}
	if hm == "" {
		hm = start.Format(models.TimeLayout)
	}

	rep := &models.Report{
		SeatID:                &r.SeatID,
		SeatName:              r.SeatName,
		ReporterID:            reporterID,
		ReportedUserID:        &r.UserID,
		ReportedUserName:      r.UserName,
		ReportedReservationID: &r.ID,
		ReportedDate:          date,
		ReportedTime:          hm,
		Reason:                reason,
		Status:                models.ReportStatusPending,
		SubmittedAt:           s.clock.Now(),
	}
	return s.save(ctx, rep)
}

func (s *ReportService) save(ctx context.Context, rep *models.Report) (*models.Report, error) {
	if err := s.reports.CreateReport(ctx, rep); err != nil {
		return nil, storeErr(err)
	}

	metrics.IncReport(rep.Resolved())
	log := s.logger.Info().Int64("report_id", rep.ID).Int64("reporter_id", rep.ReporterID).Bool("resolved", rep.Resolved())
	if rep.SeatID != nil {
		log = log.Int64("seat_id", *rep.SeatID)
	}
	log.Msg("Report filed")

	s.publishEvent(rep)
	s.notifyReported(ctx, rep)
	return rep, nil
}

func (s *ReportService) publishEvent(rep *models.Report) {
	if s.eventBus == nil {
		return
	}
	payload := events.ReportEventPayload{
		ReportID:              rep.ID,
		SeatID:                rep.SeatID,
		SeatName:              rep.SeatName,
		ReporterID:            rep.ReporterID,
		ReportedUserID:        rep.ReportedUserID,
		ReportedUserName:      rep.ReportedUserName,
		ReportedReservationID: rep.ReportedReservationID,
		ReportedDate:          rep.ReportedDate,
		ReportedTime:          rep.ReportedTime,
		Reason:                rep.Reason,
	}
	if err := s.eventBus.PublishJSON(events.EventReportFiled, payload); err != nil {
		s.logger.Error().Err(err).Int64("report_id", rep.ID).Msg("publish event error")
	}
}

// notifyReported emails the reported user. Failures are logged only.
func (s *ReportService) notifyReported(ctx context.Context, rep *models.Report) {
	if s.mailer == nil || rep.ReportedUserID == nil {
		return
	}
	u, err := s.users.GetUserByID(ctx, *rep.ReportedUserID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("report_id", rep.ID).Msg("Reported user lookup failed")
		return
	}
	if u.Email == "" {
		return
	}

	body := fmt.Sprintf(
		"You have been reported for the seat %s on %s at %s.\n\nReason: %s\n",
		rep.SeatName, rep.ReportedDate, rep.ReportedTime, rep.Reason,
	)
	if err := s.mailer.Send(ctx, u.Email, "You have been reported", body); err != nil {
		s.logger.Warn().Err(err).Int64("report_id", rep.ID).Int64("user_id", u.ID).Msg("Report notification failed")
	}
}

// UpdateReportStatus is the admin review step.
func (s *ReportService) UpdateReportStatus(ctx context.Context, id int64, status, notes string) (*models.Report, error) {
	if !models.ValidReportStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if err := s.reports.UpdateReportStatus(ctx, id, status, notes); err != nil {
		return nil, storeErr(err)
	}
	s.logger.Info().Int64("report_id", id).Str("status", status).Msg("Report status updated")

	rep, err := s.reports.GetReport(ctx, id)
	return rep, storeErr(err)
}

func (s *ReportService) ListReports(ctx context.Context) ([]*models.Report, error) {
	reps, err := s.reports.ListReports(ctx)
	return reps, storeErr(err)
}
