package service

import (
	"context"
	"errors"
	"time"

	"seatbooking/internal/clock"
	"seatbooking/internal/domain"
	"seatbooking/internal/events"
	"seatbooking/internal/metrics"
	"seatbooking/internal/models"

	"github.com/rs/zerolog"
)

const (
	syncTaskUpsert       = "upsert"
	syncTaskUpdateStatus = "update_status"
)

// BookingService is the allocation engine and the reservation lifecycle.
// It keeps no reservation state of its own; every check reads the store.
type BookingService struct {
	seats        domain.SeatStore
	store        domain.ReservationStore
	clock        domain.Clock
	eventBus     domain.EventPublisher
	sheetsWorker domain.SyncWorker
	logger       *zerolog.Logger
}

func NewBookingService(
	seats domain.SeatStore,
	store domain.ReservationStore,
	clk domain.Clock,
	eventBus domain.EventPublisher,
	sheetsWorker domain.SyncWorker,
	logger *zerolog.Logger,
) *BookingService {
	return &BookingService{
		seats:        seats,
		store:        store,
		clock:        clk,
		eventBus:     eventBus,
		sheetsWorker: sheetsWorker,
		logger:       logger,
	}
}

// TryReserve admits [start, end) on seatID for userID or returns the first
// failing check: NotFound, InvalidInterval, PastStart, SeatConflict,
// UserDoubleBooking.
func (s *BookingService) TryReserve(ctx context.Context, seatID, userID int64, start, end time.Time) (*models.Reservation, error) {
	began := time.Now()
	r, err := s.tryReserve(ctx, seatID, userID, start, end)

	result := "ok"
	if err != nil {
		result = domain.Kind(err)
	}
	metrics.ObserveReservation(result, time.Since(began))

	log := s.logger.With().Int64("seat_id", seatID).Int64("user_id", userID).
		Time("start", start).Time("end", end).Logger()
	switch {
	case err == nil:
		log.Info().Int64("reservation_id", r.ID).Msg("Reservation created")
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Error().Err(err).Msg("Reservation failed")
	case errors.Is(err, domain.ErrUserDoubleBooking):
		log.Warn().Err(err).Msg("Reservation rejected")
	default:
		log.Info().Err(err).Msg("Reservation rejected")
	}
	return r, err
}

func (s *BookingService) tryReserve(ctx context.Context, seatID, userID int64, start, end time.Time) (*models.Reservation, error) {
	seat, err := s.seats.GetSeat(ctx, seatID)
	if err != nil {
		return nil, storeErr(err)
	}

	start, end = start.Truncate(models.TimeResolution), end.Truncate(models.TimeResolution)
	if !start.Before(end) {
		return nil, domain.ErrInvalidInterval
	}

	now := s.clock.Now()
	if start.Before(now.Truncate(models.TimeResolution)) {
		return nil, domain.ErrPastStart
	}

	existing, err := s.store.FindOverlapping(ctx, seat.ID, start, end, models.StatusReserved)
	if err != nil {
		return nil, storeErr(err)
	}
	if len(existing) > 0 {
		return nil, domain.ErrSeatConflict
	}

	mine, err := s.store.FindOverlappingForUser(ctx, userID, start, end, models.StatusReserved)
	if err != nil {
		return nil, storeErr(err)
	}
	if len(mine) > 0 {
		return nil, domain.ErrUserDoubleBooking
	}

	r := &models.Reservation{
		SeatID:    seat.ID,
		SeatName:  seat.Name,
		UserID:    userID,
		StartTime: start,
		EndTime:   end,
		Status:    models.StatusReserved,
		CreatedAt: now,
	}
	// The store re-checks both predicates atomically; a lost race lands here.
	if err := s.store.InsertReservation(ctx, r); err != nil {
		return nil, storeErr(err)
	}

	s.publishEvent(events.EventReservationCreated, r)
	s.enqueueSync(ctx, r, syncTaskUpsert)
	return r, nil
}

// ReserveSlot is TryReserve for a local date and HH:MM bounds.
func (s *BookingService) ReserveSlot(ctx context.Context, seatID, userID int64, date, startHM, endHM string) (*models.Reservation, error) {
	loc := s.clock.Location()
	start, err := clock.Combine(date, startHM, loc)
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidInput, err)
	}
	end, err := clock.Combine(date, endHM, loc)
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidInput, err)
	}
	return s.TryReserve(ctx, seatID, userID, start, end)
}

// Cancel moves the requester's own reservation to cancelled. Another user's
// reservation is reported as NotFound.
func (s *BookingService) Cancel(ctx context.Context, reservationID, userID int64) (*models.Reservation, error) {
	r, err := s.cancel(ctx, reservationID, userID)

	result := "ok"
	if err != nil {
		result = domain.Kind(err)
	}
	metrics.IncCancellation(result)

	log := s.logger.With().Int64("reservation_id", reservationID).Int64("user_id", userID).Logger()
	switch {
	case err == nil:
		log.Info().Msg("Reservation cancelled")
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Error().Err(err).Msg("Cancellation failed")
	default:
		log.Info().Err(err).Msg("Cancellation rejected")
	}
	return r, err
}

func (s *BookingService) cancel(ctx context.Context, reservationID, userID int64) (*models.Reservation, error) {
	r, err := s.store.GetReservation(ctx, reservationID, &userID)
	if err != nil {
		return nil, storeErr(err)
	}

	if r.Status != models.StatusReserved {
		return nil, domain.ErrAlreadyCancelled
	}
	if !r.StartTime.After(s.clock.Now()) {
		return nil, domain.ErrTooLateToCancel
	}

	r.Status = models.StatusCancelled
	if err := s.store.UpdateReservation(ctx, r, models.StatusReserved); err != nil {
		if errors.Is(err, domain.ErrConcurrentModification) {
			return nil, domain.ErrAlreadyCancelled
		}
		return nil, storeErr(err)
	}

	s.publishEvent(events.EventReservationCancelled, r)
	s.enqueueSync(ctx, r, syncTaskUpdateStatus)
	return r, nil
}

// GetReservation returns a reservation owned by userID.
func (s *BookingService) GetReservation(ctx context.Context, reservationID, userID int64) (*models.Reservation, error) {
	r, err := s.store.GetReservation(ctx, reservationID, &userID)
	return r, storeErr(err)
}

// ReservationsBetween lists every reservation touching [start, end), for exports.
func (s *BookingService) ReservationsBetween(ctx context.Context, start, end time.Time) ([]*models.Reservation, error) {
	if !start.Before(end) {
		return nil, domain.ErrInvalidInterval
	}
	rs, err := s.store.GetReservationsByDateRange(ctx, start, end)
	return rs, storeErr(err)
}

func (s *BookingService) publishEvent(eventType string, r *models.Reservation) {
	if s.eventBus == nil {
		return
	}

	payload := events.ReservationEventPayload{
		ReservationID: r.ID,
		SeatID:        r.SeatID,
		SeatName:      r.SeatName,
		UserID:        r.UserID,
		UserName:      r.UserName,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        r.Status,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("reservation_id", r.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueSync(ctx context.Context, r *models.Reservation, taskType string) {
	if s.sheetsWorker == nil {
		return
	}

	var status string
	if taskType == syncTaskUpdateStatus {
		status = r.Status
	}

	if err := s.sheetsWorker.EnqueueTask(ctx, taskType, r.ID, r, status); err != nil {
		s.logger.Error().Err(err).Int64("reservation_id", r.ID).Str("task", taskType).Msg("sheets enqueue error")
	}
}
