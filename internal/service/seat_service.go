package service

import (
	"context"
	"errors"
	"time"

	"seatbooking/internal/clock"
	"seatbooking/internal/config"
	"seatbooking/internal/domain"
	"seatbooking/internal/models"

	"github.com/rs/zerolog"
)

// SeatState is one seat on the floor map.
type SeatState struct {
	Seat        *models.Seat        `json:"seat"`
	Occupied    bool                `json:"occupied"`
	Mine        bool                `json:"mine"`
	Reservation *models.Reservation `json:"reservation,omitempty"`
}

// Availability lists seats taken within a range and the subset held by the
// requesting user.
type Availability struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Reserved []int64   `json:"reserved"`
	Mine     []int64   `json:"mine"`
}

// Records is the paginated personal history.
type Records struct {
	Reservations models.Page[*models.Reservation] `json:"reservations"`
	Submitted    models.Page[*models.Report]      `json:"submitted_reports"`
	Received     models.Page[*models.Report]      `json:"received_reports"`
}

// PageRequest carries raw page parameters; garbage is clamped, not rejected.
type PageRequest struct {
	Reservations string
	Submitted    string
	Received     string
}

// BookingOptions is what a booking form offers.
type BookingOptions struct {
	Dates     []string `json:"dates"`
	TimeSlots []string `json:"time_slots"`
}

type recordsStore interface {
	domain.ReservationStore
	domain.ReportStore
}

type SeatService struct {
	seats    domain.SeatStore
	store    recordsStore
	clock    domain.Clock
	cfg      config.BookingConfig
	logger   *zerolog.Logger
	pageSize int
}

func NewSeatService(seats domain.SeatStore, store recordsStore, clk domain.Clock, cfg config.BookingConfig, logger *zerolog.Logger) *SeatService {
	size := cfg.PageSize
	if size <= 0 {
		size = models.DefaultPageSize
	}
	return &SeatService{seats: seats, store: store, clock: clk, cfg: cfg, logger: logger, pageSize: size}
}

func (s *SeatService) ListSeats(ctx context.Context) ([]*models.Seat, error) {
	seats, err := s.seats.ListSeats(ctx)
	return seats, storeErr(err)
}

func (s *SeatService) GetSeat(ctx context.Context, id int64) (*models.Seat, error) {
	seat, err := s.seats.GetSeat(ctx, id)
	return seat, storeErr(err)
}

// LiveMap shows who occupies each seat right now.
func (s *SeatService) LiveMap(ctx context.Context, userID int64) ([]SeatState, error) {
	return s.mapAt(ctx, userID, s.clock.Now())
}

// MapAt shows occupancy at a local date and HH:MM.
func (s *SeatService) MapAt(ctx context.Context, userID int64, date, hm string) ([]SeatState, error) {
	at, err := clock.Combine(date, hm, s.clock.Location())
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidInput, err)
	}
	return s.mapAt(ctx, userID, at)
}

func (s *SeatService) mapAt(ctx context.Context, userID int64, at time.Time) ([]SeatState, error) {
	seats, err := s.seats.ListSeats(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	taken, err := s.store.ListReservedAt(ctx, at)
	if err != nil {
		return nil, storeErr(err)
	}

	bySeat := make(map[int64]*models.Reservation, len(taken))
	for _, r := range taken {
		if cur, ok := bySeat[r.SeatID]; !ok || r.StartTime.After(cur.StartTime) {
			bySeat[r.SeatID] = r
		}
	}

	out := make([]SeatState, 0, len(seats))
	for _, seat := range seats {
		st := SeatState{Seat: seat}
		if r, ok := bySeat[seat.ID]; ok {
			st.Occupied = true
			st.Mine = r.UserID == userID
			st.Reservation = r
		}
		out = append(out, st)
	}
	return out, nil
}

// Availability reports the seats already reserved somewhere in [start, end).
func (s *SeatService) Availability(ctx context.Context, userID int64, date, startHM, endHM string) (*Availability, error) {
	loc := s.clock.Location()
	start, err := clock.Combine(date, startHM, loc)
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidInput, err)
	}
	end, err := clock.Combine(date, endHM, loc)
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidInput, err)
	}
	if !start.Before(end) {
		return nil, domain.ErrInvalidInterval
	}

	rows, err := s.store.ListReservedBetween(ctx, start, end)
	if err != nil {
		return nil, storeErr(err)
	}

	av := &Availability{Start: start, End: end, Reserved: []int64{}, Mine: []int64{}}
	seen := make(map[int64]bool, len(rows))
	for _, r := range rows {
		if !seen[r.SeatID] {
			seen[r.SeatID] = true
			av.Reserved = append(av.Reserved, r.SeatID)
		}
		if r.UserID == userID {
			av.Mine = append(av.Mine, r.SeatID)
		}
	}
	return av, nil
}

// UserRecords returns one page each of own reservations, filed reports and
// reports about the user.
func (s *SeatService) UserRecords(ctx context.Context, userID int64, pages PageRequest) (*Records, error) {
	now := s.clock.Now()
	rec := &Records{}

	total, err := s.store.CountUserReservations(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	n := models.ClampPage(pages.Reservations, total, s.pageSize)
	rs, err := s.store.ListUserReservations(ctx, userID, s.pageSize, (n-1)*s.pageSize)
	if err != nil {
		return nil, storeErr(err)
	}
	for _, r := range rs {
		r.Status = r.EffectiveStatus(now)
	}
	rec.Reservations = models.NewPage(rs, n, total, s.pageSize)

	total, err = s.store.CountReportsByReporter(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	n = models.ClampPage(pages.Submitted, total, s.pageSize)
	sub, err := s.store.ListReportsByReporter(ctx, userID, s.pageSize, (n-1)*s.pageSize)
	if err != nil {
		return nil, storeErr(err)
	}
	rec.Submitted = models.NewPage(sub, n, total, s.pageSize)

	total, err = s.store.CountReportsAbout(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	n = models.ClampPage(pages.Received, total, s.pageSize)
	got, err := s.store.ListReportsAbout(ctx, userID, s.pageSize, (n-1)*s.pageSize)
	if err != nil {
		return nil, storeErr(err)
	}
	rec.Received = models.NewPage(got, n, total, s.pageSize)

	return rec, nil
}

// Options lists the selectable dates and hourly slots.
func (s *SeatService) Options() BookingOptions {
	open, closing := s.cfg.OpenHour, s.cfg.CloseHour
	if open == 0 && closing == 0 {
		open, closing = models.DefaultOpenHour, models.DefaultCloseHour
	}
	return BookingOptions{
		Dates:     clock.DateOptions(s.clock.Now(), s.cfg.DateOptions),
		TimeSlots: clock.TimeSlots(open, closing),
	}
}
