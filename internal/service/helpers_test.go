package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"seatbooking/internal/clock"
	"seatbooking/internal/config"
	"seatbooking/internal/database"
	"seatbooking/internal/events"
	"seatbooking/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// day is the fixed test date; the clock starts at 08:00 on it.
var day = time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)

func hm(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func nopLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

type testEnv struct {
	db      *database.DB
	clock   *clock.Fixed
	bus     *events.EventBus
	mailer  *fakeMailer
	booking *BookingService
	reports *ReportService
	seats   *SeatService
	users   *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := nopLogger()

	db, err := database.NewDB(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clk := clock.NewFixed(hm(8, 0))
	bus := events.NewEventBus(logger)
	mailer := &fakeMailer{}

	return &testEnv{
		db:      db,
		clock:   clk,
		bus:     bus,
		mailer:  mailer,
		booking: NewBookingService(db, db, clk, bus, nil, logger),
		reports: NewReportService(db, db, db, db, mailer, clk, bus, logger),
		seats:   NewSeatService(db, db, clk, config.BookingConfig{PageSize: 2, OpenHour: 8, CloseHour: 24}, logger),
		users:   NewUserService(db, clk, logger),
	}
}

func (e *testEnv) seat(t *testing.T, name string) *models.Seat {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.db.SyncSeats(ctx, []*models.Seat{{Name: name}}))
	s, err := e.db.GetSeatByName(ctx, name)
	require.NoError(t, err)
	return s
}

func (e *testEnv) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, e.db.CreateUser(context.Background(), u))
	return u
}

func (e *testEnv) reserve(t *testing.T, seatID, userID int64, start, end time.Time) *models.Reservation {
	t.Helper()
	r, err := e.booking.TryReserve(context.Background(), seatID, userID, start, end)
	require.NoError(t, err)
	return r
}

type sentMail struct {
	To, Subject, Body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *fakeMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}
	}
	return m.sent[len(m.sent)-1]
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
