package service

import (
	"context"
	"time"

	"seatbooking/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListSeats(ctx context.Context) ([]*models.Seat, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Seat), args.Error(1)
}

func (m *mockStore) GetSeat(ctx context.Context, id int64) (*models.Seat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Seat), args.Error(1)
}

func (m *mockStore) GetSeatByName(ctx context.Context, name string) (*models.Seat, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Seat), args.Error(1)
}

func (m *mockStore) SyncSeats(ctx context.Context, seats []*models.Seat) error {
	return m.Called(ctx, seats).Error(0)
}

func (m *mockStore) FindOverlapping(ctx context.Context, seatID int64, start, end time.Time, status string) ([]*models.Reservation, error) {
	args := m.Called(ctx, seatID, start, end, status)
	return reservationsArg(args, 0), args.Error(1)
}

func (m *mockStore) FindOverlappingForUser(ctx context.Context, userID int64, start, end time.Time, status string) ([]*models.Reservation, error) {
	args := m.Called(ctx, userID, start, end, status)
	return reservationsArg(args, 0), args.Error(1)
}

func (m *mockStore) InsertReservation(ctx context.Context, r *models.Reservation) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockStore) GetReservation(ctx context.Context, id int64, ownerID *int64) (*models.Reservation, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *mockStore) UpdateReservation(ctx context.Context, r *models.Reservation, expectedStatus string) error {
	return m.Called(ctx, r, expectedStatus).Error(0)
}

func (m *mockStore) FindOccupants(ctx context.Context, seatID int64, at time.Time) ([]*models.Reservation, error) {
	args := m.Called(ctx, seatID, at)
	return reservationsArg(args, 0), args.Error(1)
}

func (m *mockStore) ListReservedAt(ctx context.Context, at time.Time) ([]*models.Reservation, error) {
	args := m.Called(ctx, at)
	return reservationsArg(args, 0), args.Error(1)
}

func (m *mockStore) ListReservedBetween(ctx context.Context, start, end time.Time) ([]*models.Reservation, error) {
	args := m.Called(ctx, start, end)
	return reservationsArg(args, 0), args.Error(1)
}

func (m *mockStore) ListUserReservations(ctx context.Context, userID int64, limit, offset int) ([]*models.Reservation, error) {
	args := m.Called(ctx, userID, limit, offset)
	return reservationsArg(args, 0), args.Error(1)
}

func (m *mockStore) CountUserReservations(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) GetReservationsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Reservation, error) {
	args := m.Called(ctx, start, end)
	return reservationsArg(args, 0), args.Error(1)
}

func reservationsArg(args mock.Arguments, i int) []*models.Reservation {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]*models.Reservation)
}

type mockSyncWorker struct {
	mock.Mock
}

func (m *mockSyncWorker) EnqueueTask(ctx context.Context, taskType string, reservationID int64, r *models.Reservation, status string) error {
	return m.Called(ctx, taskType, reservationID, r, status).Error(0)
}

type mockIdentity struct {
	mock.Mock
}

func (m *mockIdentity) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdentity) SetPassword(ctx context.Context, email, password string) error {
	return m.Called(ctx, email, password).Error(0)
}
