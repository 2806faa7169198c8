package api

import (
	"context"
	"errors"
	"slices"
	"strings"

	availabilityv1 "seatbooking/internal/api/gen/availability/v1"
	"seatbooking/internal/domain"
	"seatbooking/internal/models"
	"seatbooking/internal/service"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AvailabilityService answers seat availability for other systems over gRPC.
type AvailabilityService struct {
	availabilityv1.UnimplementedAvailabilityServiceServer
	seats *service.SeatService
}

func NewAvailabilityService(seats *service.SeatService) *AvailabilityService {
	return &AvailabilityService{seats: seats}
}

func (s *AvailabilityService) ListSeats(ctx context.Context, _ *availabilityv1.ListSeatsRequest) (*availabilityv1.ListSeatsResponse, error) {
	seats, err := s.seats.ListSeats(ctx)
	if err != nil {
		return nil, grpcError(err)
	}
	out := make([]*availabilityv1.Seat, 0, len(seats))
	for _, seat := range seats {
		out = append(out, &availabilityv1.Seat{
			Id:   seat.ID,
			Name: seat.Name,
			X:    int32(seat.X),
			Y:    int32(seat.Y),
		})
	}
	return &availabilityv1.ListSeatsResponse{Seats: out}, nil
}

func (s *AvailabilityService) GetAvailability(ctx context.Context, req *availabilityv1.GetAvailabilityRequest) (
	*availabilityv1.GetAvailabilityResponse, error) {
	seatName := strings.TrimSpace(req.GetSeatName())
	if seatName == "" {
		return nil, status.Error(codes.InvalidArgument, "seat_name is required")
	}
	date := strings.TrimSpace(req.GetDate())
	if date == "" {
		return nil, status.Error(codes.InvalidArgument, "date is required")
	}

	byName, err := s.seatIndex(ctx)
	if err != nil {
		return nil, err
	}
	seat, ok := byName[strings.ToLower(seatName)]
	if !ok {
		return nil, status.Error(codes.NotFound, "seat not found")
	}

	av, err := s.seats.Availability(ctx, 0, date, req.GetStartTime(), req.GetEndTime())
	if err != nil {
		return nil, grpcError(err)
	}

	return &availabilityv1.GetAvailabilityResponse{
		SeatName:  seat.Name,
		Date:      date,
		StartTime: req.GetStartTime(),
		EndTime:   req.GetEndTime(),
		Available: !slices.Contains(av.Reserved, seat.ID),
	}, nil
}

// GetAvailabilityBulk answers every seat x date pair. Unknown seats are
// skipped rather than failing the whole request.
func (s *AvailabilityService) GetAvailabilityBulk(ctx context.Context, req *availabilityv1.GetAvailabilityBulkRequest) (
	*availabilityv1.GetAvailabilityBulkResponse, error) {
	if len(req.GetSeatNames()) == 0 {
		return nil, status.Error(codes.InvalidArgument, "seat_names is required")
	}
	if len(req.GetDates()) == 0 {
		return nil, status.Error(codes.InvalidArgument, "dates is required")
	}

	byName, err := s.seatIndex(ctx)
	if err != nil {
		return nil, err
	}
	var seats []*models.Seat
	for _, raw := range req.GetSeatNames() {
		if seat, ok := byName[strings.ToLower(strings.TrimSpace(raw))]; ok {
			seats = append(seats, seat)
		}
	}

	results := make([]*availabilityv1.Availability, 0, len(seats)*len(req.GetDates()))
	for _, raw := range req.GetDates() {
		date := strings.TrimSpace(raw)
		av, err := s.seats.Availability(ctx, 0, date, req.GetStartTime(), req.GetEndTime())
		if err != nil {
			return nil, grpcError(err)
		}
		for _, seat := range seats {
			results = append(results, &availabilityv1.Availability{
				SeatName:  seat.Name,
				Date:      date,
				StartTime: req.GetStartTime(),
				EndTime:   req.GetEndTime(),
				Available: !slices.Contains(av.Reserved, seat.ID),
			})
		}
	}
	return &availabilityv1.GetAvailabilityBulkResponse{Results: results}, nil
}

func (s *AvailabilityService) seatIndex(ctx context.Context) (map[string]*models.Seat, error) {
	seats, err := s.seats.ListSeats(ctx)
	if err != nil {
		return nil, grpcError(err)
	}
	idx := make(map[string]*models.Seat, len(seats))
	for _, seat := range seats {
		idx[strings.ToLower(strings.TrimSpace(seat.Name))] = seat
	}
	return idx, nil
}

// grpcError maps domain error kinds onto status codes.
func grpcError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidInterval):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, "store unavailable")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
