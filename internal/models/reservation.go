package models

import "time"

// TimeResolution is the precision every store keeps for reservation bounds.
const TimeResolution = time.Microsecond

// Reservation is one user's claim to one seat for [StartTime, EndTime).
type Reservation struct {
	ID        int64     `json:"id"`
	SeatID    int64     `json:"seat_id"`
	SeatName  string    `json:"seat_name,omitempty"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Overlaps is the half-open overlap test against [start, end).
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}

// Contains reports whether t falls inside [StartTime, EndTime).
func (r *Reservation) Contains(t time.Time) bool {
	return !r.StartTime.After(t) && r.EndTime.After(t)
}

// Cancellable reports whether the owner may still cancel at now.
func (r *Reservation) Cancellable(now time.Time) bool {
	return r.Status == StatusReserved && r.StartTime.After(now)
}

// EffectiveStatus is the status shown to users. Nothing stores "completed";
// an elapsed reservation is only displayed that way.
func (r *Reservation) EffectiveStatus(now time.Time) string {
	if r.Status == StatusReserved && !r.EndTime.After(now) {
		return StatusCompleted
	}
	return r.Status
}

// ReservationRequest is the input of the allocation engine.
type ReservationRequest struct {
	SeatID int64
	UserID int64
	Start  time.Time
	End    time.Time
}
