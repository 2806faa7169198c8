package models

import "time"

// Report is a flag raised against whoever occupied a seat at a given moment.
type Report struct {
	ID                    int64     `json:"id"`
	SeatID                *int64    `json:"seat_id,omitempty"`
	SeatName              string    `json:"seat_name,omitempty"`
	ReporterID            int64     `json:"reporter_id"`
	ReportedUserID        *int64    `json:"reported_user_id,omitempty"`
	ReportedUserName      string    `json:"reported_user_name,omitempty"`
	ReportedReservationID *int64    `json:"reported_reservation_id,omitempty"`
	ReportedDate          string    `json:"reported_date,omitempty"` // YYYY-MM-DD
	ReportedTime          string    `json:"reported_time,omitempty"` // HH:MM
	Reason                string    `json:"reason"`
	Status                string    `json:"status"`
	SubmittedAt           time.Time `json:"submitted_at"`
	AdminNotes            string    `json:"admin_notes,omitempty"`
}

// Resolved reports whether the matcher attributed the report to a reservation.
func (r *Report) Resolved() bool {
	return r.ReportedReservationID != nil
}
