package models

// Reservation statuses.
const (
	StatusReserved  = "reserved"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Report statuses.
const (
	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
	ReportStatusConfirmed = "confirmed"
)

// Password reset stages.
const (
	StageEmail        = "email"
	StageVerification = "verification"
	StagePassword     = "password"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

const (
	// DefaultPageSize is the records page size.
	DefaultPageSize = 10

	// DefaultOpenHour and DefaultCloseHour bound the bookable time slots.
	DefaultOpenHour  = 8
	DefaultCloseHour = 24

	// DefaultDateOptions is how many days ahead (today included) are offered.
	DefaultDateOptions = 7

	// DefaultResetCodeTTL lifetime of a password reset session in seconds.
	DefaultResetCodeTTL = 15 * 60

	// MinPasswordLength applies to registration and password reset.
	MinPasswordLength = 8

	// ResetSendLimit / ResetSendWindow throttle verification code mails per email.
	ResetSendLimit  = 3
	ResetSendWindow = 10 * 60

	// ResetMaxAttempts wrong codes a session accepts before it starts over.
	ResetMaxAttempts = 5

	// WorkerQueueSize in-memory queue size of the sync worker.
	WorkerQueueSize = 128
)

// ValidReportStatus reports whether s is a known report status.
func ValidReportStatus(s string) bool {
	switch s {
	case ReportStatusPending, ReportStatusResolved, ReportStatusDismissed, ReportStatusConfirmed:
		return true
	default:
		return false
	}
}
