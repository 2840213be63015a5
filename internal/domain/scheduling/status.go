package scheduling

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
	// Reserved: declared by the API but never set by the reschedule
	// flow, which mutates the SCHEDULED appointment in place.
	StatusRescheduled Status = "RESCHEDULED"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusScheduled, StatusCompleted, StatusCanceled, StatusRescheduled:
		return Status(s), true
	}
	return "", false
}

// Actor is the authenticated caller descriptor supplied by the auth
// layer. The core only authorizes with it, never authenticates.
type Actor struct {
	UserID string
	Email  string
	Role   string
}
