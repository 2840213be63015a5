package scheduling

import "github.com/BruksfildServices01/clinic-scheduler/internal/models"

// SlotView is what the availability resolver returns: either a real
// slot verbatim or a recurring template projected onto one date. The
// slot_id of a virtual view carries the recurring tag so clients can
// tell the two apart.
type SlotView struct {
	SlotID       string `json:"slot_id"`
	DoctorUserID string `json:"doctorUserId"`
	Date         string `json:"date"`
	Session      string `json:"session"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	MaxTokens    int    `json:"max_tokens"`
	TokensIssued int    `json:"tokens_issued"`
	IsActive     bool   `json:"is_active"`
}

func ViewFromSlot(s *models.Slot) SlotView {
	return SlotView{
		SlotID:       s.SlotID,
		DoctorUserID: s.DoctorUserID,
		Date:         s.Date,
		Session:      s.Session,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		MaxTokens:    s.MaxTokens,
		TokensIssued: s.TokensIssued,
		IsActive:     s.IsActive,
	}
}

// ViewFromTemplate projects a weekly template onto a concrete date.
// booked is the derived occupancy for that date.
func ViewFromTemplate(t *models.RecurringAvailability, date string, booked int) SlotView {
	return SlotView{
		SlotID:       RecurringSlotID(t.RecurringAvailabilityID),
		DoctorUserID: t.DoctorUserID,
		Date:         date,
		Session:      t.Session,
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
		MaxTokens:    t.MaxTokens,
		TokensIssued: booked,
		IsActive:     true,
	}
}
