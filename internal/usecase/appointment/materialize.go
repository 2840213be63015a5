package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dates"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Failure messages differ between first booking and reschedule; the
// resolution logic does not.
type resolveMessages struct {
	dateRequired     string
	templateNotFound func(id string) string
	slotNotFound     func(id string) string
}

var createMessages = resolveMessages{
	dateRequired: "A date is required when booking a recurring template.",
	templateNotFound: func(id string) string {
		return fmt.Sprintf("Recurring availability template with ID %s not found.", id)
	},
	slotNotFound: func(id string) string {
		return fmt.Sprintf("The selected slot with ID %s does not exist.", id)
	},
}

var rescheduleMessages = resolveMessages{
	dateRequired: "A date is required when rescheduling to a recurring slot.",
	templateNotFound: func(string) string {
		return "The selected new availability template is no longer valid."
	},
	slotNotFound: func(string) string {
		return "The selected new slot does not exist."
	},
}

// resolveSlotForBooking turns a SlotRef into a locked, persisted Slot
// row inside the caller's transaction.
//
// A real ref loads its slot under a write lock. A recurring ref locks
// the (doctor, date, session) composite key: an existing materialized
// slot is reused, otherwise a fresh one is inserted with zero tokens.
// Lock-then-reuse-or-insert keeps two concurrent first bookings of the
// same recurring day from creating duplicate slots.
func resolveSlotForBooking(
	ctx context.Context,
	tx scheduling.Repository,
	ref scheduling.SlotRef,
	date string,
	msgs resolveMessages,
) (*models.Slot, error) {

	if !ref.IsRecurring() {
		slot, err := tx.GetSlotForUpdate(ctx, ref.ID())
		if err != nil {
			if errors.Is(err, scheduling.ErrNotFound) {
				return nil, httperr.ErrNotFound("slot_not_found", msgs.slotNotFound(ref.ID()))
			}
			return nil, err
		}
		return slot, nil
	}

	if date == "" {
		return nil, httperr.ErrBadRequest("date_required", msgs.dateRequired)
	}
	if _, err := dates.ParseDate(date); err != nil {
		return nil, httperr.ErrBadRequest("invalid_date", "date must be YYYY-MM-DD.")
	}

	template, err := tx.GetTemplate(ctx, ref.ID())
	if err != nil {
		if errors.Is(err, scheduling.ErrNotFound) {
			return nil, httperr.ErrNotFound("template_not_found", msgs.templateNotFound(ref.ID()))
		}
		return nil, err
	}

	existing, err := tx.FindSlotByKeyForUpdate(ctx, template.DoctorUserID, date, template.Session)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, scheduling.ErrNotFound) {
		return nil, err
	}

	slot := &models.Slot{
		DoctorUserID: template.DoctorUserID,
		Date:         date,
		Session:      template.Session,
		StartTime:    template.StartTime,
		EndTime:      template.EndTime,
		MaxTokens:    template.MaxTokens,
		TokensIssued: 0,
		IsActive:     true,
	}
	if err := tx.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}
