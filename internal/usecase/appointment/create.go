package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Ref       scheduling.SlotRef
	Complaint string
	// Required only when Ref is a recurring template reference.
	Date string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewCreateAppointment(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute books one token of one slot. The whole check-then-increment
// sequence runs under the slot's row lock in a single transaction, so
// two bookings racing for the last token cannot both succeed.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
	actor scheduling.Actor,
) (*models.Appointment, error) {

	if actor.Role != models.RolePatient {
		return nil, httperr.ErrForbidden(
			"patients_only",
			"Only patients can book appointments.",
		)
	}

	var created *models.Appointment
	var booked *models.Slot

	err := uc.repo.Transaction(ctx, func(tx scheduling.Repository) error {

		slot, err := resolveSlotForBooking(ctx, tx, in.Ref, in.Date, createMessages)
		if err != nil {
			return err
		}

		if slot.TokensIssued >= slot.MaxTokens {
			return httperr.ErrConflict("slot_full", "Sorry, this slot is fully booked.")
		}

		slot.TokensIssued++
		if err := tx.SaveSlot(ctx, slot); err != nil {
			return err
		}

		ap := &models.Appointment{
			PatientUserID: actor.UserID,
			DoctorUserID:  slot.DoctorUserID,
			SlotID:        slot.SlotID,
			Complaint:     in.Complaint,
			TokenNumber:   slot.TokensIssued,
			Status:        string(scheduling.StatusScheduled),
		}
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		created = ap
		booked = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, booked.DoctorUserID, booked.Date)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &created.AppointmentID,
		Metadata: map[string]any{
			"slot_id":      booked.SlotID,
			"token_number": created.TokenNumber,
		},
	})

	return created, nil
}
