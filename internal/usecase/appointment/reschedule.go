package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type RescheduleAppointmentInput struct {
	AppointmentID string
	NewRef        scheduling.SlotRef
	// Required only when NewRef is a recurring template reference.
	Date string
}

type RescheduleAppointment struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewRescheduleAppointment(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute moves a SCHEDULED appointment to a new slot atomically: one
// token released on the old slot, one claimed on the new. When the old
// slot row is gone only the new slot changes.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
	actor scheduling.Actor,
) (*models.Appointment, error) {

	var updated *models.Appointment
	var oldSlot, newSlot *models.Slot
	clamped := false

	err := uc.repo.Transaction(ctx, func(tx scheduling.Repository) error {

		ap, err := tx.GetAppointmentForUpdate(ctx, in.AppointmentID)
		if err != nil {
			if errors.Is(err, scheduling.ErrNotFound) {
				return httperr.ErrNotFound("appointment_not_found", "Appointment to reschedule not found.")
			}
			return err
		}

		if ap.PatientUserID != actor.UserID {
			return httperr.ErrForbidden(
				"not_own_appointment",
				"You can only reschedule your own appointments.",
			)
		}
		if ap.Status != string(scheduling.StatusScheduled) {
			return httperr.ErrConflict(
				"not_scheduled",
				"Only scheduled appointments can be rescheduled.",
			)
		}

		oldSlotID := ap.SlotID

		target, err := resolveSlotForBooking(ctx, tx, in.NewRef, in.Date, rescheduleMessages)
		if err != nil {
			return err
		}

		if oldSlotID != "" && oldSlotID == target.SlotID {
			return httperr.ErrConflict("same_slot", "Cannot reschedule to the same slot.")
		}
		if target.TokensIssued >= target.MaxTokens {
			return httperr.ErrConflict("slot_full", "The new slot is already full.")
		}

		if oldSlotID != "" {
			prev, err := tx.GetSlotForUpdate(ctx, oldSlotID)
			switch {
			case err == nil:
				if prev.TokensIssued == 0 {
					clamped = true
				} else {
					prev.TokensIssued--
				}
				if err := tx.SaveSlot(ctx, prev); err != nil {
					return err
				}
				oldSlot = prev
			case errors.Is(err, scheduling.ErrNotFound):
				// Old slot deleted out from under the appointment;
				// nothing to release.
			default:
				return err
			}
		}

		target.TokensIssued++
		if err := tx.SaveSlot(ctx, target); err != nil {
			return err
		}

		ap.SlotID = target.SlotID
		ap.TokenNumber = target.TokensIssued
		if err := tx.SaveAppointment(ctx, ap); err != nil {
			return err
		}

		if oldSlot != nil {
			history := &models.RescheduleHistory{
				AppointmentID: ap.AppointmentID,
				OriginalDate:  oldSlot.Date,
				NewDate:       target.Date,
				Reason:        "patient_reschedule",
			}
			if err := tx.CreateRescheduleHistory(ctx, history); err != nil {
				return err
			}
		}

		updated = ap
		newSlot = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	if oldSlot != nil {
		uc.cache.Invalidate(ctx, oldSlot.DoctorUserID, oldSlot.Date)
	}
	uc.cache.Invalidate(ctx, newSlot.DoctorUserID, newSlot.Date)

	if clamped {
		uc.audit.Dispatch(audit.Event{
			UserID:   &actor.UserID,
			Action:   "slot_counter_clamped",
			Entity:   "slot",
			EntityID: &oldSlot.SlotID,
		})
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &updated.AppointmentID,
		Metadata: map[string]any{
			"new_slot_id":  newSlot.SlotID,
			"token_number": updated.TokenNumber,
		},
	})

	return updated, nil
}
