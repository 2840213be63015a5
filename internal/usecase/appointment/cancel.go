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

type CancelResult struct {
	Message string `json:"message"`
}

type CancelAppointment struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewCancelAppointment(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute releases the appointment's token and marks it CANCELED.
// Canceling an already-canceled appointment is a no-op success, not an
// error. Rows are never deleted.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	actor scheduling.Actor,
) (*CancelResult, error) {

	var result *CancelResult
	var released *models.Slot
	var canceledID string
	clamped := false

	err := uc.repo.Transaction(ctx, func(tx scheduling.Repository) error {

		ap, err := tx.GetAppointment(ctx, appointmentID)
		if err != nil {
			if errors.Is(err, scheduling.ErrNotFound) {
				return httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
			}
			return err
		}

		if ap.PatientUserID != actor.UserID && ap.DoctorUserID != actor.UserID {
			return httperr.ErrForbidden(
				"not_authorized",
				"You are not authorized to cancel this appointment.",
			)
		}

		if ap.Status == string(scheduling.StatusCanceled) {
			result = &CancelResult{Message: "Appointment was already canceled."}
			return nil
		}

		if ap.SlotID != "" {
			slot, err := tx.GetSlotForUpdate(ctx, ap.SlotID)
			switch {
			case err == nil:
				if slot.TokensIssued == 0 {
					clamped = true
				} else {
					slot.TokensIssued--
				}
				if err := tx.SaveSlot(ctx, slot); err != nil {
					return err
				}
				released = slot
			case errors.Is(err, scheduling.ErrNotFound):
				// Stale slot reference; nothing to release.
			default:
				return err
			}
		}

		ap.Status = string(scheduling.StatusCanceled)
		if err := tx.SaveAppointment(ctx, ap); err != nil {
			return err
		}

		canceledID = ap.AppointmentID
		result = &CancelResult{Message: "Appointment successfully canceled."}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if released != nil {
		uc.cache.Invalidate(ctx, released.DoctorUserID, released.Date)

		if clamped {
			uc.audit.Dispatch(audit.Event{
				UserID:   &actor.UserID,
				Action:   "slot_counter_clamped",
				Entity:   "slot",
				EntityID: &released.SlotID,
			})
		}
	}

	if canceledID != "" {
		uc.audit.Dispatch(audit.Event{
			UserID:   &actor.UserID,
			Action:   "appointment_canceled",
			Entity:   "appointment",
			EntityID: &canceledID,
		})
	}

	return result, nil
}
