package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// StatusUpdateResult is either an updated appointment or, when the
// target status is CANCELED, the cancel outcome.
type StatusUpdateResult struct {
	Appointment *models.Appointment
	Canceled    *CancelResult
}

type UpdateStatus struct {
	repo   scheduling.Repository
	cancel *CancelAppointment
	audit  *audit.Dispatcher
}

func NewUpdateStatus(
	repo scheduling.Repository,
	cancel *CancelAppointment,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:   repo,
		cancel: cancel,
		audit:  audit,
	}
}

// Execute applies a one-way status change. CANCELED delegates to the
// cancel flow so capacity accounting stays in one place; other targets
// are plain field updates with no capacity side effects.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID string,
	newStatus scheduling.Status,
	actor scheduling.Actor,
) (*StatusUpdateResult, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, scheduling.ErrNotFound) {
			return nil, httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
		}
		return nil, err
	}

	if ap.DoctorUserID != actor.UserID {
		return nil, httperr.ErrForbidden(
			"doctor_only",
			"Only the doctor can update the appointment status.",
		)
	}
	if ap.Status == string(scheduling.StatusCanceled) {
		return nil, httperr.ErrConflict(
			"already_canceled",
			"Cannot change the status of a canceled appointment.",
		)
	}

	if newStatus == scheduling.StatusCanceled {
		outcome, err := uc.cancel.Execute(ctx, appointmentID, actor)
		if err != nil {
			return nil, err
		}
		return &StatusUpdateResult{Canceled: outcome}, nil
	}

	ap.Status = string(newStatus)
	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_status_updated",
		Entity:   "appointment",
		EntityID: &ap.AppointmentID,
		Metadata: map[string]any{"status": newStatus},
	})

	return &StatusUpdateResult{Appointment: ap}, nil
}
