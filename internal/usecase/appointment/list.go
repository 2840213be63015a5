package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ListAppointments struct {
	repo scheduling.Repository
}

func NewListAppointments(repo scheduling.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) ForPatient(
	ctx context.Context,
	patientUserID string,
	actor scheduling.Actor,
) ([]models.Appointment, error) {

	if patientUserID != actor.UserID {
		return nil, httperr.ErrForbidden(
			"not_own_appointments",
			"You can only view your own appointments.",
		)
	}
	return uc.repo.ListAppointmentsForPatient(ctx, patientUserID)
}

func (uc *ListAppointments) ForDoctor(
	ctx context.Context,
	doctorUserID string,
	actor scheduling.Actor,
) ([]models.Appointment, error) {

	if doctorUserID != actor.UserID {
		return nil, httperr.ErrForbidden(
			"not_own_appointments",
			"You can only view your own appointments.",
		)
	}
	return uc.repo.ListAppointmentsForDoctor(ctx, doctorUserID)
}
