package appointment

import (
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	doctorID   = "d0000000-0000-0000-0000-000000000001"
	patientID  = "p0000000-0000-0000-0000-000000000001"
	strangerID = "s0000000-0000-0000-0000-000000000001"
)

func patientActor() scheduling.Actor {
	return scheduling.Actor{UserID: patientID, Role: models.RolePatient}
}

func doctorActor() scheduling.Actor {
	return scheduling.Actor{UserID: doctorID, Role: models.RoleDoctor}
}

func seedSlot(repo *memory.Repository, id, date string, issued, max int) {
	repo.Slots[id] = models.Slot{
		SlotID:       id,
		DoctorUserID: doctorID,
		Date:         date,
		Session:      "morning",
		StartTime:    "09:00",
		EndTime:      "12:00",
		MaxTokens:    max,
		TokensIssued: issued,
		IsActive:     true,
	}
}

func seedTemplate(repo *memory.Repository, id string, weekday int) {
	repo.Templates[id] = models.RecurringAvailability{
		RecurringAvailabilityID: id,
		DoctorUserID:            doctorID,
		Weekday:                 weekday,
		Session:                 "morning",
		StartTime:               "09:00",
		EndTime:                 "12:00",
		MaxTokens:               5,
	}
}

func seedAppointment(repo *memory.Repository, id, slotID, status string, token int) {
	repo.Appointments[id] = models.Appointment{
		AppointmentID: id,
		DoctorUserID:  doctorID,
		PatientUserID: patientID,
		SlotID:        slotID,
		TokenNumber:   token,
		Status:        status,
	}
}
