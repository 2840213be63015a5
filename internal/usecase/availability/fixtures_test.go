package availability

import (
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	doctorID  = "d0000000-0000-0000-0000-000000000001"
	patientID = "p0000000-0000-0000-0000-000000000001"
	otherID   = "o0000000-0000-0000-0000-000000000001"
)

func doctorActor() scheduling.Actor {
	return scheduling.Actor{UserID: doctorID, Role: models.RoleDoctor}
}

func seedSlot(repo *memory.Repository, id, date, startTime string, issued, max int) {
	repo.Slots[id] = models.Slot{
		SlotID:       id,
		DoctorUserID: doctorID,
		Date:         date,
		Session:      "morning",
		StartTime:    startTime,
		EndTime:      "12:00",
		MaxTokens:    max,
		TokensIssued: issued,
		IsActive:     true,
	}
}

func seedTemplate(repo *memory.Repository, id string, weekday int, startTime string) {
	repo.Templates[id] = models.RecurringAvailability{
		RecurringAvailabilityID: id,
		DoctorUserID:            doctorID,
		Weekday:                 weekday,
		Session:                 "morning",
		StartTime:               startTime,
		EndTime:                 "12:00",
		MaxTokens:               5,
	}
}
