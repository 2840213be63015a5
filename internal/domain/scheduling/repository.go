package scheduling

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ErrNotFound is returned by lookups when no row matches. Storage
// implementations map their own not-found errors onto it.
var ErrNotFound = errors.New("record not found")

// Repository is the persistence contract of the scheduling core.
//
// Transaction runs fn against a repository bound to one storage
// transaction; any error aborts it atomically. The ForUpdate variants
// acquire a row-level pessimistic write lock that is held until the
// transaction ends - all capacity changes go through them.
type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Slot --------
	GetSlot(ctx context.Context, slotID string) (*models.Slot, error)
	GetSlotForUpdate(ctx context.Context, slotID string) (*models.Slot, error)
	FindSlotByKeyForUpdate(ctx context.Context, doctorUserID, date, session string) (*models.Slot, error)
	ListActiveSlots(ctx context.Context, doctorUserID, date string) ([]models.Slot, error)
	CreateSlot(ctx context.Context, slot *models.Slot) error
	SaveSlot(ctx context.Context, slot *models.Slot) error
	DeleteSlot(ctx context.Context, slot *models.Slot) error

	// -------- Recurring template --------
	GetTemplate(ctx context.Context, templateID string) (*models.RecurringAvailability, error)
	ListTemplates(ctx context.Context, doctorUserID string) ([]models.RecurringAvailability, error)
	ListTemplatesForWeekday(ctx context.Context, doctorUserID string, weekday int) ([]models.RecurringAvailability, error)
	CreateTemplates(ctx context.Context, templates []models.RecurringAvailability) error
	DeleteTemplatesByWeekdays(ctx context.Context, doctorUserID string, weekdays []int, session string) error
	DeleteTemplate(ctx context.Context, template *models.RecurringAvailability) error

	// -------- Appointment --------
	GetAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error)
	GetAppointmentForUpdate(ctx context.Context, appointmentID string) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	SaveAppointment(ctx context.Context, ap *models.Appointment) error
	CountAppointmentsForSlotKey(ctx context.Context, doctorUserID, date, startTime, session string) (int64, error)
	ListAppointmentsForPatient(ctx context.Context, patientUserID string) ([]models.Appointment, error)
	ListAppointmentsForDoctor(ctx context.Context, doctorUserID string) ([]models.Appointment, error)

	// -------- Reschedule history --------
	CreateRescheduleHistory(ctx context.Context, h *models.RescheduleHistory) error
}
