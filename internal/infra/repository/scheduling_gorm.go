package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return scheduling.ErrNotFound
	}
	return err
}

// Transaction yields a repository bound to one database transaction;
// returning an error rolls everything back.
func (r *SchedulingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx scheduling.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SchedulingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Slot
// --------------------------------------------------

func (r *SchedulingGormRepository) GetSlot(
	ctx context.Context,
	slotID string,
) (*models.Slot, error) {

	var slot models.Slot
	if err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		First(&slot).Error; err != nil {
		return nil, notFound(err)
	}
	return &slot, nil
}

func (r *SchedulingGormRepository) GetSlotForUpdate(
	ctx context.Context,
	slotID string,
) (*models.Slot, error) {

	var slot models.Slot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("slot_id = ?", slotID).
		First(&slot).Error; err != nil {
		return nil, notFound(err)
	}
	return &slot, nil
}

func (r *SchedulingGormRepository) FindSlotByKeyForUpdate(
	ctx context.Context,
	doctorUserID, date, session string,
) (*models.Slot, error) {

	var slot models.Slot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"doctor_user_id = ? AND date = ? AND session = ?",
			doctorUserID, date, session,
		).
		First(&slot).Error; err != nil {
		return nil, notFound(err)
	}
	return &slot, nil
}

func (r *SchedulingGormRepository) ListActiveSlots(
	ctx context.Context,
	doctorUserID, date string,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Where(
			"doctor_user_id = ? AND date = ? AND is_active = ?",
			doctorUserID, date, true,
		).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SchedulingGormRepository) CreateSlot(
	ctx context.Context,
	slot *models.Slot,
) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *SchedulingGormRepository) SaveSlot(
	ctx context.Context,
	slot *models.Slot,
) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *SchedulingGormRepository) DeleteSlot(
	ctx context.Context,
	slot *models.Slot,
) error {
	return r.db.WithContext(ctx).Delete(slot).Error
}

// --------------------------------------------------
// Recurring template
// --------------------------------------------------

func (r *SchedulingGormRepository) GetTemplate(
	ctx context.Context,
	templateID string,
) (*models.RecurringAvailability, error) {

	var template models.RecurringAvailability
	if err := r.db.WithContext(ctx).
		Where("recurring_availability_id = ?", templateID).
		First(&template).Error; err != nil {
		return nil, notFound(err)
	}
	return &template, nil
}

func (r *SchedulingGormRepository) ListTemplates(
	ctx context.Context,
	doctorUserID string,
) ([]models.RecurringAvailability, error) {

	var templates []models.RecurringAvailability
	if err := r.db.WithContext(ctx).
		Where("doctor_user_id = ?", doctorUserID).
		Order("weekday ASC, session ASC, start_time ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *SchedulingGormRepository) ListTemplatesForWeekday(
	ctx context.Context,
	doctorUserID string,
	weekday int,
) ([]models.RecurringAvailability, error) {

	var templates []models.RecurringAvailability
	if err := r.db.WithContext(ctx).
		Where("doctor_user_id = ? AND weekday = ?", doctorUserID, weekday).
		Order("start_time ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *SchedulingGormRepository) CreateTemplates(
	ctx context.Context,
	templates []models.RecurringAvailability,
) error {
	if len(templates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&templates).Error
}

func (r *SchedulingGormRepository) DeleteTemplatesByWeekdays(
	ctx context.Context,
	doctorUserID string,
	weekdays []int,
	session string,
) error {
	return r.db.WithContext(ctx).
		Where(
			"doctor_user_id = ? AND weekday IN ? AND session = ?",
			doctorUserID, weekdays, session,
		).
		Delete(&models.RecurringAvailability{}).Error
}

func (r *SchedulingGormRepository) DeleteTemplate(
	ctx context.Context,
	template *models.RecurringAvailability,
) error {
	return r.db.WithContext(ctx).Delete(template).Error
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("appointment_id = ?", appointmentID).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *SchedulingGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// CountAppointmentsForSlotKey derives occupancy for a not-yet-
// materialized recurring day by counting appointments whose slot
// matches the composite key.
func (r *SchedulingGormRepository) CountAppointmentsForSlotKey(
	ctx context.Context,
	doctorUserID, date, startTime, session string,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Joins("JOIN slots ON slots.slot_id = appointments.slot_id").
		Where(
			"appointments.doctor_user_id = ? AND slots.date = ? AND slots.start_time = ? AND slots.session = ?",
			doctorUserID, date, startTime, session,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SchedulingGormRepository) ListAppointmentsForPatient(
	ctx context.Context,
	patientUserID string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Doctor.User").
		Preload("Slot").
		Where("patient_user_id = ?", patientUserID).
		Order("created_at DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *SchedulingGormRepository) ListAppointmentsForDoctor(
	ctx context.Context,
	doctorUserID string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Patient.User").
		Preload("Slot").
		Where("doctor_user_id = ?", doctorUserID).
		Order("created_at DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Reschedule history
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateRescheduleHistory(
	ctx context.Context,
	h *models.RescheduleHistory,
) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// Compile-time check
var _ scheduling.Repository = (*SchedulingGormRepository)(nil)
