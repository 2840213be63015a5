// Package memory holds an in-memory scheduling.Repository used by
// usecase tests. Transactions snapshot state and restore it on error,
// mirroring the rollback semantics of the gorm implementation.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository struct {
	mu sync.Mutex

	Slots        map[string]models.Slot
	Templates    map[string]models.RecurringAvailability
	Appointments map[string]models.Appointment
	History      []models.RescheduleHistory

	// Writes counts every mutating call, for idempotence assertions.
	Writes int
}

func New() *Repository {
	return &Repository{
		Slots:        make(map[string]models.Slot),
		Templates:    make(map[string]models.RecurringAvailability),
		Appointments: make(map[string]models.Appointment),
	}
}

func (r *Repository) Transaction(
	ctx context.Context,
	fn func(tx scheduling.Repository) error,
) error {
	r.mu.Lock()
	slots := copyMap(r.Slots)
	templates := copyMap(r.Templates)
	appointments := copyMap(r.Appointments)
	history := append([]models.RescheduleHistory(nil), r.History...)
	writes := r.Writes
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.Slots = slots
		r.Templates = templates
		r.Appointments = appointments
		r.History = history
		r.Writes = writes
		r.mu.Unlock()
		return err
	}
	return nil
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// --------------------------------------------------
// Slot
// --------------------------------------------------

func (r *Repository) GetSlot(ctx context.Context, slotID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.Slots[slotID]
	if !ok {
		return nil, scheduling.ErrNotFound
	}
	return &slot, nil
}

func (r *Repository) GetSlotForUpdate(ctx context.Context, slotID string) (*models.Slot, error) {
	return r.GetSlot(ctx, slotID)
}

func (r *Repository) FindSlotByKeyForUpdate(
	ctx context.Context,
	doctorUserID, date, session string,
) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, slot := range r.Slots {
		if slot.DoctorUserID == doctorUserID && slot.Date == date && slot.Session == session {
			s := slot
			return &s, nil
		}
	}
	return nil, scheduling.ErrNotFound
}

func (r *Repository) ListActiveSlots(
	ctx context.Context,
	doctorUserID, date string,
) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Slot
	for _, slot := range r.Slots {
		if slot.DoctorUserID == doctorUserID && slot.Date == date && slot.IsActive {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (r *Repository) CreateSlot(ctx context.Context, slot *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slot.SlotID == "" {
		slot.SlotID = uuid.NewString()
	}
	r.Slots[slot.SlotID] = *slot
	r.Writes++
	return nil
}

func (r *Repository) SaveSlot(ctx context.Context, slot *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Slots[slot.SlotID] = *slot
	r.Writes++
	return nil
}

func (r *Repository) DeleteSlot(ctx context.Context, slot *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.Slots, slot.SlotID)
	r.Writes++
	return nil
}

// --------------------------------------------------
// Recurring template
// --------------------------------------------------

func (r *Repository) GetTemplate(
	ctx context.Context,
	templateID string,
) (*models.RecurringAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.Templates[templateID]
	if !ok {
		return nil, scheduling.ErrNotFound
	}
	return &t, nil
}

func (r *Repository) ListTemplates(
	ctx context.Context,
	doctorUserID string,
) ([]models.RecurringAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.RecurringAvailability
	for _, t := range r.Templates {
		if t.DoctorUserID == doctorUserID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Weekday != b.Weekday {
			return a.Weekday < b.Weekday
		}
		if a.Session != b.Session {
			return a.Session < b.Session
		}
		return a.StartTime < b.StartTime
	})
	return out, nil
}

func (r *Repository) ListTemplatesForWeekday(
	ctx context.Context,
	doctorUserID string,
	weekday int,
) ([]models.RecurringAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.RecurringAvailability
	for _, t := range r.Templates {
		if t.DoctorUserID == doctorUserID && t.Weekday == weekday {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (r *Repository) CreateTemplates(
	ctx context.Context,
	templates []models.RecurringAvailability,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range templates {
		if templates[i].RecurringAvailabilityID == "" {
			templates[i].RecurringAvailabilityID = uuid.NewString()
		}
		r.Templates[templates[i].RecurringAvailabilityID] = templates[i]
	}
	r.Writes++
	return nil
}

func (r *Repository) DeleteTemplatesByWeekdays(
	ctx context.Context,
	doctorUserID string,
	weekdays []int,
	session string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	match := func(wd int) bool {
		for _, w := range weekdays {
			if w == wd {
				return true
			}
		}
		return false
	}
	for id, t := range r.Templates {
		if t.DoctorUserID == doctorUserID && t.Session == session && match(t.Weekday) {
			delete(r.Templates, id)
		}
	}
	r.Writes++
	return nil
}

func (r *Repository) DeleteTemplate(
	ctx context.Context,
	template *models.RecurringAvailability,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.Templates, template.RecurringAvailabilityID)
	r.Writes++
	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *Repository) GetAppointment(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.Appointments[appointmentID]
	if !ok {
		return nil, scheduling.ErrNotFound
	}
	return &ap, nil
}

func (r *Repository) GetAppointmentForUpdate(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {
	return r.GetAppointment(ctx, appointmentID)
}

func (r *Repository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ap.AppointmentID == "" {
		ap.AppointmentID = uuid.NewString()
	}
	r.Appointments[ap.AppointmentID] = *ap
	r.Writes++
	return nil
}

func (r *Repository) SaveAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Appointments[ap.AppointmentID] = *ap
	r.Writes++
	return nil
}

func (r *Repository) CountAppointmentsForSlotKey(
	ctx context.Context,
	doctorUserID, date, startTime, session string,
) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, ap := range r.Appointments {
		slot, ok := r.Slots[ap.SlotID]
		if !ok {
			continue
		}
		if ap.DoctorUserID == doctorUserID &&
			slot.Date == date &&
			slot.StartTime == startTime &&
			slot.Session == session {
			count++
		}
	}
	return count, nil
}

func (r *Repository) ListAppointmentsForPatient(
	ctx context.Context,
	patientUserID string,
) ([]models.Appointment, error) {
	return r.listAppointments(func(ap models.Appointment) bool {
		return ap.PatientUserID == patientUserID
	}), nil
}

func (r *Repository) ListAppointmentsForDoctor(
	ctx context.Context,
	doctorUserID string,
) ([]models.Appointment, error) {
	return r.listAppointments(func(ap models.Appointment) bool {
		return ap.DoctorUserID == doctorUserID
	}), nil
}

func (r *Repository) listAppointments(keep func(models.Appointment) bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.Appointments {
		if keep(ap) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return strings.Compare(out[i].AppointmentID, out[j].AppointmentID) < 0
	})
	return out
}

// --------------------------------------------------
// Reschedule history
// --------------------------------------------------

func (r *Repository) CreateRescheduleHistory(
	ctx context.Context,
	h *models.RescheduleHistory,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h.RescheduleID == "" {
		h.RescheduleID = uuid.NewString()
	}
	r.History = append(r.History, *h)
	r.Writes++
	return nil
}

// Compile-time check
var _ scheduling.Repository = (*Repository)(nil)
