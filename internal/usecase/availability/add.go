package availability

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dates"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type AddAvailabilityInput struct {
	DoctorUserID string

	// Exactly one of Date / Weekdays drives the operation: a date
	// creates a one-off slot, weekdays replace weekly templates.
	Date     string
	Weekdays []int

	Session   string
	StartTime string
	EndTime   string
	MaxTokens int
}

// ======================================================
// USE CASE
// ======================================================

type AddAvailability struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewAddAvailability(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
) *AddAvailability {
	return &AddAvailability{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *AddAvailability) Execute(
	ctx context.Context,
	in AddAvailabilityInput,
	actor scheduling.Actor,
) ([]scheduling.SlotView, error) {

	if in.DoctorUserID != actor.UserID {
		return nil, httperr.ErrForbidden(
			"not_own_availability",
			"You can only add availability for yourself.",
		)
	}

	if !dates.IsValidClock(in.StartTime) || !dates.IsValidClock(in.EndTime) {
		return nil, httperr.ErrBadRequest(
			"invalid_time",
			"start_time and end_time must be HH:MM times.",
		)
	}

	// Priority 1: a date creates a one-time override slot.
	if in.Date != "" {
		return uc.addOneTimeSlot(ctx, in, actor)
	}

	// Priority 2: weekdays replace the weekly templates for that set.
	if len(in.Weekdays) > 0 {
		return uc.replaceTemplates(ctx, in, actor)
	}

	return nil, httperr.ErrBadRequest(
		"missing_date_or_weekdays",
		"Either a date or at least one weekday must be provided.",
	)
}

func (uc *AddAvailability) addOneTimeSlot(
	ctx context.Context,
	in AddAvailabilityInput,
	actor scheduling.Actor,
) ([]scheduling.SlotView, error) {

	if _, err := dates.ParseDate(in.Date); err != nil {
		return nil, httperr.ErrBadRequest("invalid_date", "date must be YYYY-MM-DD.")
	}

	slot := &models.Slot{
		DoctorUserID: in.DoctorUserID,
		Date:         in.Date,
		Session:      in.Session,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		MaxTokens:    in.MaxTokens,
		TokensIssued: 0,
		IsActive:     true,
	}

	if err := uc.repo.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.DoctorUserID, in.Date)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "slot_added",
		Entity:   "slot",
		EntityID: &slot.SlotID,
	})

	return []scheduling.SlotView{scheduling.ViewFromSlot(slot)}, nil
}

func (uc *AddAvailability) replaceTemplates(
	ctx context.Context,
	in AddAvailabilityInput,
	actor scheduling.Actor,
) ([]scheduling.SlotView, error) {

	for _, wd := range in.Weekdays {
		if wd < 0 || wd > 6 {
			return nil, httperr.ErrBadRequest(
				"invalid_weekday",
				"Weekdays must be between 0 (Sunday) and 6 (Saturday).",
			)
		}
	}

	templates := make([]models.RecurringAvailability, 0, len(in.Weekdays))
	for _, wd := range in.Weekdays {
		templates = append(templates, models.RecurringAvailability{
			DoctorUserID: in.DoctorUserID,
			Weekday:      wd,
			Session:      in.Session,
			StartTime:    in.StartTime,
			EndTime:      in.EndTime,
			MaxTokens:    in.MaxTokens,
		})
	}

	// Replacing is delete-then-insert per (doctor, weekday set, session)
	// so at most one active template exists per key.
	err := uc.repo.Transaction(ctx, func(tx scheduling.Repository) error {
		if err := tx.DeleteTemplatesByWeekdays(ctx, in.DoctorUserID, in.Weekdays, in.Session); err != nil {
			return err
		}
		return tx.CreateTemplates(ctx, templates)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &actor.UserID,
		Action: "recurring_templates_replaced",
		Entity: "recurring_availability",
		Metadata: map[string]any{
			"weekdays": in.Weekdays,
			"session":  in.Session,
		},
	})

	// Shaped like the GET response so clients can treat both the same.
	today := dates.Today()
	views := make([]scheduling.SlotView, 0, len(templates))
	for i := range templates {
		views = append(views, scheduling.ViewFromTemplate(&templates[i], today, 0))
	}
	return views, nil
}
