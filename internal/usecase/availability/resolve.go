package availability

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dates"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// ResolveAvailability turns stored capacity into the bookable slot set
// for one (doctor, date). Pure read path, safe to call repeatedly.
type ResolveAvailability struct {
	repo  scheduling.Repository
	cache *cache.Availability
}

func NewResolveAvailability(
	repo scheduling.Repository,
	cache *cache.Availability,
) *ResolveAvailability {
	return &ResolveAvailability{repo: repo, cache: cache}
}

func (uc *ResolveAvailability) Execute(
	ctx context.Context,
	doctorUserID string,
	date string,
) ([]scheduling.SlotView, error) {

	weekday, err := dates.Weekday(date)
	if err != nil {
		return nil, httperr.ErrBadRequest("invalid_date", "date must be YYYY-MM-DD.")
	}

	if views, ok := uc.cache.Get(ctx, doctorUserID, date); ok {
		return views, nil
	}

	// 1. One-time slots fully shadow recurring templates for the date.
	slots, err := uc.repo.ListActiveSlots(ctx, doctorUserID, date)
	if err != nil {
		return nil, err
	}

	if len(slots) > 0 {
		views := make([]scheduling.SlotView, 0, len(slots))
		for i := range slots {
			views = append(views, scheduling.ViewFromSlot(&slots[i]))
		}
		uc.cache.Set(ctx, doctorUserID, date, views)
		return views, nil
	}

	// 2. Project the weekly templates for that weekday onto the date,
	// deriving occupancy by counting appointments against the key.
	templates, err := uc.repo.ListTemplatesForWeekday(ctx, doctorUserID, weekday)
	if err != nil {
		return nil, err
	}

	views := make([]scheduling.SlotView, 0, len(templates))
	for i := range templates {
		t := &templates[i]

		booked, err := uc.repo.CountAppointmentsForSlotKey(
			ctx,
			doctorUserID,
			date,
			t.StartTime,
			t.Session,
		)
		if err != nil {
			return nil, err
		}

		views = append(views, scheduling.ViewFromTemplate(t, date, int(booked)))
	}

	uc.cache.Set(ctx, doctorUserID, date, views)
	return views, nil
}
