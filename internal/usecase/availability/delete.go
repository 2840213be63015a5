package availability

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

type DeleteResult struct {
	Message string `json:"message"`
}

type DeleteAvailability struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewDeleteAvailability(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
) *DeleteAvailability {
	return &DeleteAvailability{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *DeleteAvailability) Execute(
	ctx context.Context,
	ref scheduling.SlotRef,
	actor scheduling.Actor,
) (*DeleteResult, error) {

	if ref.IsRecurring() {
		return uc.deleteTemplate(ctx, ref.ID(), actor)
	}
	return uc.deleteSlot(ctx, ref.ID(), actor)
}

func (uc *DeleteAvailability) deleteTemplate(
	ctx context.Context,
	templateID string,
	actor scheduling.Actor,
) (*DeleteResult, error) {

	template, err := uc.repo.GetTemplate(ctx, templateID)
	if err != nil {
		if errors.Is(err, scheduling.ErrNotFound) {
			return nil, httperr.ErrNotFound("recurring_slot_not_found", "Recurring slot not found.")
		}
		return nil, err
	}

	if template.DoctorUserID != actor.UserID {
		return nil, httperr.ErrForbidden(
			"not_own_availability",
			"You can only delete your own recurring slots.",
		)
	}

	// Already-materialized slots are ordinary slots now and survive
	// the template's deletion.
	if err := uc.repo.DeleteTemplate(ctx, template); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "recurring_template_deleted",
		Entity:   "recurring_availability",
		EntityID: &template.RecurringAvailabilityID,
	})

	return &DeleteResult{Message: "Recurring slot deleted successfully."}, nil
}

func (uc *DeleteAvailability) deleteSlot(
	ctx context.Context,
	slotID string,
	actor scheduling.Actor,
) (*DeleteResult, error) {

	slot, err := uc.repo.GetSlot(ctx, slotID)
	if err != nil {
		if errors.Is(err, scheduling.ErrNotFound) {
			return nil, httperr.ErrNotFound("slot_not_found", "Specific slot not found.")
		}
		return nil, err
	}

	if slot.DoctorUserID != actor.UserID {
		return nil, httperr.ErrForbidden(
			"not_own_availability",
			"You can only delete your own slots.",
		)
	}

	if slot.TokensIssued > 0 {
		return nil, httperr.ErrConflict(
			"slot_has_appointments",
			"Cannot delete a slot with active appointments.",
		)
	}

	if err := uc.repo.DeleteSlot(ctx, slot); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, slot.DoctorUserID, slot.Date)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "slot_deleted",
		Entity:   "slot",
		EntityID: &slot.SlotID,
	})

	return &DeleteResult{Message: "Slot deleted successfully."}, nil
}
