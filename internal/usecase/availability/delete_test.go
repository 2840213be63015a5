package availability

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository/memory"
)

func TestDeleteEmptySlot(t *testing.T) {
	repo := memory.New()
	seedSlot(repo, "slot-1", "2025-07-21", "09:00", 0, 5)

	uc := NewDeleteAvailability(repo, nil, nil)
	res, err := uc.Execute(context.Background(), scheduling.RealRef("slot-1"), doctorActor())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Message != "Slot deleted successfully." {
		t.Errorf("message = %q", res.Message)
	}
	if _, ok := repo.Slots["slot-1"]; ok {
		t.Error("slot still present")
	}
}

func TestDeleteBookedSlotRejected(t *testing.T) {
	repo := memory.New()
	seedSlot(repo, "slot-1", "2025-07-21", "09:00", 2, 5)

	uc := NewDeleteAvailability(repo, nil, nil)
	_, err := uc.Execute(context.Background(), scheduling.RealRef("slot-1"), doctorActor())

	if !httperr.IsBusiness(err, "slot_has_appointments") {
		t.Fatalf("err = %v, want slot_has_appointments", err)
	}
	if _, ok := repo.Slots["slot-1"]; !ok {
		t.Error("booked slot deleted")
	}
}

func TestDeleteSlotRequiresOwner(t *testing.T) {
	repo := memory.New()
	seedSlot(repo, "slot-1", "2025-07-21", "09:00", 0, 5)

	uc := NewDeleteAvailability(repo, nil, nil)
	_, err := uc.Execute(
		context.Background(),
		scheduling.RealRef("slot-1"),
		scheduling.Actor{UserID: otherID},
	)

	if !httperr.IsBusiness(err, "not_own_availability") {
		t.Fatalf("err = %v, want not_own_availability", err)
	}
}

func TestDeleteUnknownSlot(t *testing.T) {
	repo := memory.New()

	uc := NewDeleteAvailability(repo, nil, nil)
	_, err := uc.Execute(context.Background(), scheduling.RealRef("nope"), doctorActor())

	if !httperr.IsBusiness(err, "slot_not_found") {
		t.Fatalf("err = %v, want slot_not_found", err)
	}
}

func TestDeleteTemplate(t *testing.T) {
	repo := memory.New()
	seedTemplate(repo, "tmpl-1", 1, "09:00")
	seedSlot(repo, "materialized", "2025-07-21", "09:00", 3, 5)

	uc := NewDeleteAvailability(repo, nil, nil)
	res, err := uc.Execute(context.Background(), scheduling.RecurringRef("tmpl-1"), doctorActor())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Message != "Recurring slot deleted successfully." {
		t.Errorf("message = %q", res.Message)
	}
	if _, ok := repo.Templates["tmpl-1"]; ok {
		t.Error("template still present")
	}
	if _, ok := repo.Slots["materialized"]; !ok {
		t.Error("materialized slot removed with its template")
	}
}

func TestDeleteUnknownTemplate(t *testing.T) {
	repo := memory.New()

	uc := NewDeleteAvailability(repo, nil, nil)
	_, err := uc.Execute(context.Background(), scheduling.RecurringRef("nope"), doctorActor())

	if !httperr.IsBusiness(err, "recurring_slot_not_found") {
		t.Fatalf("err = %v, want recurring_slot_not_found", err)
	}
}

func TestDeleteTemplateRequiresOwner(t *testing.T) {
	repo := memory.New()
	seedTemplate(repo, "tmpl-1", 1, "09:00")

	uc := NewDeleteAvailability(repo, nil, nil)
	_, err := uc.Execute(
		context.Background(),
		scheduling.RecurringRef("tmpl-1"),
		scheduling.Actor{UserID: otherID},
	)

	if !httperr.IsBusiness(err, "not_own_availability") {
		t.Fatalf("err = %v, want not_own_availability", err)
	}
}
