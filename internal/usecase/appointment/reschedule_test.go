package appointment

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository/memory"
)

func TestRescheduleMovesToken(t *testing.T) {
	repo := memory.New()
	seedSlot(repo, "slot-a", "2025-07-21", 5, 10)
	seedSlot(repo, "slot-b", "2025-07-22", 2, 10)
	seedAppointment(repo, "ap-1", "slot-a", string(scheduling.StatusScheduled), 5)

	uc := NewRescheduleAppointment(repo, nil, nil)
	ap, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: "ap-1",
		NewRef:        scheduling.RealRef("slot-b"),
	}, patientActor())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got := repo.Slots["slot-a"].TokensIssued; got != 4 {
		t.Errorf("old slot tokens = %d, want 4", got)
	}
	if got := repo.Slots["slot-b"].TokensIssued; got != 3 {
		t.Errorf("new slot tokens = %d, want 3", got)
	}
	if ap.SlotID != "slot-b" {
		t.Errorf("slot id = %q, want slot-b", ap.SlotID)
	}
	if ap.TokenNumber != 3 {
		t.Errorf("token number = %d, want 3", ap.TokenNumber)
	}
	if ap.Status != string(scheduling.StatusScheduled) {
		t.Errorf("status = %q, reschedule must keep SCHEDULED", ap.Status)
	}

	if len(repo.History) != 1 {
		t.Fatalf("history entries = %d, want 1", len(repo.History))
	}
	h := repo.History[0]
	if h.AppointmentID != "ap-1" || h.OriginalDate != "2025-07-21" || h.NewDate != "2025-07-22" {
		t.Errorf("history = %+v", h)
	}
}

func TestRescheduleSameSlotRejected(t *testing.T) {
	repo := memory.New()
	seedSlot(repo, "slot-a", "2025-07-21", 3, 10)
	seedAppointment(repo, "ap-1", "slot-a", string(scheduling.StatusScheduled), 3)

	uc := NewRescheduleAppointment(repo, nil, nil)
	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: "ap-1",
		NewRef:        scheduling.RealRef("slot-a"),
	}, patientActor())

	if !httperr.IsBusiness(err, "same_slot") {
		t.Fatalf("err = %v, want same_slot", err)
	}
	if got := repo.Slots["slot-a"].TokensIssued; got != 3 {
		t.Errorf("tokens = %d, counter moved on a rejected reschedule", got)
	}
}

func TestRescheduleFullTargetRejected(t *testing.T) {
	repo := memory.New()
	seedSlot(repo, "slot-a", "2025-07-21", 3, 10)
	seedSlot(repo, "slot-b", "2025-07-22", 10, 10)
	seedAppointment(repo, "ap-1", "slot-a", string(scheduling.StatusScheduled), 3)

	uc := NewRescheduleAppointment(repo, nil, nil)
	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: "ap-1",
		NewRef:        scheduling.RealRef("slot-b"),
	}, patientActor())

	if !httperr.IsBusiness(err, "slot_full") {
		t.Fatalf("err = %v, want slot_full", err)
	}
	if got := repo.Slots["slot-a"].TokensIssued; got != 3 {
		t.Errorf("old slot tokens = %d, released on a failed reschedule", got)
	}
	if got := repo.Appointments["ap-1"].SlotID; got != "slot-a" {
		t.Errorf("appointment moved to %q on a failed reschedule", got)
	}
}

func TestRescheduleRequiresOwner(t *testing.T) {
	repo := memory.New()
	seedSlot(repo, "slot-a", "2025-07-21", 3, 10)
	seedSlot(repo, "slot-b", "2025-07-22", 0, 10)
	seedAppointment(repo, "ap-1", "slot-a", string(scheduling.StatusScheduled), 3)

	uc := NewRescheduleAppointment(repo, nil, nil)
	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: "ap-1",
		NewRef:        scheduling.RealRef("slot-b"),
	}, scheduling.Actor{UserID: strangerID})

	if !httperr.IsBusiness(err, "not_own_appointment") {
		t.Fatalf("err = %v, want not_own_appointment", err)
	}
}

func TestRescheduleRequiresScheduledStatus(t *testing.T) {
	repo := memory.New()
	seedSlot(repo, "slot-a", "2025-07-21", 3, 10)
	seedSlot(repo, "slot-b", "2025-07-22", 0, 10)
	seedAppointment(repo, "ap-1", "slot-a", string(scheduling.StatusCanceled), 3)

	uc := NewRescheduleAppointment(repo, nil, nil)
	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: "ap-1",
		NewRef:        scheduling.RealRef("slot-b"),
	}, patientActor())

	if !httperr.IsBusiness(err, "not_scheduled") {
		t.Fatalf("err = %v, want not_scheduled", err)
	}
}

func TestRescheduleOldSlotGone(t *testing.T) {
	repo := memory.New()
	seedSlot(repo, "slot-b", "2025-07-22", 2, 10)
	seedAppointment(repo, "ap-1", "slot-gone", string(scheduling.StatusScheduled), 1)

	uc := NewRescheduleAppointment(repo, nil, nil)
	ap, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: "ap-1",
		NewRef:        scheduling.RealRef("slot-b"),
	}, patientActor())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got := repo.Slots["slot-b"].TokensIssued; got != 3 {
		t.Errorf("new slot tokens = %d, want 3", got)
	}
	if ap.SlotID != "slot-b" || ap.TokenNumber != 3 {
		t.Errorf("appointment = slot %q token %d", ap.SlotID, ap.TokenNumber)
	}
	if len(repo.History) != 0 {
		t.Error("history written with no old slot row")
	}
}

func TestRescheduleClampsOldCounterAtZero(t *testing.T) {
	repo := memory.New()
	seedSlot(repo, "slot-a", "2025-07-21", 0, 10)
	seedSlot(repo, "slot-b", "2025-07-22", 0, 10)
	seedAppointment(repo, "ap-1", "slot-a", string(scheduling.StatusScheduled), 1)

	uc := NewRescheduleAppointment(repo, nil, nil)
	if _, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: "ap-1",
		NewRef:        scheduling.RealRef("slot-b"),
	}, patientActor()); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got := repo.Slots["slot-a"].TokensIssued; got != 0 {
		t.Errorf("old slot tokens = %d, counter went negative", got)
	}
	if got := repo.Slots["slot-b"].TokensIssued; got != 1 {
		t.Errorf("new slot tokens = %d, want 1", got)
	}
}

func TestRescheduleRecurringTarget(t *testing.T) {
	repo := memory.New()
	seedSlot(repo, "slot-a", "2025-07-21", 1, 10)
	seedTemplate(repo, "tmpl-1", 2)
	seedAppointment(repo, "ap-1", "slot-a", string(scheduling.StatusScheduled), 1)

	uc := NewRescheduleAppointment(repo, nil, nil)
	ap, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: "ap-1",
		NewRef:        scheduling.RecurringRef("tmpl-1"),
		Date:          "2025-07-22",
	}, patientActor())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.SlotID == "slot-a" || ap.SlotID == "" {
		t.Fatalf("appointment not moved to a materialized slot: %q", ap.SlotID)
	}
	target := repo.Slots[ap.SlotID]
	if target.Date != "2025-07-22" || target.TokensIssued != 1 {
		t.Errorf("materialized target = %+v", target)
	}
	if got := repo.Slots["slot-a"].TokensIssued; got != 0 {
		t.Errorf("old slot tokens = %d, want 0", got)
	}
}

func TestRescheduleUnknownAppointment(t *testing.T) {
	repo := memory.New()

	uc := NewRescheduleAppointment(repo, nil, nil)
	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: "nope",
		NewRef:        scheduling.RealRef("slot-b"),
	}, patientActor())

	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("err = %v, want appointment_not_found", err)
	}
}
