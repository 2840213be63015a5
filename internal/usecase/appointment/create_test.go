package appointment

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository/memory"
)

func TestCreateIssuesNextToken(t *testing.T) {
	repo := memory.New()
	seedSlot(repo, "slot-1", "2025-07-21", 2, 5)

	uc := NewCreateAppointment(repo, nil, nil)
	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		Ref:       scheduling.RealRef("slot-1"),
		Complaint: "headache",
	}, patientActor())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.TokenNumber != 3 {
		t.Errorf("token number = %d, want 3", ap.TokenNumber)
	}
	if ap.Status != string(scheduling.StatusScheduled) {
		t.Errorf("status = %q", ap.Status)
	}
	if ap.SlotID != "slot-1" {
		t.Errorf("slot id = %q", ap.SlotID)
	}
	if got := repo.Slots["slot-1"].TokensIssued; got != 3 {
		t.Errorf("tokens issued = %d, want 3", got)
	}
	if _, ok := repo.Appointments[ap.AppointmentID]; !ok {
		t.Error("appointment not persisted")
	}
}

func TestCreateFullSlotRejected(t *testing.T) {
	repo := memory.New()
	seedSlot(repo, "slot-1", "2025-07-21", 5, 5)

	uc := NewCreateAppointment(repo, nil, nil)
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		Ref: scheduling.RealRef("slot-1"),
	}, patientActor())

	if !httperr.IsBusiness(err, "slot_full") {
		t.Fatalf("err = %v, want slot_full", err)
	}
	if got := repo.Slots["slot-1"].TokensIssued; got != 5 {
		t.Errorf("tokens issued = %d, counter moved on a rejected booking", got)
	}
	if len(repo.Appointments) != 0 {
		t.Error("appointment created for a full slot")
	}
}

func TestCreateRequiresPatientRole(t *testing.T) {
	repo := memory.New()
	seedSlot(repo, "slot-1", "2025-07-21", 0, 5)

	uc := NewCreateAppointment(repo, nil, nil)
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		Ref: scheduling.RealRef("slot-1"),
	}, doctorActor())

	if !httperr.IsBusiness(err, "patients_only") {
		t.Fatalf("err = %v, want patients_only", err)
	}
	if repo.Writes != 0 {
		t.Errorf("writes = %d, want 0", repo.Writes)
	}
}

func TestCreateUnknownSlot(t *testing.T) {
	repo := memory.New()

	uc := NewCreateAppointment(repo, nil, nil)
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		Ref: scheduling.RealRef("nope"),
	}, patientActor())

	if !httperr.IsBusiness(err, "slot_not_found") {
		t.Fatalf("err = %v, want slot_not_found", err)
	}
}

func TestCreateRecurringMaterializesSlot(t *testing.T) {
	repo := memory.New()
	seedTemplate(repo, "tmpl-1", 1)

	uc := NewCreateAppointment(repo, nil, nil)
	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		Ref:  scheduling.RecurringRef("tmpl-1"),
		Date: "2025-07-21",
	}, patientActor())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(repo.Slots) != 1 {
		t.Fatalf("slots = %d, want exactly one materialized", len(repo.Slots))
	}
	slot := repo.Slots[ap.SlotID]
	if slot.Date != "2025-07-21" || slot.Session != "morning" ||
		slot.StartTime != "09:00" || slot.MaxTokens != 5 {
		t.Errorf("materialized slot does not carry template values: %+v", slot)
	}
	if !slot.IsActive {
		t.Error("materialized slot not active")
	}
	if slot.TokensIssued != 1 || ap.TokenNumber != 1 {
		t.Errorf("tokens = %d, token number = %d, want 1 and 1", slot.TokensIssued, ap.TokenNumber)
	}
}

func TestCreateRecurringReusesMaterializedSlot(t *testing.T) {
	repo := memory.New()
	seedTemplate(repo, "tmpl-1", 1)

	uc := NewCreateAppointment(repo, nil, nil)
	first, err := uc.Execute(context.Background(), CreateAppointmentInput{
		Ref:  scheduling.RecurringRef("tmpl-1"),
		Date: "2025-07-21",
	}, patientActor())
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}

	second, err := uc.Execute(context.Background(), CreateAppointmentInput{
		Ref:  scheduling.RecurringRef("tmpl-1"),
		Date: "2025-07-21",
	}, patientActor())
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	if len(repo.Slots) != 1 {
		t.Fatalf("slots = %d, second booking must reuse the first row", len(repo.Slots))
	}
	if second.SlotID != first.SlotID {
		t.Errorf("slot ids differ: %q vs %q", first.SlotID, second.SlotID)
	}
	if second.TokenNumber != 2 {
		t.Errorf("second token number = %d, want 2", second.TokenNumber)
	}
}

func TestCreateRecurringNeedsDate(t *testing.T) {
	repo := memory.New()
	seedTemplate(repo, "tmpl-1", 1)

	uc := NewCreateAppointment(repo, nil, nil)
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		Ref: scheduling.RecurringRef("tmpl-1"),
	}, patientActor())

	if !httperr.IsBusiness(err, "date_required") {
		t.Fatalf("err = %v, want date_required", err)
	}
}

func TestCreateRecurringUnknownTemplate(t *testing.T) {
	repo := memory.New()

	uc := NewCreateAppointment(repo, nil, nil)
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		Ref:  scheduling.RecurringRef("nope"),
		Date: "2025-07-21",
	}, patientActor())

	if !httperr.IsBusiness(err, "template_not_found") {
		t.Fatalf("err = %v, want template_not_found", err)
	}
	if len(repo.Slots) != 0 {
		t.Error("slot materialized for unknown template")
	}
}
