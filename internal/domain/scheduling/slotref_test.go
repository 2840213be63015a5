package scheduling

import "testing"

func TestParseSlotRefReal(t *testing.T) {
	ref := ParseSlotRef("3f6f2d1e-9a7b-4c4e-8a12-000000000001")

	if ref.IsRecurring() {
		t.Fatal("plain id parsed as recurring")
	}
	if ref.Kind() != RefReal {
		t.Fatalf("kind = %v, want RefReal", ref.Kind())
	}
	if ref.ID() != "3f6f2d1e-9a7b-4c4e-8a12-000000000001" {
		t.Fatalf("id = %q", ref.ID())
	}
}

func TestParseSlotRefRecurring(t *testing.T) {
	ref := ParseSlotRef("recurring-3f6f2d1e-9a7b-4c4e-8a12-000000000001")

	if !ref.IsRecurring() {
		t.Fatal("prefixed id not parsed as recurring")
	}
	if ref.ID() != "3f6f2d1e-9a7b-4c4e-8a12-000000000001" {
		t.Fatalf("id = %q, prefix not stripped", ref.ID())
	}
}

func TestSlotRefStringRoundTrip(t *testing.T) {
	for _, raw := range []string{
		"some-slot-id",
		"recurring-some-template-id",
	} {
		if got := ParseSlotRef(raw).String(); got != raw {
			t.Errorf("round trip of %q = %q", raw, got)
		}
	}
}

func TestRecurringSlotID(t *testing.T) {
	if got := RecurringSlotID("abc"); got != "recurring-abc" {
		t.Fatalf("RecurringSlotID = %q", got)
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"SCHEDULED", "COMPLETED", "CANCELED", "RESCHEDULED"} {
		if _, ok := ParseStatus(valid); !ok {
			t.Errorf("ParseStatus(%q) rejected", valid)
		}
	}
	for _, invalid := range []string{"", "scheduled", "DONE"} {
		if _, ok := ParseStatus(invalid); ok {
			t.Errorf("ParseStatus(%q) accepted", invalid)
		}
	}
}
