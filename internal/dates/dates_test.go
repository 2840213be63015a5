package dates

import "testing"

func TestWeekday(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2025-07-20", 0}, // Sunday
		{"2025-07-21", 1},
		{"2025-07-25", 5},
		{"2025-07-26", 6},
	}
	for _, tc := range cases {
		got, err := Weekday(tc.date)
		if err != nil {
			t.Fatalf("Weekday(%q): %v", tc.date, err)
		}
		if got != tc.want {
			t.Errorf("Weekday(%q) = %d, want %d", tc.date, got, tc.want)
		}
	}
}

func TestWeekdayInvalid(t *testing.T) {
	for _, bad := range []string{"", "not-a-date", "2025-13-01", "18-07-2025"} {
		if _, err := Weekday(bad); err == nil {
			t.Errorf("Weekday(%q) accepted", bad)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	for _, good := range []string{"00:00", "09:30", "23:59"} {
		if !IsValidClock(good) {
			t.Errorf("IsValidClock(%q) = false", good)
		}
	}
	for _, bad := range []string{"", "24:00", "9:3", "noon"} {
		if IsValidClock(bad) {
			t.Errorf("IsValidClock(%q) = true", bad)
		}
	}
}
