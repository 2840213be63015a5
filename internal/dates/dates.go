package dates

import "time"

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a calendar date. All scheduling dates are UTC-dated:
// a slot for "2025-07-18" means that calendar day, not an instant.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// Weekday returns 0=Sunday .. 6=Saturday for a date string.
func Weekday(date string) (int, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return int(d.Weekday()), nil
}

// IsValidClock reports whether s is an "HH:MM" time of day.
func IsValidClock(s string) bool {
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// Today returns the current UTC date string.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}
