package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/quitwise/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// An empty name means UTC; "Local" means the system timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	switch timezone {
	case "", "UTC":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// FormatTimestamp renders t in loc using the stored timestamp format.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.TimestampFormat)
}

// DayKey returns the calendar day (YYYY-MM-DD) t falls on in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateFormat)
}

// TimestampDay returns the YYYY-MM-DD prefix of a stored timestamp. Timestamps are
// stored already rendered in the ledger's location, so the prefix is the local day.
func TimestampDay(ts string) string {
	if len(ts) < len(constants.DateFormat) {
		return ts
	}
	return ts[:len(constants.DateFormat)]
}

// ParseTimestamp parses a stored event timestamp. Fractional seconds are accepted.
func ParseTimestamp(ts string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, ts)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) as midnight in loc.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// StartOfDay returns midnight of the day t falls on in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysBack returns the day keys of the n calendar days ending on now's day,
// oldest first. Days are stepped on the calendar so DST changes never skip a day.
func DaysBack(now time.Time, loc *time.Location, n int) []string {
	if n <= 0 {
		return nil
	}
	today := StartOfDay(now, loc)
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i).Format(constants.DateFormat))
	}
	return days
}

// AddDuration advances t by amount of the given goal unit. Weeks are seven days and
// months are calendar months; any fractional remainder is truncated.
func AddDuration(t time.Time, amount float64, unit string) (time.Time, error) {
	switch unit {
	case constants.UnitDays:
		return t.AddDate(0, 0, int(amount)), nil
	case constants.UnitWeeks:
		return t.AddDate(0, 0, int(amount*7)), nil
	case constants.UnitMonths:
		return t.AddDate(0, int(amount), 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown duration unit %q", unit)
	}
}
