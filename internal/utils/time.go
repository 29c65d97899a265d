package utils

import (
	"fmt"
	"strings"
	"time"
)

// Accepted date representations for trip dates. Anything else is rejected,
// never coerced.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Accepted time-of-day families: 12-hour with AM/PM suffix (1-2 digit hour,
// case-insensitive) and 24-hour HH:MM[:SS].
var timeOfDayLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"15:04:05",
	"15:04",
}

func ParseDateValue(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date value %q", raw)
}

func ParseTimeOfDay(raw string) (time.Time, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable time of day %q", raw)
}

// CombineDateTime overlays a time-of-day string onto a date value. When the
// time string is absent or unparsable the clock embedded in the date value
// itself is kept.
func CombineDateTime(date time.Time, timeOfDay string) time.Time {
	clock, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return date
	}

	year, month, day := date.Date()
	return time.Date(year, month, day, clock.Hour(), clock.Minute(), clock.Second(), 0, date.Location())
}

// ResolveInstant parses a date string and overlays an optional time-of-day
// string, concatenating the two into a single ISO-like instant. An empty date
// is an error; an unparsable date is an error.
func ResolveInstant(dateStr, timeOfDay string) (time.Time, error) {
	date, err := ParseDateValue(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return CombineDateTime(date, timeOfDay), nil
}

// ResolveInstantOrNow behaves like ResolveInstant but falls back to now when
// no date is supplied at all. Used for the effective return instant.
func ResolveInstantOrNow(dateStr, timeOfDay string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return now, nil
	}
	return ResolveInstant(dateStr, timeOfDay)
}

func FormatTimeISO(t time.Time) string {
	return t.Format(time.RFC3339)
}
