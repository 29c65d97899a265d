package utils

import (
	"testing"
	"time"
)

func TestParseDateValue(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2025-06-07", time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)},
		{"2025-06-07T09:30:00Z", time.Date(2025, 6, 7, 9, 30, 0, 0, time.UTC)},
		{"2025-06-07T09:30:00", time.Date(2025, 6, 7, 9, 30, 0, 0, time.UTC)},
		{"2025-06-07 09:30:00", time.Date(2025, 6, 7, 9, 30, 0, 0, time.UTC)},
		{"  2025-06-07  ", time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, err := ParseDateValue(tc.raw)
		if err != nil {
			t.Fatalf("ParseDateValue(%q): %v", tc.raw, err)
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseDateValue(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestParseDateValueRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "tomorrow", "07/06/2025", "2025-13-40"} {
		if _, err := ParseDateValue(raw); err == nil {
			t.Errorf("ParseDateValue(%q) should fail", raw)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		raw       string
		hour, min int
	}{
		{"9:30 AM", 9, 30},
		{"9:30 am", 9, 30},
		{"12:05 PM", 12, 5},
		{"12:05 AM", 0, 5},
		{"1:05PM", 13, 5},
		{"14:45", 14, 45},
		{"14:45:10", 14, 45},
		{"23:59", 23, 59},
		{" 9:30 pm ", 21, 30},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.raw)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q): %v", tc.raw, err)
		}
		if got.Hour() != tc.hour || got.Minute() != tc.min {
			t.Errorf("ParseTimeOfDay(%q) = %02d:%02d, want %02d:%02d", tc.raw, got.Hour(), got.Minute(), tc.hour, tc.min)
		}
	}
}

func TestParseTimeOfDayRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "noon", "25:00", "9:30 XM"} {
		if _, err := ParseTimeOfDay(raw); err == nil {
			t.Errorf("ParseTimeOfDay(%q) should fail", raw)
		}
	}
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	got := CombineDateTime(date, "9:30 AM")
	want := time.Date(2025, 6, 7, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineDateTime = %v, want %v", got, want)
	}

	got = CombineDateTime(date, "21:15")
	want = time.Date(2025, 6, 7, 21, 15, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineDateTime = %v, want %v", got, want)
	}
}

func TestCombineDateTimeKeepsEmbeddedClockOnBadTime(t *testing.T) {
	date := time.Date(2025, 6, 7, 11, 45, 0, 0, time.UTC)

	for _, raw := range []string{"", "later", "9;30"} {
		got := CombineDateTime(date, raw)
		if !got.Equal(date) {
			t.Errorf("CombineDateTime(date, %q) = %v, want embedded clock %v", raw, got, date)
		}
	}
}

func TestResolveInstant(t *testing.T) {
	got, err := ResolveInstant("2025-06-07", "2:00 PM")
	if err != nil {
		t.Fatalf("ResolveInstant: %v", err)
	}
	want := time.Date(2025, 6, 7, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ResolveInstant = %v, want %v", got, want)
	}

	if _, err := ResolveInstant("", "2:00 PM"); err == nil {
		t.Error("ResolveInstant with empty date should fail")
	}
	if _, err := ResolveInstant("soon", "2:00 PM"); err == nil {
		t.Error("ResolveInstant with unparsable date should fail")
	}
}

func TestResolveInstantOrNow(t *testing.T) {
	now := time.Date(2025, 6, 9, 18, 30, 0, 0, time.UTC)

	got, err := ResolveInstantOrNow("", "", now)
	if err != nil {
		t.Fatalf("ResolveInstantOrNow: %v", err)
	}
	if !got.Equal(now) {
		t.Errorf("empty date should fall back to now, got %v", got)
	}

	// The fallback covers a missing date only; a present but broken date is
	// still an error.
	if _, err := ResolveInstantOrNow("yesterday", "", now); err == nil {
		t.Error("unparsable date should fail, not fall back to now")
	}

	got, err = ResolveInstantOrNow("2025-06-09", "garbled", now)
	if err != nil {
		t.Fatalf("ResolveInstantOrNow: %v", err)
	}
	want := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("bad time of day should keep the date's clock, got %v", got)
	}
}
