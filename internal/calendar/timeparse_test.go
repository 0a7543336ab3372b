package calendar

import (
	"testing"
	"time"
)

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}

func TestResolveEventTimeClockForms(t *testing.T) {
	loc := mustLocation(t, "America/New_York")
	now := time.Date(2026, 8, 28, 7, 0, 0, 0, loc)

	tests := []struct {
		in   string
		hour int
		min  int
	}{
		{"8:30am", 8, 30},
		{"8am", 8, 0},
		{"12:15pm", 12, 15},
		{"12:01am", 0, 1},
		{"10:00PM", 22, 0}, // casing is normalized first
	}
	for _, tt := range tests {
		got, ok := ResolveEventTime(tt.in, now, loc)
		if !ok {
			t.Fatalf("ResolveEventTime(%q) not ok", tt.in)
		}
		want := time.Date(2026, 8, 28, tt.hour, tt.min, 0, 0, loc)
		if !got.Equal(want) {
			t.Fatalf("ResolveEventTime(%q) = %v, want %v", tt.in, got, want)
		}
	}
}

func TestResolveEventTimeLegacyCompound(t *testing.T) {
	loc := mustLocation(t, "America/New_York")
	now := time.Date(2026, 8, 28, 7, 0, 0, 0, loc)

	got, ok := ResolveEventTime("Fri Aug 28, 8:30am", now, loc)
	if !ok {
		t.Fatalf("legacy compound form should parse")
	}
	want := time.Date(2026, 8, 28, 8, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// Compound form anchors to the current year, not year zero.
	got, ok = ResolveEventTime("Tue Sep 1, 2pm", now, loc)
	if !ok || got.Year() != 2026 {
		t.Fatalf("got %v ok=%v, want year 2026", got, ok)
	}
}

func TestResolveEventTimeSkipsNonTimes(t *testing.T) {
	loc := mustLocation(t, "America/New_York")
	now := time.Date(2026, 8, 28, 7, 0, 0, 0, loc)

	for _, in := range []string{"", "All Day", "Tentative", "Day 2", "n/a"} {
		if _, ok := ResolveEventTime(in, now, loc); ok {
			t.Fatalf("ResolveEventTime(%q) should be skipped", in)
		}
	}
}

func TestResolveEventTimeIsUTCConvertible(t *testing.T) {
	loc := mustLocation(t, "America/New_York")
	now := time.Date(2026, 8, 28, 7, 0, 0, 0, loc)

	got, ok := ResolveEventTime("8:30am", now, loc)
	if !ok {
		t.Fatalf("not ok")
	}
	// ET is UTC-4 in August.
	if want := time.Date(2026, 8, 28, 12, 30, 0, 0, time.UTC); !got.UTC().Equal(want) {
		t.Fatalf("UTC conversion = %v, want %v", got.UTC(), want)
	}
}

func TestClockRoundTrip(t *testing.T) {
	loc := mustLocation(t, "America/New_York")
	now := time.Date(2026, 8, 28, 7, 0, 0, 0, loc)

	for _, in := range []string{"8:30am", "12:15pm", "9:00pm"} {
		got, ok := ResolveEventTime(in, now, loc)
		if !ok {
			t.Fatalf("ResolveEventTime(%q) not ok", in)
		}
		if out := FormatLocalClock(got, loc); out != in {
			t.Fatalf("round trip %q -> %q", in, out)
		}
	}
}
