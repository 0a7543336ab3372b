package calendar

import (
	"strings"
	"time"
)

// Clock-only layouts the calendar uses for same-day rows.
var clockLayouts = []string{
	"3:04pm", // 8:30am
	"3pm",    // 8am
}

// Legacy compound layouts carry their own date but no year.
var legacyLayouts = []string{
	"Mon Jan 2, 3:04pm",
	"Mon Jan 2, 3pm",
}

// ResolveEventTime turns a raw time cell into an absolute instant in loc.
// Clock forms are anchored to now's calendar day; legacy compound forms to
// now's year. All-day markers and anything unparseable report ok=false,
// which callers treat as "skip the row".
func ResolveEventTime(raw string, now time.Time, loc *time.Location) (time.Time, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range clockLayouts {
		clock, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		day := now.In(loc)
		return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), true
	}

	for _, layout := range legacyLayouts {
		parsed, err := time.ParseInLocation(layout, raw, loc)
		if err != nil {
			continue
		}
		return time.Date(now.In(loc).Year(), parsed.Month(), parsed.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc), true
	}

	// "All Day", "Tentative", "Day 2", ... land here.
	return time.Time{}, false
}

// FormatLocalClock renders an instant back into the calendar's clock form.
func FormatLocalClock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("3:04pm")
}
