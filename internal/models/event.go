package models

import (
	"fmt"
	"strings"
	"time"
)

// ValuePlaceholder is rendered for forecast/previous cells the source leaves
// empty. It is never the empty string so message templates stay aligned.
const ValuePlaceholder = "—"

// Event is one high-impact calendar entry, normalized. Immutable after
// construction; the scheduler captures it by value at registration time.
type Event struct {
	Identity string
	Currency string
	Title    string
	Instant  time.Time
	Forecast string
	Previous string
}

// NewEvent normalizes raw cell values into an Event. Currency is uppercased,
// empty forecast/previous collapse to the placeholder, and Identity is
// derived from the resolved instant, currency and title.
func NewEvent(instant time.Time, currency, title, forecast, previous string) Event {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	title = strings.TrimSpace(title)
	if forecast = strings.TrimSpace(forecast); forecast == "" {
		forecast = ValuePlaceholder
	}
	if previous = strings.TrimSpace(previous); previous == "" {
		previous = ValuePlaceholder
	}
	return Event{
		Identity: Identity(instant, currency, title),
		Currency: currency,
		Title:    title,
		Instant:  instant,
		Forecast: forecast,
		Previous: previous,
	}
}

// Identity derives the dedup key for an event observation. Two observations
// of the same underlying event collapse to the same key across fetches, even
// with cosmetic casing differences in currency or title.
func Identity(instant time.Time, currency, title string) string {
	return strings.ToLower(fmt.Sprintf("%s|%s|%s", instant.Format(time.RFC3339), currency, title))
}
