package notifier

import (
	"fmt"
	"time"

	"forexalert/internal/models"
)

// FormatMessage renders the fixed warning template in Telegram HTML mode.
// The release time is shown as local wall-clock time in loc.
func FormatMessage(ev models.Event, lead time.Duration, loc *time.Location) string {
	return fmt.Sprintf(
		"⚠️ High-impact <b>%s</b> news in %d min\n\n"+
			"<b>%s</b>\n"+
			"⏰ Release time: <b>%s</b>\n"+
			"📊 Forecast: <b>%s</b>\n"+
			"📉 Previous: <b>%s</b>",
		ev.Currency,
		int(lead.Minutes()),
		ev.Title,
		ev.Instant.In(loc).Format("15:04"),
		ev.Forecast,
		ev.Previous,
	)
}
