package calendar

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"forexalert/internal/models"
)

// The page's markup is not contractually stable. Every field is extracted
// through a prioritized selector list; the first alternative with non-empty
// content wins, and a row failing any required field is skipped, not errored.
var (
	rowSelector = "tr.calendar__row, tr.calendar_row, tr.calendar-row, tr"

	highImpactSelector = ".calendar__impact-icon--high, .impact__icon--high, .impact.high, td.impact span.high, .ff-impact--high"
	impactCellSelector = ".calendar__impact, td.impact"

	currencySelectors = []string{".calendar__currency", "td.currency", ".currency"}
	titleSelectors    = []string{".calendar__event-title", "td.event", ".event"}
	timeSelectors     = []string{".calendar__time", "td.time", ".time"}
	forecastSelectors = []string{".calendar__forecast", "td.forecast", ".forecast"}
	previousSelectors = []string{".calendar__previous", "td.previous", ".previous"}
)

var whitespace = regexp.MustCompile(`\s+`)

// Parser filters calendar rows down to high-impact events for the tracked
// currencies and resolves their times against loc.
type Parser struct {
	loc        *time.Location
	currencies map[string]struct{}
}

func NewParser(loc *time.Location, currencies []string) *Parser {
	tracked := make(map[string]struct{}, len(currencies))
	for _, c := range currencies {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			tracked[c] = struct{}{}
		}
	}
	return &Parser{loc: loc, currencies: tracked}
}

// Parse extracts events from doc. Rows missing an impact marker, a tracked
// currency, a title or a parseable time are dropped silently; zero surviving
// rows is a valid (degraded) result, not an error.
func (p *Parser) Parse(doc *goquery.Document, now time.Time) []models.Event {
	var events []models.Event
	doc.Find(rowSelector).Each(func(_ int, row *goquery.Selection) {
		if !rowHasHighImpact(row) {
			return
		}
		currency := firstCellText(row, currencySelectors)
		if currency == "" {
			return
		}
		if _, ok := p.currencies[strings.ToUpper(currency)]; !ok {
			return
		}
		title := firstCellText(row, titleSelectors)
		if title == "" {
			return
		}
		instant, ok := ResolveEventTime(firstCellText(row, timeSelectors), now, p.loc)
		if !ok {
			return
		}
		forecast := firstCellText(row, forecastSelectors)
		previous := firstCellText(row, previousSelectors)
		events = append(events, models.NewEvent(instant, currency, title, forecast, previous))
	})
	return events
}

// rowHasHighImpact detects "red" rows by marker class first, then by the
// impact cell's text. Any one hit is sufficient.
func rowHasHighImpact(row *goquery.Selection) bool {
	if row.Find(highImpactSelector).Length() > 0 {
		return true
	}
	cell := row.Find(impactCellSelector).First()
	return cell.Length() > 0 && strings.Contains(strings.ToLower(cellText(cell)), "high")
}

func firstCellText(row *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if text := cellText(row.Find(sel).First()); text != "" {
			return text
		}
	}
	return ""
}

func cellText(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(sel.Text(), " "))
}
