// Package calendar builds "add to calendar" links and iCalendar exports for opportunities.
package calendar

import (
	"net/url"
	"strings"
)

// EventEditURL is the Google Calendar event creation page
const EventEditURL = "https://calendar.google.com/calendar/r/eventedit"

// EventURL returns a calendar link creating an all-day event named title on date.
// date is expected as YYYY-MM-DD; dashes are removed to get the compact
// YYYYMMDD form. The date is not validated, so a malformed date yields a
// malformed (but harmless) link.
func EventURL(title, date string) string {
	compact := CompactDate(date)
	text := strings.ReplaceAll(url.QueryEscape(title), "+", "%20")
	return EventEditURL + "?text=" + text + "&dates=" + compact + "/" + compact
}

// CompactDate strips the dashes from a YYYY-MM-DD date
func CompactDate(date string) string {
	return strings.ReplaceAll(date, "-", "")
}
