package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ngmaloney/volunteer-terminal/internal/models"
)

const (
	// ICSProductID identifies this program in exported calendars
	ICSProductID = "-//Volunteer Terminal//Favorites//EN"

	dateLayout = "2006-01-02"
)

// uidNamespace scopes the deterministic event UIDs
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/ngmaloney/volunteer-terminal"))

// EventUID returns a stable UID for an opportunity so re-imports update instead of duplicating
func EventUID(o models.Opportunity) string {
	return uuid.NewSHA1(uidNamespace, []byte(fmt.Sprintf("opportunity/%d/%s", o.ID, o.Date))).String()
}

// WriteICS writes an iCalendar document with one all-day event per opportunity.
// Opportunities whose date is not YYYY-MM-DD are skipped. It returns the
// number of events written.
func WriteICS(w io.Writer, items []models.Opportunity, now time.Time) (int, error) {
	var b strings.Builder

	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:%s", ICSProductID)
	line("CALSCALE:GREGORIAN")
	line("X-WR-CALNAME:Volunteer Favorites")

	written := 0
	for _, o := range items {
		day, err := time.Parse(dateLayout, o.Date)
		if err != nil {
			continue
		}

		line("BEGIN:VEVENT")
		line("UID:%s", EventUID(o))
		line("DTSTAMP:%s", now.UTC().Format("20060102T150405Z"))
		line("DTSTART;VALUE=DATE:%s", day.Format("20060102"))
		line("DTEND;VALUE=DATE:%s", day.AddDate(0, 0, 1).Format("20060102"))
		line("SUMMARY:%s", escapeText(o.Title))
		line("DESCRIPTION:%s", escapeText(fmt.Sprintf("%s\n%s\nContact: %s", o.Organization, o.DisplayDescription(), o.Contact)))
		line("LOCATION:%s", escapeText(o.Location))
		if o.HasCoordinates() {
			line("GEO:%f;%f", *o.Latitude, *o.Longitude)
		}
		line("END:VEVENT")
		written++
	}

	line("END:VCALENDAR")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return 0, fmt.Errorf("writing calendar: %w", err)
	}
	return written, nil
}

// escapeText escapes a TEXT value (RFC 5545 section 3.3.11)
func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
