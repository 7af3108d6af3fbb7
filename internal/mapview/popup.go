package mapview

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/ngmaloney/volunteer-terminal/internal/models"
)

var (
	popupPolicy = bluemonday.UGCPolicy()
	textPolicy  = bluemonday.StrictPolicy()
)

// Popup is the literal markup attached to a marker
type Popup struct {
	HTML string
}

// NewPopup builds the popup for an opportunity: title, location and date.
// Field values are escaped so data can never inject markup.
func NewPopup(o models.Opportunity) Popup {
	markup := fmt.Sprintf("<h4>%s</h4><p>%s</p><p>%s</p>",
		html.EscapeString(o.Title),
		html.EscapeString(o.Location),
		html.EscapeString(o.Date))
	return Popup{HTML: popupPolicy.Sanitize(markup)}
}

// Text renders the popup as a single plain-text line
func (p Popup) Text() string {
	// Turn block boundaries into separators before stripping tags
	s := strings.NewReplacer("</h4>", " · ", "</p><p>", " · ").Replace(p.HTML)
	s = html.UnescapeString(textPolicy.Sanitize(s))
	return strings.TrimSuffix(strings.TrimSpace(s), " ·")
}
