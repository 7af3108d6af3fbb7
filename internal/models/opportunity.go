package models

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// plainText strips markup from free-text fields for display
var plainText = bluemonday.StrictPolicy()

// Opportunity represents one volunteer listing from the static data document.
// It is never modified after load.
type Opportunity struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Location     string   `json:"location"`
	Date         string   `json:"date"`     // Free-form display date (usually YYYY-MM-DD)
	Category     string   `json:"category"` // One of the configured categories
	Description  string   `json:"description"`
	Contact      string   `json:"contact"` // Email address
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether the opportunity can be placed on a map.
// 0,0 is a valid coordinate; only missing values make an entry unmappable.
func (o Opportunity) HasCoordinates() bool {
	return o.Latitude != nil && o.Longitude != nil
}

// FindByID returns the opportunity with the given id from list.
func FindByID(list []Opportunity, id int) (Opportunity, bool) {
	for _, o := range list {
		if o.ID == id {
			return o, true
		}
	}
	return Opportunity{}, false
}

// DisplayDescription returns the description with markup removed, for
// terminal and calendar output. The stored Description is left as loaded.
func (o Opportunity) DisplayDescription() string {
	// Sanitize escapes entities; display wants plain text back.
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(o.Description)))
}
