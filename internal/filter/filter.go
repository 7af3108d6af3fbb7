// Package filter selects the opportunities matching the current search text
// and category.
package filter

import (
	"strings"

	"github.com/ngmaloney/volunteer-terminal/internal/models"
)

// AllCategories is the category selector value that disables category filtering.
// The empty string is treated the same way.
const AllCategories = "all"

// Criteria holds the live search inputs
type Criteria struct {
	Search   string
	Category string
}

// Matches reports whether o satisfies both the category and the text predicate.
func Matches(o models.Opportunity, c Criteria) bool {
	if c.Category != "" && c.Category != AllCategories && o.Category != c.Category {
		return false
	}

	term := strings.ToLower(c.Search)
	return strings.Contains(strings.ToLower(o.Title), term) ||
		strings.Contains(strings.ToLower(o.Description), term) ||
		strings.Contains(strings.ToLower(o.Location), term)
}

// Apply returns the opportunities matching c in their original order.
// The result is always a new slice.
func Apply(collection []models.Opportunity, c Criteria) []models.Opportunity {
	filtered := make([]models.Opportunity, 0, len(collection))
	for _, o := range collection {
		if Matches(o, c) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
