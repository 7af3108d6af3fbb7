package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/volunteer-terminal/internal/models"
)

const (
	noResultsMessage  = "No volunteer opportunities found. Try adjusting your search."
	loadFailedMessage = "Failed to load volunteer opportunities. Please try again later."

	addFavoriteLabel    = "☆ Add to Favorites"
	removeFavoriteLabel = "★ Remove Favorite"
	calendarLabel       = "📅 Add to Calendar"
	contactLabel        = "✉ Contact"
)

// cardBinding is the data an action on a rendered card needs. The model
// replaces its bindings wholesale on every render, so keys only ever act on
// what is currently on screen.
type cardBinding struct {
	id      int
	title   string
	date    string
	contact string
}

// bindCards builds the action bindings for a freshly rendered list
func bindCards(list []models.Opportunity) []cardBinding {
	cards := make([]cardBinding, len(list))
	for i, o := range list {
		cards[i] = cardBinding{id: o.ID, title: o.Title, date: o.Date, contact: o.Contact}
	}
	return cards
}

// favoriteLabel returns the favorite control label for the current membership
func favoriteLabel(isFavorite bool) string {
	if isFavorite {
		return removeFavoriteLabel
	}
	return addFavoriteLabel
}

// renderCards renders one card per opportunity, in order
func renderCards(list []models.Opportunity, isFavorite func(id int) bool, selected, width int) []string {
	cards := make([]string, len(list))
	for i, o := range list {
		cards[i] = renderCard(o, isFavorite(o.ID), i == selected, width)
	}
	return cards
}

// renderResults rebuilds the whole results view from list
func renderResults(list []models.Opportunity, isFavorite func(id int) bool, selected, width int) string {
	if len(list) == 0 {
		return mutedStyle.Render(noResultsMessage)
	}
	return lipgloss.JoinVertical(lipgloss.Left, renderCards(list, isFavorite, selected, width)...)
}

func renderCard(o models.Opportunity, isFavorite, selected bool, width int) string {
	var lines []string

	lines = append(lines, cardTitleStyle.Render(o.Title))
	lines = append(lines, field("Organization", o.Organization))
	lines = append(lines, field("Location", o.Location))
	lines = append(lines, field("Date", o.Date))
	lines = append(lines, field("Category", o.Category))
	if desc := o.DisplayDescription(); desc != "" {
		lines = append(lines, desc)
	}

	fav := actionStyle.Render(favoriteLabel(isFavorite))
	if isFavorite {
		fav = favoriteStyle.Render(favoriteLabel(isFavorite))
	}
	lines = append(lines, actionStyle.Render(fmt.Sprintf("%s <mailto:%s>", contactLabel, o.Contact)))
	lines = append(lines, fav+"  "+actionStyle.Render(calendarLabel))

	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func field(label, value string) string {
	return labelStyle.Render(label+": ") + value
}
