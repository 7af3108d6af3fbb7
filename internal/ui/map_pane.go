package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/volunteer-terminal/internal/mapview"
)

// mapRenderer is implemented by maps that can draw themselves as text
type mapRenderer interface {
	Render(width, height int, label func(i int) rune) string
	StaticURL(width, height int) string
	Visible(c mapview.Coordinate, width, height int) bool
}

const markerLabels = "123456789abcdefghijklmnopqrstuvwxyz"

// markerRune returns the grid label of the i-th marker
func markerRune(i int) rune {
	if i < len(markerLabels) {
		return rune(markerLabels[i])
	}
	return '*'
}

// renderMapPane renders the map grid and the marker legend
func (m Model) renderMapPane(width, height int) string {
	var content strings.Builder
	content.WriteString(sectionHeaderStyle.Render("🗺  Map"))
	content.WriteString("\n")

	mp := m.mapView.Map()
	if mp == nil {
		content.WriteString(mutedStyle.Render("Map not loaded"))
		return paneStyle.Width(width).Render(content.String())
	}

	markers := m.mapView.Markers()
	gridW, gridH := width-4, height/2
	r, drawn := mp.(mapRenderer)
	drawn = drawn && gridW > 0 && gridH > 0
	if drawn {
		for _, ch := range r.Render(gridW, gridH, markerRune) {
			switch ch {
			case '·', '+', '\n':
				content.WriteRune(ch)
			default:
				content.WriteString(markerStyle.Render(string(ch)))
			}
		}
		content.WriteString("\n")
		if u := r.StaticURL(600, 400); u != "" {
			content.WriteString(mutedStyle.Render("Ctrl+G: open full map"))
			content.WriteString("\n")
		}
	}

	if len(markers) == 0 {
		content.WriteString(mutedStyle.Render("No mapped opportunities"))
		return paneStyle.Width(width).Render(content.String())
	}

	center := m.mapView.Options().Center
	for i, pm := range markers {
		dist := mapview.HaversineKm(center, pm.Marker.Coordinate())
		line := fmt.Sprintf("%s %s (%.1f km)",
			markerStyle.Render(string(markerRune(i))),
			pm.Marker.Popup().Text(),
			dist)
		if drawn && !r.Visible(pm.Marker.Coordinate(), gridW, gridH) {
			line += mutedStyle.Render(" off map")
		}
		content.WriteString(lipgloss.NewStyle().MaxWidth(width - 4).Render(line))
		content.WriteString("\n")
	}

	return paneStyle.Width(width).Render(strings.TrimRight(content.String(), "\n"))
}

// renderFavoritesPane lists the saved favorites
func (m Model) renderFavoritesPane(width int) string {
	var content strings.Builder
	content.WriteString(sectionHeaderStyle.Render(fmt.Sprintf("★ Favorites (%d)", m.favorites.Len())))
	content.WriteString("\n")

	list := m.favorites.List()
	if len(list) == 0 {
		content.WriteString(mutedStyle.Render("No favorites yet. Ctrl+F on a card to add one."))
		return paneStyle.Width(width).Render(content.String())
	}

	for _, o := range list {
		content.WriteString(favoriteStyle.Render("★ "))
		content.WriteString(fmt.Sprintf("%s %s\n", o.Title, mutedStyle.Render(o.Date)))
	}
	content.WriteString(mutedStyle.Render("Ctrl+S: export to calendar file"))

	return paneStyle.Width(width).Render(content.String())
}
