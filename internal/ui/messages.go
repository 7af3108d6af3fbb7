package ui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/volunteer-terminal/internal/calendar"
	"github.com/ngmaloney/volunteer-terminal/internal/mapview"
	"github.com/ngmaloney/volunteer-terminal/internal/models"
)

// loadTimeout bounds the one-shot retrieval of the data document
const loadTimeout = 30 * time.Second

// Message types for async operations

// opportunitiesLoadedMsg is sent exactly once, when the data load finishes
type opportunitiesLoadedMsg struct {
	items []models.Opportunity
	err   error
}

// openedMsg is sent after handing a link to the host environment
type openedMsg struct {
	what string
	err  error
}

// exportedMsg is sent when an export file has been written
type exportedMsg struct {
	what  string
	path  string
	count int
	err   error
}

func loadOpportunities(l DataLoader) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		items, err := l.Load(ctx)
		return opportunitiesLoadedMsg{items: items, err: err}
	}
}

func openTarget(o Opener, what, target string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{what: what, err: o.Open(target)}
	}
}

func exportMarkers(dir string, markers []mapview.PlacedMarker) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, "markers.shp")
		err := mapview.ExportShapefile(path, markers)
		return exportedMsg{what: "markers", path: path, count: len(markers), err: err}
	}
}

func exportFavorites(dir string, items []models.Opportunity) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, "favorites.ics")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return exportedMsg{what: "favorites", path: path, err: err}
		}
		f, err := os.Create(path)
		if err != nil {
			return exportedMsg{what: "favorites", path: path, err: err}
		}
		defer f.Close()

		n, err := calendar.WriteICS(f, items, time.Now())
		return exportedMsg{what: "favorites", path: path, count: n, err: err}
	}
}
