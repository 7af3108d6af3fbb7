package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/volunteer-terminal/internal/favorites"
	"github.com/ngmaloney/volunteer-terminal/internal/filter"
	"github.com/ngmaloney/volunteer-terminal/internal/mapview"
	"github.com/ngmaloney/volunteer-terminal/internal/models"
)

func ptr(f float64) *float64 { return &f }

func testOpportunities() []models.Opportunity {
	return []models.Opportunity{
		{
			ID: 1, Title: "Beach Cleanup", Organization: "Clean Coast", Location: "Labadi Beach, Accra",
			Date: "2025-09-20", Category: "Environment", Description: "Remove plastic from the shore",
			Contact: "volunteer@cleancoast.org", Latitude: ptr(5.6), Longitude: ptr(-0.19),
		},
		{
			ID: 2, Title: "Tutoring", Organization: "Read Together", Location: "Kumasi",
			Date: "2025-10-04", Category: "Education", Description: "Reading support for pupils",
			Contact: "hello@readtogether.org",
		},
	}
}

func newTestModel(l DataLoader) (Model, *favorites.MemoryStorage, *mockOpener) {
	storage := favorites.NewMemoryStorage()
	opener := &mockOpener{}
	m := NewModel(Deps{
		Loader:    l,
		Favorites: favorites.New(storage),
		Map: mapview.NewView(mapview.TerminalProvider{}, mapview.Options{
			Center: mapview.Coordinate{Lat: 5.603717, Lon: -0.186964},
			Zoom:   10,
		}),
		Opener:     opener,
		Categories: []string{"Environment", "Education", "Health"},
		ExportDir:  "",
	})
	return m, storage, opener
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestNewModel(t *testing.T) {
	m, _, _ := newTestModel(&mockLoader{})

	if m.state != StateLoading {
		t.Errorf("NewModel() state = %v, want StateLoading", m.state)
	}
	if m.activePane != PaneMap {
		t.Errorf("NewModel() activePane = %v, want PaneMap", m.activePane)
	}
	if !m.searchInput.Focused() {
		t.Error("Expected search input to be focused initially")
	}
	if m.categories[0] != filter.AllCategories || len(m.categories) != 4 {
		t.Errorf("categories = %v, want all sentinel followed by 3 categories", m.categories)
	}
	if m.Init() == nil {
		t.Error("Init() should start the data load")
	}
}

func TestNewModel_InitialInputs(t *testing.T) {
	m := NewModel(Deps{
		Loader:          &mockLoader{},
		Favorites:       favorites.New(favorites.NewMemoryStorage()),
		Map:             mapview.NewView(mapview.TerminalProvider{}, mapview.Options{Zoom: 10}),
		Categories:      []string{"Environment", "Education"},
		InitialSearch:   "beach",
		InitialCategory: "Education",
	})

	c := m.criteria()
	if c.Search != "beach" || c.Category != "Education" {
		t.Errorf("criteria() = %+v, want beach/Education", c)
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m, _, _ := newTestModel(&mockLoader{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.width != 120 {
		t.Errorf("After WindowSizeMsg, width = %d, want 120", m.width)
	}
	if m.height != 40 {
		t.Errorf("After WindowSizeMsg, height = %d, want 40", m.height)
	}
}

func TestModel_CtrlC_Quits(t *testing.T) {
	m, _, _ := newTestModel(&mockLoader{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("Expected Ctrl+C to return quit command")
	}
}

func TestModel_View_InitialLoading(t *testing.T) {
	m, _, _ := newTestModel(&mockLoader{})

	if view := m.View(); view != "Loading..." {
		t.Errorf("View() before window size = %q, want 'Loading...'", view)
	}
}

func TestModel_LoadedPopulatesResultsAndMap(t *testing.T) {
	m, _, _ := newTestModel(&mockLoader{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 60})
	m, _ = update(t, m, opportunitiesLoadedMsg{items: testOpportunities()})

	if m.state != StateBrowse {
		t.Fatalf("state = %v, want StateBrowse", m.state)
	}
	if len(m.filtered) != 2 || len(m.cards) != 2 {
		t.Errorf("filtered = %d, cards = %d, want 2 and 2", len(m.filtered), len(m.cards))
	}
	if got := len(m.mapView.Markers()); got != 1 {
		t.Errorf("markers = %d, want 1 (only one opportunity has coordinates)", got)
	}

	view := m.View()
	for _, want := range []string{"Beach Cleanup", "Tutoring", "2 of 2 opportunities"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_LoadFailure(t *testing.T) {
	m, _, _ := newTestModel(&mockLoader{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 60})
	m, _ = update(t, m, opportunitiesLoadedMsg{err: errTest})

	if m.state != StateLoadFailed {
		t.Fatalf("state = %v, want StateLoadFailed", m.state)
	}
	if len(m.collection) != 0 {
		t.Error("collection should stay empty after a failed load")
	}
	if !strings.Contains(m.View(), loadFailedMessage) {
		t.Error("View() should show the load failure message")
	}

	// Filtering afterwards degrades to "no results"
	m = typeText(t, m, "x")
	if m.state != StateBrowse {
		t.Errorf("state = %v after typing, want StateBrowse", m.state)
	}
	if !strings.Contains(m.View(), noResultsMessage) {
		t.Error("View() should show the no results message after filtering an empty collection")
	}
}

func TestModel_TypingFiltersEachKeystroke(t *testing.T) {
	m, _, _ := newTestModel(&mockLoader{})
	m, _ = update(t, m, opportunitiesLoadedMsg{items: testOpportunities()})

	m = typeText(t, m, "kum")
	if len(m.filtered) != 1 || m.filtered[0].ID != 2 {
		t.Fatalf("filtered = %+v, want only Tutoring", m.filtered)
	}
	if len(m.mapView.Markers()) != 0 {
		t.Error("map should have no markers for an unmapped result")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if len(m.filtered) != 2 {
		t.Errorf("filtered = %d after clearing search, want 2", len(m.filtered))
	}
}

func TestModel_TabCyclesCategory(t *testing.T) {
	m, _, _ := newTestModel(&mockLoader{})
	m, _ = update(t, m, opportunitiesLoadedMsg{items: testOpportunities()})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.categoryLabel() != "Environment" {
		t.Fatalf("category = %s, want Environment", m.categoryLabel())
	}
	if len(m.filtered) != 1 || m.filtered[0].ID != 1 {
		t.Errorf("filtered = %+v, want only id 1", m.filtered)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.categoryLabel() != allCategoriesLabel {
		t.Errorf("category = %s, want %s", m.categoryLabel(), allCategoriesLabel)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.categoryLabel() != "Health" {
		t.Errorf("shift+tab should wrap to the last category, got %s", m.categoryLabel())
	}
	if len(m.filtered) != 0 {
		t.Errorf("filtered = %d for Health, want 0", len(m.filtered))
	}
}

func TestModel_SelectionStaysInRange(t *testing.T) {
	m, _, _ := newTestModel(&mockLoader{})
	m, _ = update(t, m, opportunitiesLoadedMsg{items: testOpportunities()})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.selected != 1 {
		t.Errorf("selected = %d, want 1", m.selected)
	}

	m = typeText(t, m, "beach")
	if m.selected != 0 {
		t.Errorf("selected = %d after narrowing to one result, want 0", m.selected)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.selected != 0 {
		t.Errorf("selected = %d, want 0", m.selected)
	}
}

func TestModel_CtrlTSwitchesPane(t *testing.T) {
	m, _, _ := newTestModel(&mockLoader{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 60})
	m, _ = update(t, m, opportunitiesLoadedMsg{items: testOpportunities()})

	if !strings.Contains(m.View(), "🗺") {
		t.Error("map pane should be shown by default")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.activePane != PaneFavorites {
		t.Fatalf("activePane = %v, want PaneFavorites", m.activePane)
	}
	if !strings.Contains(m.View(), "No favorites yet") {
		t.Error("favorites pane should show the empty message")
	}
}

func TestAppState_Constants(t *testing.T) {
	if StateLoading != 0 {
		t.Errorf("StateLoading = %d, want 0", StateLoading)
	}
	if StateBrowse != 1 {
		t.Errorf("StateBrowse = %d, want 1", StateBrowse)
	}
	if StateLoadFailed != 2 {
		t.Errorf("StateLoadFailed = %d, want 2", StateLoadFailed)
	}
}

func TestModel_StatusClearsAfterSuccessfulToggle(t *testing.T) {
	m, storage, _ := newTestModel(&mockLoader{})
	m, _ = update(t, m, opportunitiesLoadedMsg{items: testOpportunities()})

	storage.Err = errTest
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if !strings.Contains(m.status, "Favorite not saved") {
		t.Fatalf("status = %q, want write failure", m.status)
	}

	storage.Err = nil
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if m.status != "" {
		t.Errorf("status = %q after a successful toggle, want empty", m.status)
	}
	if m.favorites.IsFavorite(1) {
		t.Error("second toggle should remove the favorite")
	}
}

func TestModel_OpenMapBeforeLoad(t *testing.T) {
	m, _, _ := newTestModel(&mockLoader{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	if cmd != nil {
		t.Error("no command expected before the map exists")
	}
	if m.status != "Map not loaded yet" {
		t.Errorf("status = %q, want map not loaded", m.status)
	}
}

func TestNewModel_UnknownInitialCategory(t *testing.T) {
	m := NewModel(Deps{
		Loader:          &mockLoader{},
		Favorites:       favorites.New(favorites.NewMemoryStorage()),
		Map:             mapview.NewView(mapview.TerminalProvider{}, mapview.Options{Zoom: 10}),
		Categories:      []string{"Environment"},
		InitialCategory: "Gardening",
	})

	if m.categoryLabel() != allCategoriesLabel {
		t.Errorf("category = %s, want %s", m.categoryLabel(), allCategoriesLabel)
	}
	if !strings.Contains(m.status, `Unknown category "Gardening"`) {
		t.Errorf("status = %q, want unknown category notice", m.status)
	}

	// Survives the initial load
	m, _ = update(t, m, opportunitiesLoadedMsg{items: testOpportunities()})
	if !strings.Contains(m.status, "Gardening") {
		t.Errorf("status = %q after load", m.status)
	}
}

func TestModel_MapLegendMarksOffMapMarkers(t *testing.T) {
	list := append(testOpportunities(), models.Opportunity{
		ID: 3, Title: "Park Litter Pick", Location: "London", Date: "2025-11-01",
		Latitude: ptr(51.5), Longitude: ptr(-0.12),
	})

	m, _, _ := newTestModel(&mockLoader{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 60})
	m, _ = update(t, m, opportunitiesLoadedMsg{items: list})

	pane := m.renderMapPane(100, 30)
	lines := strings.Split(pane, "\n")
	var beach, park string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "Beach Cleanup"):
			beach = l
		case strings.Contains(l, "Park Litter Pick"):
			park = l
		}
	}
	if !strings.Contains(park, "off map") {
		t.Errorf("London marker legend = %q, want off map", park)
	}
	if beach == "" || strings.Contains(beach, "off map") {
		t.Errorf("Accra marker legend = %q, want on map", beach)
	}
}
