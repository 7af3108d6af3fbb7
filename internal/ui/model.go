package ui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/volunteer-terminal/internal/calendar"
	"github.com/ngmaloney/volunteer-terminal/internal/favorites"
	"github.com/ngmaloney/volunteer-terminal/internal/filter"
	"github.com/ngmaloney/volunteer-terminal/internal/mapview"
	"github.com/ngmaloney/volunteer-terminal/internal/models"
)

// AppState represents the current state of the application
type AppState int

const (
	StateLoading    AppState = iota // Waiting for the opportunities document
	StateBrowse                     // Results displayed
	StateLoadFailed                 // Load failed, error shown in place of results
)

// ActivePane represents which side pane is shown
type ActivePane int

const (
	PaneMap ActivePane = iota
	PaneFavorites
)

// allCategoriesLabel is shown for the "no category filter" selector entry
const allCategoriesLabel = "All categories"

// DataLoader retrieves the opportunity collection
type DataLoader interface {
	Load(ctx context.Context) ([]models.Opportunity, error)
}

// Deps are the collaborators the model drives
type Deps struct {
	Loader     DataLoader
	Favorites  *favorites.Store
	Map        *mapview.View
	Opener     Opener
	Categories []string // selector options, without the "all" entry
	ExportDir  string

	InitialSearch   string
	InitialCategory string
}

// Model represents the application's state
type Model struct {
	state      AppState
	activePane ActivePane
	width      int
	height     int
	err        error  // load failure
	status     string // one-line feedback for the last action

	// Filter inputs
	searchInput textinput.Model
	categories  []string // index 0 is filter.AllCategories
	categoryIdx int

	// Data
	loader     DataLoader
	collection []models.Opportunity // full list, set once by the loader
	filtered   []models.Opportunity // currently displayed
	cards      []cardBinding        // action bindings of the current render
	selected   int

	favorites *favorites.Store
	mapView   *mapview.View
	opener    Opener
	exportDir string

	spinner spinner.Model
}

// NewModel creates a new application model
func NewModel(d Deps) Model {
	ti := textinput.New()
	ti.Placeholder = "Search by title, description or location..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50
	ti.SetValue(d.InitialSearch)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	categories := append([]string{filter.AllCategories}, d.Categories...)
	categoryIdx := -1
	for i, c := range categories {
		if c == d.InitialCategory {
			categoryIdx = i
		}
	}

	var status string
	if categoryIdx < 0 {
		categoryIdx = 0
		if d.InitialCategory != "" {
			status = fmt.Sprintf("Unknown category %q, showing all categories", d.InitialCategory)
			log.Print(status)
		}
	}

	opener := d.Opener
	if opener == nil {
		opener = SystemOpener{}
	}

	return Model{
		state:       StateLoading,
		activePane:  PaneMap,
		status:      status,
		searchInput: ti,
		categories:  categories,
		categoryIdx: categoryIdx,
		loader:      d.Loader,
		favorites:   d.Favorites,
		mapView:     d.Map,
		opener:      opener,
		exportDir:   d.ExportDir,
		spinner:     s,
	}
}

// Init starts the one-shot data load
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, loadOpportunities(m.loader))
}

// criteria returns the current filter inputs
func (m Model) criteria() filter.Criteria {
	return filter.Criteria{
		Search:   m.searchInput.Value(),
		Category: m.categories[m.categoryIdx],
	}
}

// applyFilter re-runs the filter over the full collection and fans the result
// out to the results view and the map.
func (m *Model) applyFilter() {
	m.filtered = filter.Apply(m.collection, m.criteria())
	m.cards = bindCards(m.filtered)

	if m.selected >= len(m.cards) {
		m.selected = len(m.cards) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}

	if err := m.mapView.Populate(m.filtered); err != nil {
		m.status = fmt.Sprintf("Map unavailable: %v", err)
	}
}

// selectedCard returns the binding of the highlighted card
func (m Model) selectedCard() (cardBinding, bool) {
	if m.selected < 0 || m.selected >= len(m.cards) {
		return cardBinding{}, false
	}
	return m.cards[m.selected], true
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	switch msg := msg.(type) {
	case opportunitiesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.collection = nil
			m.filtered = nil
			m.cards = nil
			m.state = StateLoadFailed
			return m, nil
		}
		m.collection = msg.items
		m.state = StateBrowse
		m.applyFilter()
		return m, nil

	case openedMsg:
		switch {
		case errors.Is(msg.err, ErrCopiedToClipboard):
			m.status = fmt.Sprintf("%s link copied to clipboard", msg.what)
		case msg.err != nil:
			m.status = fmt.Sprintf("Could not open %s: %v", msg.what, msg.err)
		default:
			m.status = fmt.Sprintf("Opened %s", msg.what)
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Export of %s failed: %v", msg.what, msg.err)
		} else {
			m.status = fmt.Sprintf("Exported %d %s to %s", msg.count, msg.what, msg.path)
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleKey handles keyboard input. Printable keys always go to the search box.
// The status line only describes the most recent action, so every key clears it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab":
		m.categoryIdx = (m.categoryIdx + 1) % len(m.categories)
		return m.refilter(), nil

	case "shift+tab":
		m.categoryIdx = (m.categoryIdx - 1 + len(m.categories)) % len(m.categories)
		return m.refilter(), nil

	case "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down":
		if m.selected < len(m.cards)-1 {
			m.selected++
		}
		return m, nil

	case "ctrl+t":
		if m.activePane == PaneMap {
			m.activePane = PaneFavorites
		} else {
			m.activePane = PaneMap
		}
		return m, nil

	case "ctrl+f":
		return m.toggleFavorite(), nil

	case "ctrl+e":
		card, ok := m.selectedCard()
		if !ok {
			return m, nil
		}
		return m, openTarget(m.opener, "Calendar", calendar.EventURL(card.title, card.date))

	case "ctrl+o":
		card, ok := m.selectedCard()
		if !ok || card.contact == "" {
			return m, nil
		}
		return m, openTarget(m.opener, "Contact", "mailto:"+card.contact)

	case "ctrl+g":
		if m.mapView.Map() == nil {
			m.status = "Map not loaded yet"
			return m, nil
		}
		if r, ok := m.mapView.Map().(mapRenderer); ok {
			if u := r.StaticURL(600, 400); u != "" {
				return m, openTarget(m.opener, "Map", u)
			}
		}
		m.status = "Set MAPBOX_ACCESS_TOKEN to open the full map"
		return m, nil

	case "ctrl+x":
		return m, exportMarkers(m.exportDir, m.mapView.Markers())

	case "ctrl+s":
		return m, exportFavorites(m.exportDir, m.favorites.List())
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m = m.refilter()
	}
	return m, cmd
}

// refilter applies the current inputs. Before the load completes there is
// nothing to filter; after a failed load the error gives way to "no results".
func (m Model) refilter() Model {
	if m.state == StateLoading {
		return m
	}
	m.state = StateBrowse
	m.applyFilter()
	return m
}

// toggleFavorite flips the highlighted card's favorite state and re-renders
func (m Model) toggleFavorite() Model {
	card, ok := m.selectedCard()
	if !ok {
		return m
	}

	changed, err := m.favorites.Toggle(context.Background(), card.id, m.collection)
	if changed {
		m.applyFilter()
	}
	if err != nil {
		m.status = fmt.Sprintf("Favorite not saved: %v", err)
	}
	return m
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("🤝 Volunteer Terminal"),
		mutedStyle.Render("Find volunteer opportunities near you"),
	)

	search := searchBoxStyle.Render(m.searchInput.View())
	category := fmt.Sprintf("%s %s",
		labelStyle.Render("Category:"),
		actionStyle.Render("‹ "+m.categoryLabel()+" ›"))

	leftWidth := m.width * 3 / 5
	rightWidth := m.width - leftWidth - 1
	bodyHeight := m.height - 10
	if bodyHeight < 5 {
		bodyHeight = 5
	}

	results := lipgloss.NewStyle().
		Width(leftWidth).
		MaxHeight(bodyHeight).
		Render(m.viewResults(leftWidth))

	var side string
	if m.activePane == PaneFavorites {
		side = m.renderFavoritesPane(rightWidth - 2)
	} else {
		side = m.renderMapPane(rightWidth-2, bodyHeight)
	}
	side = lipgloss.NewStyle().MaxHeight(bodyHeight).Render(side)

	body := lipgloss.JoinHorizontal(lipgloss.Top, results, " ", side)

	sections := []string{header, "", search, category, "", body}
	if m.status != "" {
		sections = append(sections, mutedStyle.Render(m.status))
	}
	sections = append(sections, helpStyle.Render(
		"Tab: Category • ↑/↓: Select • Ctrl+F: Favorite • Ctrl+E: Calendar • Ctrl+O: Contact • Ctrl+T: Map/Favorites • Ctrl+G: Open map • Ctrl+X/Ctrl+S: Export • Esc: Quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// categoryLabel returns the display name of the selected category
func (m Model) categoryLabel() string {
	c := m.categories[m.categoryIdx]
	if c == filter.AllCategories {
		return allCategoriesLabel
	}
	return c
}

// viewResults renders the results area for the current state
func (m Model) viewResults(width int) string {
	switch m.state {
	case StateLoading:
		return fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render("Loading volunteer opportunities..."))
	case StateLoadFailed:
		return errorStyle.Render("✗ " + loadFailedMessage)
	}

	if len(m.filtered) == 0 {
		return renderResults(nil, m.favorites.IsFavorite, 0, width)
	}

	// Keep the highlighted card in view: start one card above it.
	start := m.selected - 1
	if start < 0 {
		start = 0
	}
	cards := renderCards(m.filtered, m.favorites.IsFavorite, m.selected, width)
	summary := mutedStyle.Render(fmt.Sprintf("%d of %d opportunities", len(m.filtered), len(m.collection)))
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{summary}, cards[start:]...)...)
}
