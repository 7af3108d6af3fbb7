package mapview

import (
	"fmt"
	"math"
	"net/url"
	"strings"
)

const (
	// Pixels covered by one terminal cell. Cells are roughly twice as tall as wide.
	cellPixelsX = 8.0
	cellPixelsY = 16.0

	staticImagesURL = "https://api.mapbox.com/styles/v1"
)

// TerminalProvider draws maps as character grids
type TerminalProvider struct{}

// NewMap implements Provider
func (TerminalProvider) NewMap(opts Options) (Map, error) {
	if opts.Zoom < 0 || opts.Zoom > 22 {
		return nil, fmt.Errorf("zoom %.1f out of range 0-22", opts.Zoom)
	}
	return &TerminalMap{opts: opts}, nil
}

// TerminalMap is a Map rendered as text
type TerminalMap struct {
	opts    Options
	markers []*terminalMarker
}

type terminalMarker struct {
	m     *TerminalMap
	at    Coordinate
	popup Popup
}

func (tm *terminalMarker) Coordinate() Coordinate { return tm.at }
func (tm *terminalMarker) Popup() Popup           { return tm.popup }

// Remove detaches the marker from its map. Removing twice is harmless.
func (tm *terminalMarker) Remove() {
	if tm.m == nil {
		return
	}
	markers := tm.m.markers
	for i, other := range markers {
		if other == tm {
			tm.m.markers = append(markers[:i], markers[i+1:]...)
			break
		}
	}
	tm.m = nil
}

// AddMarker implements Map
func (m *TerminalMap) AddMarker(at Coordinate, popup Popup) Marker {
	mk := &terminalMarker{m: m, at: at, popup: popup}
	m.markers = append(m.markers, mk)
	return mk
}

// MarkerCount returns how many markers are attached to the map
func (m *TerminalMap) MarkerCount() int {
	return len(m.markers)
}

// Render draws the viewport as a width x height grid. Marker i is drawn with
// the label returned by label(i); markers outside the viewport are not drawn.
func (m *TerminalMap) Render(width, height int, label func(i int) rune) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat("·", width))
	}

	cx, cy := project(m.opts.Center, m.opts.Zoom)
	for i, mk := range m.markers {
		col, row, ok := m.cell(mk.at, cx, cy, width, height)
		if !ok {
			continue
		}
		grid[row][col] = label(i)
	}

	// Crosshair on the fixed center
	midRow, midCol := height/2, width/2
	if grid[midRow][midCol] == '·' {
		grid[midRow][midCol] = '+'
	}

	lines := make([]string, height)
	for r, row := range grid {
		lines[r] = string(row)
	}
	return strings.Join(lines, "\n")
}

// Visible reports whether c falls inside a width x height viewport
func (m *TerminalMap) Visible(c Coordinate, width, height int) bool {
	cx, cy := project(m.opts.Center, m.opts.Zoom)
	_, _, ok := m.cell(c, cx, cy, width, height)
	return ok
}

func (m *TerminalMap) cell(c Coordinate, cx, cy float64, width, height int) (col, row int, ok bool) {
	x, y := project(c, m.opts.Zoom)
	col = width/2 + int(math.Round((x-cx)/cellPixelsX))
	row = height/2 + int(math.Round((y-cy)/cellPixelsY))
	if col < 0 || col >= width || row < 0 || row >= height {
		return 0, 0, false
	}
	return col, row, true
}

// StaticURL returns a Mapbox Static Images URL showing the same viewport and
// markers. It returns "" when no access token is configured.
func (m *TerminalMap) StaticURL(width, height int) string {
	if m.opts.AccessToken == "" {
		return ""
	}

	style := strings.TrimPrefix(m.opts.Style, "mapbox://styles/")

	pins := make([]string, 0, len(m.markers))
	for _, mk := range m.markers {
		pins = append(pins, fmt.Sprintf("pin-s+e74c3c(%s,%s)", formatCoord(mk.at.Lon), formatCoord(mk.at.Lat)))
	}

	var path strings.Builder
	fmt.Fprintf(&path, "%s/%s/static/", staticImagesURL, style)
	if len(pins) > 0 {
		path.WriteString(strings.Join(pins, ","))
		path.WriteString("/")
	}
	fmt.Fprintf(&path, "%s,%s,%s/%dx%d",
		formatCoord(m.opts.Center.Lon),
		formatCoord(m.opts.Center.Lat),
		formatCoord(m.opts.Zoom),
		width, height)

	q := url.Values{}
	q.Set("access_token", m.opts.AccessToken)
	return path.String() + "?" + q.Encode()
}

func formatCoord(f float64) string {
	s := fmt.Sprintf("%.6f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
