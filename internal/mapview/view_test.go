package mapview

import (
	"errors"
	"strings"
	"testing"

	"github.com/ngmaloney/volunteer-terminal/internal/models"
)

func ptr(f float64) *float64 { return &f }

// countingProvider wraps TerminalProvider and records map creations
type countingProvider struct {
	created int
	last    *TerminalMap
	err     error
}

func (p *countingProvider) NewMap(opts Options) (Map, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.created++
	m, err := TerminalProvider{}.NewMap(opts)
	if err != nil {
		return nil, err
	}
	p.last = m.(*TerminalMap)
	return m, nil
}

func defaultOptions() Options {
	return Options{
		AccessToken: "pk.test",
		Style:       "mapbox://styles/mapbox/streets-v11",
		Center:      Coordinate{Lat: 5.603717, Lon: -0.186964},
		Zoom:        10,
	}
}

func TestView_PopulateSkipsMissingCoordinates(t *testing.T) {
	p := &countingProvider{}
	v := NewView(p, defaultOptions())

	list := []models.Opportunity{
		{ID: 1, Title: "Beach Cleanup", Latitude: ptr(5.6), Longitude: ptr(-0.19)},
		{ID: 2, Title: "Tutoring"},
	}
	if err := v.Populate(list); err != nil {
		t.Fatalf("Populate() error = %v", err)
	}

	markers := v.Markers()
	if len(markers) != 1 {
		t.Fatalf("len(Markers()) = %d, want 1", len(markers))
	}
	if markers[0].Opportunity.ID != 1 {
		t.Errorf("marker opportunity = %d, want 1", markers[0].Opportunity.ID)
	}
	if got := markers[0].Marker.Coordinate(); got != (Coordinate{Lat: 5.6, Lon: -0.19}) {
		t.Errorf("marker coordinate = %+v", got)
	}
	if p.last.MarkerCount() != 1 {
		t.Errorf("map holds %d markers, want 1", p.last.MarkerCount())
	}
}

func TestView_PopulateReplacesMarkers(t *testing.T) {
	p := &countingProvider{}
	v := NewView(p, defaultOptions())

	both := []models.Opportunity{
		{ID: 1, Latitude: ptr(5.6), Longitude: ptr(-0.19)},
		{ID: 3, Latitude: ptr(5.55), Longitude: ptr(-0.2)},
	}
	v.Populate(both)
	v.Populate(both)
	v.Populate(both[:1])

	if got := p.last.MarkerCount(); got != 1 {
		t.Errorf("map holds %d markers after repopulating, want 1 (markers accumulated)", got)
	}
	if p.created != 1 {
		t.Errorf("map created %d times, want exactly once", p.created)
	}

	v.Populate(nil)
	if len(v.Markers()) != 0 || p.last.MarkerCount() != 0 {
		t.Error("empty list should clear every marker")
	}
}

func TestView_LazyMapCreation(t *testing.T) {
	p := &countingProvider{}
	v := NewView(p, defaultOptions())

	if v.Map() != nil || p.created != 0 {
		t.Fatal("map should not exist before the first Populate")
	}

	v.Populate(nil)
	if v.Map() == nil {
		t.Error("map should exist after Populate")
	}
	if v.Options().Center != defaultOptions().Center || v.Options().Zoom != 10 {
		t.Error("viewport must stay at its initial configuration")
	}
}

func TestView_PopulateProviderError(t *testing.T) {
	v := NewView(&countingProvider{err: errors.New("no token")}, defaultOptions())
	if err := v.Populate(nil); err == nil {
		t.Error("expected error from provider")
	}
}

func TestNewPopup(t *testing.T) {
	o := models.Opportunity{Title: "Beach <Cleanup>", Location: "Labadi Beach, Accra", Date: "2025-09-20"}
	p := NewPopup(o)

	if !strings.Contains(p.HTML, "<h4>Beach &lt;Cleanup&gt;</h4>") {
		t.Errorf("popup title not escaped: %s", p.HTML)
	}
	if !strings.Contains(p.HTML, "<p>2025-09-20</p>") {
		t.Errorf("popup missing date: %s", p.HTML)
	}

	if got, want := p.Text(), "Beach <Cleanup> · Labadi Beach, Accra · 2025-09-20"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestNewPopup_StripsInjectedScript(t *testing.T) {
	p := Popup{HTML: `<h4>x</h4><script>alert(1)</script>`}
	if strings.Contains(p.Text(), "alert") {
		t.Errorf("Text() kept script content: %q", p.Text())
	}
}
