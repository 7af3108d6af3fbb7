// Package mapview keeps a map's markers in sync with the displayed opportunities.
package mapview

import (
	"fmt"

	"github.com/ngmaloney/volunteer-terminal/internal/models"
)

// Coordinate is a WGS84 position
type Coordinate struct {
	Lat float64
	Lon float64
}

// Options configures a map instance. The viewport (Center, Zoom) is fixed
// for the map's lifetime.
type Options struct {
	AccessToken string
	Style       string
	Center      Coordinate
	Zoom        float64
}

// Provider creates map instances (the mapping library seam)
type Provider interface {
	NewMap(opts Options) (Map, error)
}

// Map is a single map instance that markers can be placed on
type Map interface {
	AddMarker(at Coordinate, popup Popup) Marker
}

// Marker is a pin on a map with an attached popup
type Marker interface {
	Coordinate() Coordinate
	Popup() Popup
	Remove()
}

// PlacedMarker pairs a marker with the opportunity it represents
type PlacedMarker struct {
	Marker      Marker
	Opportunity models.Opportunity
}

// View owns one map and the markers currently on it
type View struct {
	provider Provider
	opts     Options
	m        Map
	markers  []PlacedMarker
}

// NewView creates a view. The map itself is created on the first Populate.
func NewView(provider Provider, opts Options) *View {
	return &View{
		provider: provider,
		opts:     opts,
	}
}

// Populate replaces every marker on the map with one marker per opportunity
// in list that has coordinates. Opportunities without coordinates are skipped.
func (v *View) Populate(list []models.Opportunity) error {
	if v.m == nil {
		m, err := v.provider.NewMap(v.opts)
		if err != nil {
			return fmt.Errorf("creating map: %w", err)
		}
		v.m = m
	}

	for _, pm := range v.markers {
		pm.Marker.Remove()
	}
	v.markers = v.markers[:0]

	for _, o := range list {
		if !o.HasCoordinates() {
			continue
		}
		at := Coordinate{Lat: *o.Latitude, Lon: *o.Longitude}
		v.markers = append(v.markers, PlacedMarker{
			Marker:      v.m.AddMarker(at, NewPopup(o)),
			Opportunity: o,
		})
	}

	return nil
}

// Markers returns the markers placed by the last Populate
func (v *View) Markers() []PlacedMarker {
	out := make([]PlacedMarker, len(v.markers))
	copy(out, v.markers)
	return out
}

// Map returns the map instance, or nil before the first Populate
func (v *View) Map() Map {
	return v.m
}

// Options returns the map configuration
func (v *View) Options() Options {
	return v.opts
}
