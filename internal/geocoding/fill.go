package geocoding

import (
	"context"
	"log"

	"github.com/ngmaloney/volunteer-terminal/internal/models"
)

// FillCoordinates geocodes the location of every opportunity lacking
// coordinates and returns an updated copy plus the number filled. Lookups
// that fail leave the record unmappable.
func FillCoordinates(ctx context.Context, g *Geocoder, items []models.Opportunity) ([]models.Opportunity, int) {
	out := make([]models.Opportunity, len(items))
	copy(out, items)

	filled := 0
	for i := range out {
		if out[i].HasCoordinates() || out[i].Location == "" {
			continue
		}
		loc, err := g.Geocode(ctx, out[i].Location)
		if err != nil {
			log.Printf("geocoding %d (%s): %v", out[i].ID, out[i].Location, err)
			continue
		}
		lat, lon := loc.Latitude, loc.Longitude
		out[i].Latitude = &lat
		out[i].Longitude = &lon
		filled++
	}
	return out, filled
}
