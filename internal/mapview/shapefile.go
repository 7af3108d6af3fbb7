package mapview

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/jonas-p/go-shp"
)

// ExportShapefile writes markers as an ESRI point shapefile at path (.shp,
// with .shx and .dbf next to it). Attributes: ID, TITLE, DATE, CATEGORY.
func ExportShapefile(path string, markers []PlacedMarker) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return fmt.Errorf("creating shapefile: %w", err)
	}
	defer w.Close()

	fields := []shp.Field{
		shp.NumberField("ID", 10),
		shp.StringField("TITLE", 80),
		shp.StringField("DATE", 20),
		shp.StringField("CATEGORY", 40),
	}
	if err := w.SetFields(fields); err != nil {
		return fmt.Errorf("setting shapefile fields: %w", err)
	}

	for _, pm := range markers {
		at := pm.Marker.Coordinate()
		row := int(w.Write(&shp.Point{X: at.Lon, Y: at.Lat}))

		o := pm.Opportunity
		values := []any{o.ID, truncate(o.Title, 80), truncate(o.Date, 20), truncate(o.Category, 40)}
		for field, v := range values {
			if err := w.WriteAttribute(row, field, v); err != nil {
				return fmt.Errorf("writing attribute %d for %d: %w", field, o.ID, err)
			}
		}
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
