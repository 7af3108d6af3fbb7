package mapview

import "math"

// HaversineKm returns the great-circle distance between two points in kilometres
func HaversineKm(a, b Coordinate) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := a.Lat * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// project converts a coordinate to Web Mercator world pixels at zoom
func project(c Coordinate, zoom float64) (x, y float64) {
	const maxLat = 85.05112878
	lat := math.Max(-maxLat, math.Min(maxLat, c.Lat))

	size := 256 * math.Pow(2, zoom)
	sinLat := math.Sin(lat * math.Pi / 180)

	x = (c.Lon + 180) / 360 * size
	y = (0.5 - math.Log((1+sinLat)/(1-sinLat))/(4*math.Pi)) * size
	return x, y
}
