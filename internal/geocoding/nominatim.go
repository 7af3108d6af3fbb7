// Package geocoding resolves free-text locations to coordinates with Nominatim.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	nominatimURL = "https://nominatim.openstreetmap.org/search"
	userAgent    = "VolunteerTerminal/1.0" // Required by Nominatim ToS
	cachePrefix  = "geocode:"
)

// Cache stores geocoding results between runs
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Location represents a geocoded location
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

// Geocoder converts addresses to coordinates
type Geocoder struct {
	baseURL     string
	httpClient  *http.Client
	cache       Cache
	minInterval time.Duration
	lastCall    time.Time
	mu          sync.Mutex
}

// NewGeocoder creates a new geocoder. cache may be nil.
func NewGeocoder(cache Cache) *Geocoder {
	return &Geocoder{
		baseURL: nominatimURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:       cache,
		minInterval: time.Second, // Nominatim allows 1 req/sec
	}
}

// nominatimResponse represents the Nominatim API response
type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode converts a free-text location to coordinates
func (g *Geocoder) Geocode(ctx context.Context, query string) (*Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	key := cachePrefix + strings.ToLower(query)
	if loc, ok := g.cached(ctx, key); ok {
		return loc, nil
	}

	params := url.Values{}
	params.Add("format", "json")
	params.Add("limit", "1")
	params.Add("q", query)
	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())

	g.throttle()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim API returned status %d", resp.StatusCode)
	}

	var results []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results found for '%s'", query)
	}

	result := results[0]
	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude: %w", err)
	}

	loc := &Location{Latitude: lat, Longitude: lon, Name: result.DisplayName}
	g.store(ctx, key, loc)
	return loc, nil
}

// throttle waits until minInterval has passed since the previous request
func (g *Geocoder) throttle() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.lastCall.IsZero() {
		elapsed := time.Since(g.lastCall)
		if elapsed < g.minInterval {
			time.Sleep(g.minInterval - elapsed)
		}
	}
	g.lastCall = time.Now()
}

func (g *Geocoder) cached(ctx context.Context, key string) (*Location, bool) {
	if g.cache == nil {
		return nil, false
	}
	raw, ok, err := g.cache.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var loc Location
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return nil, false
	}
	return &loc, true
}

func (g *Geocoder) store(ctx context.Context, key string, loc *Location) {
	if g.cache == nil {
		return
	}
	data, _ := json.Marshal(loc)
	if err := g.cache.Set(ctx, key, string(data)); err != nil {
		log.Printf("geocoding: caching %s: %v", key, err)
	}
}
