// Package loader retrieves the static opportunity collection.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ngmaloney/volunteer-terminal/internal/models"
)

var (
	// ErrUnexpectedStatus is returned when the data resource answers with a non-200 status
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrDuplicateID is returned when two records share an id
	ErrDuplicateID = errors.New("duplicate opportunity id")
)

// Loader fetches the opportunity collection from a URL or a local file
type Loader struct {
	source     string
	httpClient *http.Client
	userAgent  string
}

// New creates a loader for source. Sources starting with http:// or https://
// are fetched over HTTP, anything else is read as a file path.
func New(source string) *Loader {
	return &Loader{
		source: source,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent: "VolunteerTerminal/1.0 (github.com/ngmaloney/volunteer-terminal)",
	}
}

// Source returns the configured data source
func (l *Loader) Source() string {
	return l.source
}

// Load performs one retrieval of the collection. It does not retry.
func (l *Loader) Load(ctx context.Context) ([]models.Opportunity, error) {
	var (
		body io.ReadCloser
		err  error
	)
	if isURL(l.source) {
		body, err = l.fetch(ctx)
	} else {
		body, err = os.Open(l.source)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", l.source, err)
	}
	defer body.Close()

	return l.decode(body)
}

func (l *Loader) fetch(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", l.source, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return resp.Body, nil
}

func (l *Loader) decode(r io.Reader) ([]models.Opportunity, error) {
	var items []models.Opportunity
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding opportunities: %w", err)
	}

	seen := make(map[int]bool, len(items))
	for i := range items {
		if seen[items[i].ID] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, items[i].ID)
		}
		seen[items[i].ID] = true
	}

	if items == nil {
		items = []models.Opportunity{}
	}
	return items, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
