// Package favorites keeps the user's favorited opportunities in durable local storage.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ngmaloney/volunteer-terminal/internal/models"
)

// StorageKey is the slot holding the serialized favorites list
const StorageKey = "favorites"

// Storage is a durable key-value slot store
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Store holds the ordered list of favorited opportunity snapshots.
// It is not safe for concurrent use; the UI owns it from a single goroutine.
type Store struct {
	storage Storage
	items   []models.Opportunity
}

// New creates an empty store over storage. Call Load to rehydrate.
func New(storage Storage) *Store {
	return &Store{storage: storage}
}

// Load replaces the in-memory list with the persisted one.
// Missing or malformed data leaves the store empty and is only logged.
func (s *Store) Load(ctx context.Context) {
	s.items = nil

	raw, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		log.Printf("favorites: reading storage: %v", err)
		return
	}
	if !ok || raw == "" {
		return
	}

	var items []models.Opportunity
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("favorites: ignoring malformed data: %v", err)
		return
	}
	s.items = dedupe(items)
}

// IsFavorite reports whether id is in the favorites list
func (s *Store) IsFavorite(id int) bool {
	for _, f := range s.items {
		if f.ID == id {
			return true
		}
	}
	return false
}

// List returns a copy of the favorites in the order they were added
func (s *Store) List() []models.Opportunity {
	out := make([]models.Opportunity, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of favorites
func (s *Store) Len() int {
	return len(s.items)
}

// Toggle adds or removes the opportunity with the given id.
// The snapshot is looked up in collection (the full, unfiltered list); an id
// missing from it is a no-op and changed is false. After a change the whole
// list is written back to storage. On a write error the in-memory change is
// kept and the error returned.
func (s *Store) Toggle(ctx context.Context, id int, collection []models.Opportunity) (bool, error) {
	opp, ok := models.FindByID(collection, id)
	if !ok {
		return false, nil
	}

	if s.IsFavorite(id) {
		kept := make([]models.Opportunity, 0, len(s.items))
		for _, f := range s.items {
			if f.ID != id {
				kept = append(kept, f)
			}
		}
		s.items = kept
	} else {
		s.items = append(s.items, opp)
	}

	if err := s.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

func (s *Store) persist(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []models.Opportunity{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}
	if err := s.storage.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("saving favorites: %w", err)
	}
	return nil
}

// dedupe keeps the first snapshot for every id
func dedupe(items []models.Opportunity) []models.Opportunity {
	seen := make(map[int]bool, len(items))
	out := make([]models.Opportunity, 0, len(items))
	for _, it := range items {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out
}
