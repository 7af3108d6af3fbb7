package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/ngmaloney/volunteer-terminal/internal/config"
	"github.com/ngmaloney/volunteer-terminal/internal/database"
	"github.com/ngmaloney/volunteer-terminal/internal/geocoding"
	"github.com/ngmaloney/volunteer-terminal/internal/loader"
)

// Fills in missing latitude/longitude in an opportunities document.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	in := flag.String("in", cfg.DataSource, "Opportunities JSON document (path or URL)")
	out := flag.String("out", "", "Output path (defaults to overwriting -in)")
	dbPath := flag.String("db", cfg.DBPath, "Database used to cache geocoding results")
	flag.Parse()

	if *out == "" {
		*out = *in
	}

	ctx := context.Background()
	l := loader.New(*in)
	items, err := l.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load opportunities from %s: %v", l.Source(), err)
	}

	cache, err := database.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	defer cache.Close()

	updated, filled := geocoding.FillCoordinates(ctx, geocoding.NewGeocoder(cache), items)

	data, err := json.MarshalIndent(updated, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode opportunities: %v", err)
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	log.Printf("Geocoded %d of %d opportunities from %s, wrote %s", filled, len(items), l.Source(), *out)
}
