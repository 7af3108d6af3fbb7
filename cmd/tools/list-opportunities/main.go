package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ngmaloney/volunteer-terminal/internal/config"
	"github.com/ngmaloney/volunteer-terminal/internal/database"
	"github.com/ngmaloney/volunteer-terminal/internal/favorites"
	"github.com/ngmaloney/volunteer-terminal/internal/filter"
	"github.com/ngmaloney/volunteer-terminal/internal/loader"
	"github.com/ngmaloney/volunteer-terminal/internal/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dataSource := flag.String("data", cfg.DataSource, "Path or http(s) URL of the opportunities JSON document")
	dbPath := flag.String("db", cfg.DBPath, "Path of the local storage database holding favorites")
	category := flag.String("category", filter.AllCategories, "Category filter")
	search := flag.String("search", "", "Search text")
	onlyFavorites := flag.Bool("favorites", false, "List saved favorites instead of the data document")
	clearFavorites := flag.Bool("clear-favorites", false, "Delete all saved favorites and exit")
	flag.Parse()

	store, err := database.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open local storage: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if *clearFavorites {
		if err := store.Delete(ctx, favorites.StorageKey); err != nil {
			log.Fatalf("Failed to clear favorites: %v", err)
		}
		log.Println("Favorites cleared")
		return
	}

	favs := favorites.New(store)
	favs.Load(ctx)

	var items []models.Opportunity
	if *onlyFavorites {
		items = favs.List()
	} else {
		items, err = loader.New(*dataSource).Load(ctx)
		if err != nil {
			log.Fatalf("Failed to load opportunities: %v", err)
		}
	}

	items = filter.Apply(items, filter.Criteria{Search: *search, Category: *category})

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "★", "Title", "Organization", "Location", "Date", "Category", "Mapped"})

	for _, o := range items {
		star := ""
		if favs.IsFavorite(o.ID) {
			star = "★"
		}
		mapped := "no"
		if o.HasCoordinates() {
			mapped = "yes"
		}
		t.AppendRow(table.Row{o.ID, star, o.Title, o.Organization, o.Location, o.Date, o.Category, mapped})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(items)})
	t.Render()
}
