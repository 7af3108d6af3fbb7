package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/volunteer-terminal/internal/config"
	"github.com/ngmaloney/volunteer-terminal/internal/database"
	"github.com/ngmaloney/volunteer-terminal/internal/favorites"
	"github.com/ngmaloney/volunteer-terminal/internal/loader"
	"github.com/ngmaloney/volunteer-terminal/internal/mapview"
	"github.com/ngmaloney/volunteer-terminal/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	dataSource := flag.String("data", cfg.DataSource, "Path or http(s) URL of the opportunities JSON document")
	dbPath := flag.String("db", cfg.DBPath, "Path of the local storage database holding favorites")
	category := flag.String("category", "", "Category to preselect (e.g. Environment)")
	search := flag.String("search", "", "Initial search text")
	flag.Parse()

	// The alt screen owns stdout; logs go to a file or nowhere.
	if cfg.DebugLog != "" {
		f, err := tea.LogToFile(cfg.DebugLog, "debug")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	store, err := database.Open(*dbPath)
	if err != nil {
		fmt.Printf("Error opening local storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	favs := favorites.New(store)
	favs.Load(context.Background())

	model := ui.NewModel(ui.Deps{
		Loader:          loader.New(*dataSource),
		Favorites:       favs,
		Map:             mapview.NewView(mapview.TerminalProvider{}, cfg.MapOptions()),
		Opener:          ui.SystemOpener{},
		Categories:      cfg.Categories,
		ExportDir:       cfg.ExportDir,
		InitialSearch:   *search,
		InitialCategory: *category,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
