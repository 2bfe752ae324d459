package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	ansi "github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"github.com/genre-guide/graphql-api/config"
	"github.com/genre-guide/graphql-api/internal/domain"
	"github.com/genre-guide/graphql-api/internal/storage"
)

// sheetExport is the JSON shape produced by exporting the Genre Sheet:
// the full subgenre records plus the track rows with their authored
// nested-subgenre notation.
type sheetExport struct {
	Subgenres []*domain.Subgenre `json:"subgenres"`
	Tracks    []exportTrack      `json:"tracks"`
}

type exportTrack struct {
	Artist          string `json:"artist"`
	Title           string `json:"title"`
	RecordLabel     string `json:"recordLabel"`
	ReleaseDate     string `json:"releaseDate"` // YYYY-MM-DD
	SubgenresNested string `json:"subgenresNested"`
}

func main() {
	configPath := flag.String("config", "./config/config.yaml", "Path to config file")
	inputPath := flag.String("input", "", "Path to the sheet export JSON (required)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *inputPath == "" {
		slog.Error("Missing required flag: -input")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		slog.Error("Failed to read sheet export", "error", err)
		os.Exit(1)
	}

	var export sheetExport
	if err := json.Unmarshal(data, &export); err != nil {
		slog.Error("Failed to parse sheet export", "error", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := ingest(context.Background(), store, &export); err != nil {
		slog.Error("Ingestion failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Ingested sheet export",
		"subgenres", len(export.Subgenres),
		"tracks", len(export.Tracks))
}

func ingest(ctx context.Context, store storage.Store, export *sheetExport) error {
	bar := progressbar.NewOptions(
		len(export.Subgenres)+len(export.Tracks),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionFullWidth(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Ingesting sheet export...[reset]"),
	)

	for _, subgenre := range export.Subgenres {
		if err := store.SaveSubgenre(ctx, subgenre); err != nil {
			return err
		}
		_ = bar.Add(1)
	}

	for _, row := range export.Tracks {
		released, err := time.Parse("2006-01-02", row.ReleaseDate)
		if err != nil {
			slog.Warn("Skipping track with bad release date",
				"artist", row.Artist, "title", row.Title, "releaseDate", row.ReleaseDate, "error", err)
			_ = bar.Add(1)
			continue
		}

		track := &domain.Track{
			ID:              domain.TrackID(row.Artist, row.Title, released),
			Artist:          row.Artist,
			Title:           row.Title,
			RecordLabel:     row.RecordLabel,
			ReleaseDate:     released,
			SubgenresNested: row.SubgenresNested,
		}
		if err := store.SaveTrack(ctx, track); err != nil {
			return err
		}
		_ = bar.Add(1)
	}

	return nil
}
