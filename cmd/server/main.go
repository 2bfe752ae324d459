package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/genre-guide/graphql-api/config"
	"github.com/genre-guide/graphql-api/internal/catalog"
	"github.com/genre-guide/graphql-api/internal/graph"
	"github.com/genre-guide/graphql-api/internal/server"
	"github.com/genre-guide/graphql-api/internal/storage"
)

func main() {
	port := flag.String("port", "", "Server port (overrides config)")
	configPath := flag.String("config", "./config/config.yaml", "Path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	// Open the catalog store
	store, err := storage.New(cfg)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Build the schema over the catalog service
	schema, err := graph.NewSchema(catalog.NewService(store, logger))
	if err != nil {
		slog.Error("Failed to build GraphQL schema", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, schema)

	if *port == "" {
		*port = cfg.Server.Port
	}
	slog.Info("Starting genre catalog GraphQL API server", "port", *port)
	if err := srv.Start(*port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
