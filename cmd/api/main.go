// Package main is the entry point for the book catalog API server.
// It wires together configuration, the blob store, the repository, and the
// HTTP router.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/mgpacifique/bookshelf/internal/data"
	"github.com/mgpacifique/bookshelf/internal/storage"
)

// appVersion is the current version of the API, shown in logs.
const appVersion = "1.0.0"

// serverConfig holds all the values that can be tweaked at startup via
// command-line flags.
type serverConfig struct {
	port        int    // TCP port the HTTP server listens on (default 4000)
	environment string // Runtime environment: development, staging, or production
	dataDir     string // Directory for the BadgerDB blob store
	seedURL     string // Optional URL of a sample collection for first-run seeding
	reset       bool   // Wipe the stored collection and settings before serving
	limiter     struct {
		rps     float64 // Sustained requests per second per client IP
		burst   int     // Burst capacity per client IP
		enabled bool    // Disable to run load tests locally
	}
}

// applicationDependencies bundles every shared resource that HTTP handlers
// need. A pointer to this struct is passed as the receiver on all handler
// and route methods.
type applicationDependencies struct {
	config     serverConfig     // Server configuration loaded from flags
	logger     *slog.Logger     // Structured logger that writes to stdout
	store      storage.Store    // Key-value blob store for books and settings
	repository *data.Repository // Canonical in-memory collection
}

// main parses flags, opens the blob store, seeds an empty collection when
// asked to, and starts the HTTP server.
func main() {
	var settings serverConfig

	flag.IntVar(&settings.port, "port", 4000, "Server port")
	flag.StringVar(&settings.environment, "env", "development", "Environment(development|staging|production)")
	flag.StringVar(&settings.dataDir, "data-dir", "./data", "Directory for the catalog database")
	flag.StringVar(&settings.seedURL, "seed-url", "", "URL of a sample collection used to seed an empty catalog")
	flag.BoolVar(&settings.reset, "reset", false, "Clear all stored books and settings before serving")
	flag.Float64Var(&settings.limiter.rps, "limiter-rps", 2, "Rate limiter requests per second per IP")
	flag.IntVar(&settings.limiter.burst, "limiter-burst", 4, "Rate limiter burst per IP")
	flag.BoolVar(&settings.limiter.enabled, "limiter-enabled", true, "Enable per-IP rate limiting")

	flag.Parse()

	// Create a structured logger that writes human-readable text to stdout.
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	store, err := storage.OpenBadger(settings.dataDir, logger)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer store.Close()

	logger.Info("blob store opened", "dir", settings.dataDir)

	if settings.reset {
		if err := store.Clear(); err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		logger.Info("stored catalog and settings cleared")
	}

	appInstance := &applicationDependencies{
		config:     settings,
		logger:     logger,
		store:      store,
		repository: data.NewRepository(store, logger),
	}

	// First-run onboarding: populate an empty catalog from the sample
	// source. A fetch failure is recoverable and never aborts startup.
	if settings.seedURL != "" && appInstance.repository.Len() == 0 {
		appInstance.seedSampleBooks(settings.seedURL)
	}

	err = appInstance.serve()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
