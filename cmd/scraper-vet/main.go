package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Kimcabron/Scraper-Vet/internal/app"
	"github.com/Kimcabron/Scraper-Vet/internal/config"
	"github.com/Kimcabron/Scraper-Vet/internal/fetcher"
	"github.com/Kimcabron/Scraper-Vet/internal/observability"
	"github.com/Kimcabron/Scraper-Vet/internal/scraper"
	"github.com/Kimcabron/Scraper-Vet/internal/storage"
	"github.com/Kimcabron/Scraper-Vet/internal/storage/mssql"
)

func main() {
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	selectors, err := cfg.LoadSelectors()
	if err != nil {
		log.Fatalf("Failed to load selectors: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogPath, cfg.Observability.LogLevel)
	defer func() {
		if err := logger.Close(); err != nil {
			log.Printf("Warning: failed to close logger: %v", err)
		}
	}()

	// Gestionnaire d'erreurs de dernier recours: tout échec non récupérable
	// remonte ici, est logué en détail, et le processus sort en code non nul.
	if err := run(cfg, selectors, logger); err != nil {
		logger.Error("Run failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.Config, selectors *scraper.Selectors, logger *observability.Logger) error {
	ctx, cancel := app.GracefulShutdown(logger)
	defer cancel()

	f, err := fetcher.New(cfg, selectors.Consent, logger)
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	// Fermeture garantie du navigateur, succès ou échec
	defer f.Close()

	orchestrator := app.NewOrchestrator(cfg, logger, f, scraper.NewScraper(selectors))

	listings, stats, runErr := orchestrator.Run(ctx)

	// Même en cas d'échec en cours de route, on écrit ce qui a été collecté
	// plutôt que de tout perdre. Context neuf: ctx peut déjà être annulé.
	exporter := storage.NewCSVExporter(cfg.Output.Path, logger)
	total, err := exporter.SaveAll(context.Background(), listings)
	if err != nil {
		return fmt.Errorf("write CSV: %w", err)
	}

	if runErr != nil {
		logger.Warn("Partial results written", "listings", total, "output", exporter.Path())
		return runErr
	}

	if cfg.Storage.Driver == "mssql" {
		var repo storage.Repository
		repo, err = mssql.NewRepository(cfg.Storage.DSN, cfg.Storage.CommandTimeoutMS, logger)
		if err != nil {
			return fmt.Errorf("connect storage: %w", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Error("Failed to close storage", "error", err.Error())
			}
		}()

		saved, err := repo.SaveAll(ctx, listings)
		if err != nil {
			return fmt.Errorf("persist listings: %w", err)
		}
		logger.Info("Listings upserted", "count", saved)
	}

	for _, cs := range stats.Cantons {
		logger.Info("Summary",
			"canton", cs.Canton,
			"listings", cs.Listings,
			"pages", cs.Pages,
			"reason", cs.StoppedReason,
		)
	}
	logger.Info("Done",
		"total", total,
		"output", exporter.Path(),
	)

	return nil
}
