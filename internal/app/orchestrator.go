package app

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Kimcabron/Scraper-Vet/internal/config"
	"github.com/Kimcabron/Scraper-Vet/internal/observability"
	"github.com/Kimcabron/Scraper-Vet/internal/scraper"
)

// PageFetcher est l'interface consommée par l'orchestrateur; en production
// c'est le fetcher rod, en test une implémentation en mémoire.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	DismissConsent(ctx context.Context) error
}

type Orchestrator struct {
	cfg     *config.Config
	logger  *observability.Logger
	fetcher PageFetcher
	scraper *scraper.Scraper
}

func NewOrchestrator(
	cfg *config.Config,
	logger *observability.Logger,
	f PageFetcher,
	s *scraper.Scraper,
) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		logger:  logger,
		fetcher: f,
		scraper: s,
	}
}

type CantonStats struct {
	Canton        string
	Pages         int
	Listings      int
	StoppedReason string
}

type RunStats struct {
	Cantons       []CantonStats
	TotalPages    int
	TotalListings int
}

// Run exécute le pipeline complet: page d'accueil, bannière cookies, puis la
// boucle de pagination canton par canton, séquentiellement. L'accumulateur
// est explicite — pas d'état global.
func (o *Orchestrator) Run(ctx context.Context) ([]scraper.Listing, *RunStats, error) {
	o.logger.Info("Starting run",
		"base_url", o.cfg.Directory.BaseURL,
		"cantons", len(o.cfg.Directory.Cantons),
		"max_pages", o.cfg.Pagination.MaxPages,
	)

	// La bannière n'apparaît qu'à la première visite
	if _, err := o.fetcher.Fetch(ctx, o.cfg.Directory.BaseURL); err != nil {
		return nil, &RunStats{}, fmt.Errorf("load landing page: %w", err)
	}
	if err := o.fetcher.DismissConsent(ctx); err != nil {
		o.logger.Warn("Consent dismissal failed, continuing", "error", err.Error())
	}

	stats := &RunStats{}
	var all []scraper.Listing

	for _, canton := range o.cfg.Directory.Cantons {
		listings, cantonStats, err := o.scrapeCanton(ctx, canton)
		stats.Cantons = append(stats.Cantons, cantonStats)
		stats.TotalPages += cantonStats.Pages
		stats.TotalListings += len(listings)
		all = append(all, listings...)

		if err != nil {
			return all, stats, err
		}

		o.logger.Info("Canton completed",
			"canton", canton,
			"pages", cantonStats.Pages,
			"listings", cantonStats.Listings,
			"reason", cantonStats.StoppedReason,
		)
	}

	o.logger.Info("Run completed",
		"total_pages", stats.TotalPages,
		"total_listings", stats.TotalListings,
	)

	return all, stats, nil
}

// scrapeCanton parcourt les pages de résultats d'un canton. La boucle
// s'arrête à l'absence du contrôle "page suivante" ou à la borne max_pages —
// jamais silencieusement: la raison est toujours consignée.
func (o *Orchestrator) scrapeCanton(ctx context.Context, canton string) ([]scraper.Listing, CantonStats, error) {
	stats := CantonStats{Canton: canton}
	var collected []scraper.Listing

	maxPages := o.cfg.Pagination.MaxPages
	for page := 1; page <= maxPages; page++ {
		pageURL := o.searchURL(canton, page)
		o.logger.Info("Processing page",
			"canton", canton,
			"page", page,
			"url", pageURL,
		)

		html, err := o.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			stats.StoppedReason = fmt.Sprintf("fetch error at page %d: %v", page, err)
			return collected, stats, err
		}

		listings, err := o.scraper.ParseListing(html, canton)
		if err != nil {
			stats.StoppedReason = fmt.Sprintf("parse error at page %d: %v", page, err)
			return collected, stats, err
		}

		stats.Pages++
		collected = append(collected, listings...)
		stats.Listings = len(collected)

		o.logger.Debug("Page extracted",
			"canton", canton,
			"page", page,
			"listings", len(listings),
			"running_total", len(collected),
		)

		if !o.scraper.HasNextPage(html) {
			stats.StoppedReason = fmt.Sprintf("no next control at page %d", page)
			return collected, stats, nil
		}
		if page == maxPages {
			stats.StoppedReason = fmt.Sprintf("max pages bound (%d) reached", maxPages)
		}
	}

	return collected, stats, nil
}

// searchURL construit l'URL de recherche; url.Values encode les noms de
// cantons accentués (Genève, Neuchâtel) en percent-encoding.
func (o *Orchestrator) searchURL(canton string, page int) string {
	u, err := url.Parse(o.cfg.Directory.BaseURL)
	if err != nil {
		return o.cfg.Directory.BaseURL
	}

	q := u.Query()
	q.Set("what", o.cfg.Directory.SearchTerm)
	q.Set("where", canton)
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	return u.String()
}
