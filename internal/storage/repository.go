package storage

import (
	"context"

	"github.com/Kimcabron/Scraper-Vet/internal/scraper"
)

// Repository est la destination finale des fiches collectées.
type Repository interface {
	// SaveAll écrit toutes les fiches et retourne le nombre enregistré
	SaveAll(ctx context.Context, listings []scraper.Listing) (int, error)

	Close() error
}
