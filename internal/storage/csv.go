package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Kimcabron/Scraper-Vet/internal/observability"
	"github.com/Kimcabron/Scraper-Vet/internal/scraper"
)

// En-tête fixe à 7 colonnes — l'ordre et les libellés font partie du format
// de sortie et ne doivent pas changer.
var csvHeader = []string{"Nom", "Adresse", "Téléphone", "Email", "Site web", "Spécialité", "Canton"}

type CSVExporter struct {
	path   string
	logger *observability.Logger
}

func NewCSVExporter(path string, logger *observability.Logger) *CSVExporter {
	return &CSVExporter{
		path:   ResolvePath(path),
		logger: logger,
	}
}

// SaveAll sérialise toutes les fiches et écrase le fichier de sortie.
func (e *CSVExporter) SaveAll(ctx context.Context, listings []scraper.Listing) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(e.path, []byte(render(listings)), 0o644); err != nil {
		return 0, fmt.Errorf("write CSV file: %w", err)
	}

	e.logger.Info("CSV written", "path", e.path, "listings", len(listings))
	return len(listings), nil
}

func (e *CSVExporter) Close() error {
	return nil
}

func (e *CSVExporter) Path() string {
	return e.path
}

// render produit le texte CSV: chaque champ entre guillemets, guillemets
// internes doublés, lignes jointes par un saut de ligne final compris.
func render(listings []scraper.Listing) string {
	rows := make([]string, 0, len(listings)+1)
	rows = append(rows, encodeRow(csvHeader))
	for _, l := range listings {
		rows = append(rows, encodeRow([]string{
			l.Name,
			l.Address,
			l.Phone,
			l.Email,
			l.Website,
			l.Specialty,
			l.Canton,
		}))
	}
	return strings.Join(rows, "\n") + "\n"
}

func encodeRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// ResolvePath résout un chemin relatif par rapport au répertoire de
// l'exécutable, pas au répertoire courant.
func ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return path
	}
	return filepath.Join(filepath.Dir(exe), path)
}
