package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/Kimcabron/Scraper-Vet/internal/checksum"
	"github.com/Kimcabron/Scraper-Vet/internal/observability"
	"github.com/Kimcabron/Scraper-Vet/internal/scraper"
)

// Repository persiste les fiches dans TblVeterinaires, en plus du CSV.
// L'upsert est clé par empreinte (nom|adresse|canton), beaucoup de cabinets
// n'ayant pas de site web.
type Repository struct {
	db             *sql.DB
	commandTimeout time.Duration
	logger         *observability.Logger
	gen            *checksum.Generator
}

func NewRepository(dsn string, commandTimeoutMS int, logger *observability.Logger) (*Repository, error) {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// On teste la connexion avant de rendre le repository
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return newRepository(db, commandTimeoutMS, logger), nil
}

func newRepository(db *sql.DB, commandTimeoutMS int, logger *observability.Logger) *Repository {
	return &Repository{
		db:             db,
		commandTimeout: time.Duration(commandTimeoutMS) * time.Millisecond,
		logger:         logger,
		gen:            checksum.NewGenerator(),
	}
}

// SaveAll upsert toutes les fiches une par une et retourne le nombre traité
func (r *Repository) SaveAll(ctx context.Context, listings []scraper.Listing) (int, error) {
	total := 0
	for i := range listings {
		if listings[i].Name == "" {
			continue
		}
		if err := r.upsertListing(ctx, &listings[i]); err != nil {
			return total, err
		}
		total++
	}
	return total, nil
}

func (r *Repository) upsertListing(ctx context.Context, l *scraper.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	// MERGE statement pour MS SQL
	query := `
		MERGE INTO TblVeterinaires AS target
		USING (SELECT @CheckSum AS CheckSum) AS source
		ON target.[CheckSum] = source.CheckSum
		WHEN MATCHED THEN
			UPDATE SET
				[Phone] = @Phone,
				[Email] = @Email,
				[Website] = @Website,
				[Specialty] = @Specialty
		WHEN NOT MATCHED THEN
			INSERT ([Name], [Address], [Phone], [Email], [Website], [Specialty], [Canton], [CheckSum])
			VALUES (@Name, @Address, @Phone, @Email, @Website, @Specialty, @Canton, @CheckSum);
	`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	_, err = stmt.ExecContext(ctx,
		sql.Named("Name", l.Name),
		sql.Named("Address", l.Address),
		sql.Named("Phone", l.Phone),
		sql.Named("Email", l.Email),
		sql.Named("Website", l.Website),
		sql.Named("Specialty", l.Specialty),
		sql.Named("Canton", l.Canton),
		sql.Named("CheckSum", r.gen.Fingerprint(l.Name, l.Address, l.Canton)),
	)
	if err != nil {
		return fmt.Errorf("failed to execute upsert: %w", err)
	}

	return nil
}

// CountByCanton retourne le nombre de fiches enregistrées pour un canton
func (r *Repository) CountByCanton(ctx context.Context, canton string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	query := `SELECT COUNT(*) FROM TblVeterinaires WHERE Canton = @Canton`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	var count int
	if err := stmt.QueryRowContext(ctx, sql.Named("Canton", canton)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to query database: %w", err)
	}

	return count, nil
}

// Close ferme la connexion à la base
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
