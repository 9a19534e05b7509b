package mssql

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Kimcabron/Scraper-Vet/internal/observability"
	"github.com/Kimcabron/Scraper-Vet/internal/scraper"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	logger := observability.NewLogger(filepath.Join(t.TempDir(), "test.log"), "error")
	return newRepository(db, 5000, logger), mock
}

func TestSaveAllUpserts(t *testing.T) {
	repo, mock := newMockRepository(t)
	defer func() { _ = repo.Close() }()

	listings := []scraper.Listing{
		{Name: "Cabinet Vétérinaire du Léman", Address: "Rue Example 1 1000 Lausanne", Canton: "Vaud"},
		{Name: "Clinique des Eaux-Vives", Address: "Rue du Lac 12 1207 Genève", Canton: "Genève"},
	}

	for range listings {
		mock.ExpectPrepare("MERGE INTO TblVeterinaires").
			ExpectExec().
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	n, err := repo.SaveAll(context.Background(), listings)
	if err != nil {
		t.Fatalf("SaveAll error: %v", err)
	}
	if n != len(listings) {
		t.Errorf("SaveAll count = %d, want %d", n, len(listings))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSaveAllSkipsNameless(t *testing.T) {
	repo, mock := newMockRepository(t)
	defer func() { _ = repo.Close() }()

	listings := []scraper.Listing{
		{Name: "", Address: "Rue Sans Nom 2", Canton: "Valais"},
		{Name: "Cabinet du Valais", Address: "Avenue de la Gare 3 1950 Sion", Canton: "Valais"},
	}

	mock.ExpectPrepare("MERGE INTO TblVeterinaires").
		ExpectExec().
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.SaveAll(context.Background(), listings)
	if err != nil {
		t.Fatalf("SaveAll error: %v", err)
	}
	if n != 1 {
		t.Errorf("SaveAll count = %d, want 1", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
