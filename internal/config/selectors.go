package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Kimcabron/Scraper-Vet/internal/scraper"
)

// LoadSelectors charge les chaînes de sélecteurs depuis un fichier YAML
func LoadSelectors(filePath string) (*scraper.Selectors, error) {
	if filePath == "" {
		return nil, fmt.Errorf("selectors file path is empty")
	}

	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("selectors file not found: %s: %w", filePath, err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open selectors file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close selectors file: %v\n", closeErr)
		}
	}()

	var selectors scraper.Selectors
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&selectors); err != nil {
		return nil, fmt.Errorf("failed to parse selectors YAML: %w", err)
	}

	if err := validateSelectors(&selectors); err != nil {
		return nil, err
	}

	return &selectors, nil
}

// LoadSelectors résout le chemin du fichier de sélecteurs relativement à configs/
func (c *Config) LoadSelectors() (*scraper.Selectors, error) {
	filePath := c.SelectorsFile
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join("configs", filePath)
	}
	return LoadSelectors(filePath)
}

// validateSelectors vérifie le jeu minimal de sélecteurs
func validateSelectors(s *scraper.Selectors) error {
	if s.Card == "" {
		return fmt.Errorf("card is required")
	}
	if len(s.Name) == 0 {
		return fmt.Errorf("name selectors are required")
	}
	if len(s.Address) == 0 {
		return fmt.Errorf("address selectors are required")
	}
	if len(s.Phone) == 0 {
		return fmt.Errorf("phone selectors are required")
	}
	if len(s.Email) == 0 {
		return fmt.Errorf("email selectors are required")
	}
	if len(s.Website) == 0 {
		return fmt.Errorf("website selectors are required")
	}
	if len(s.Specialty) == 0 {
		return fmt.Errorf("specialty selectors are required")
	}
	if len(s.NextPage) == 0 {
		return fmt.Errorf("next_page selectors are required")
	}
	if len(s.Consent) == 0 {
		return fmt.Errorf("consent selectors are required")
	}
	return nil
}
