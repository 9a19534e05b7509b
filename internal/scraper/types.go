package scraper

// Listing est une fiche vétérinaire extraite d'une page de résultats.
type Listing struct {
	Name      string
	Address   string
	Phone     string
	Email     string
	Website   string
	Specialty string
	Canton    string
}

// Selectors regroupe les chaînes de sélecteurs CSS, essayées dans l'ordre
// jusqu'au premier résultat non vide.
type Selectors struct {
	Card      string   `yaml:"card"`
	Name      []string `yaml:"name"`
	Address   []string `yaml:"address"`
	Phone     []string `yaml:"phone"`
	Email     []string `yaml:"email"`
	Website   []string `yaml:"website"`
	Specialty []string `yaml:"specialty"`
	NextPage  []string `yaml:"next_page"`
	Consent   []string `yaml:"consent"`
}
