package scraper

import (
	"testing"
)

func testSelectors() *Selectors {
	return &Selectors{
		Card:      "article.vcard",
		Name:      []string{"h2.name a", "h2.name"},
		Address:   []string{"address span", "address"},
		Phone:     []string{"a[href^='tel:']", ".phone"},
		Email:     []string{"a[href^='mailto:']", ".email"},
		Website:   []string{"a.site"},
		Specialty: []string{".cat"},
		NextPage:  []string{"a.next", "a[rel='next']"},
		Consent:   []string{"button.accept"},
	}
}

const cardHTML = `
<div class="results">
	<article class="vcard">
		<h2 class="name"><a href="/d/1">Cabinet Vétérinaire du Léman</a></h2>
		<address><span>Rue Example 1</span><span>1000 Lausanne</span></address>
		<a class="phone" href="tel:+41211234567">021 123 45 67</a>
		<a class="email" href="mailto:info@vetleman.ch">info@vetleman.ch</a>
		<a class="site" href="https://www.vetleman.ch">Site web</a>
		<span class="cat">Petits animaux</span>
	</article>
</div>`

func TestParseListingFields(t *testing.T) {
	s := NewScraper(testSelectors())

	listings, err := s.ParseListing(cardHTML, "Vaud")
	if err != nil {
		t.Fatalf("ParseListing error: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}

	l := listings[0]
	if l.Name != "Cabinet Vétérinaire du Léman" {
		t.Errorf("Name = %q", l.Name)
	}
	// Adresse éclatée sur deux noeuds, jointe par un espace
	if l.Address != "Rue Example 1 1000 Lausanne" {
		t.Errorf("Address = %q, want %q", l.Address, "Rue Example 1 1000 Lausanne")
	}
	// L'attribut href prime sur le texte visible, schéma retiré
	if l.Phone != "+41211234567" {
		t.Errorf("Phone = %q, want %q", l.Phone, "+41211234567")
	}
	if l.Email != "info@vetleman.ch" {
		t.Errorf("Email = %q", l.Email)
	}
	if l.Website != "https://www.vetleman.ch" {
		t.Errorf("Website = %q", l.Website)
	}
	if l.Specialty != "Petits animaux" {
		t.Errorf("Specialty = %q", l.Specialty)
	}
	if l.Canton != "Vaud" {
		t.Errorf("Canton = %q", l.Canton)
	}
}

func TestParseListingDropsNameless(t *testing.T) {
	html := `
	<article class="vcard">
		<address><span>Rue Sans Nom 2</span></address>
		<a class="phone" href="tel:+41229998877">022 999 88 77</a>
	</article>
	<article class="vcard">
		<h2 class="name"><a>Clinique des Eaux-Vives</a></h2>
	</article>`

	s := NewScraper(testSelectors())
	listings, err := s.ParseListing(html, "Genève")
	if err != nil {
		t.Fatalf("ParseListing error: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	if listings[0].Name != "Clinique des Eaux-Vives" {
		t.Errorf("Name = %q", listings[0].Name)
	}
}

func TestParseListingEmptyPage(t *testing.T) {
	s := NewScraper(testSelectors())

	listings, err := s.ParseListing(`<html><body><p>Aucun résultat</p></body></html>`, "Jura")
	if err != nil {
		t.Fatalf("ParseListing should not fail on an empty page: %v", err)
	}
	if len(listings) != 0 {
		t.Errorf("expected 0 listings, got %d", len(listings))
	}
}

func TestParseListingFallbackSelectors(t *testing.T) {
	// Pas de lien dans le titre, pas d'attribut tel: — les sélecteurs de
	// repli doivent prendre le relais.
	html := `
	<article class="vcard">
		<h2 class="name">Cabinet du Jura</h2>
		<span class="phone">032 465 11 22</span>
	</article>`

	s := NewScraper(testSelectors())
	listings, err := s.ParseListing(html, "Jura")
	if err != nil {
		t.Fatalf("ParseListing error: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	if listings[0].Name != "Cabinet du Jura" {
		t.Errorf("Name = %q", listings[0].Name)
	}
	if listings[0].Phone != "032 465 11 22" {
		t.Errorf("Phone = %q", listings[0].Phone)
	}
	// Tous les sélecteurs absents: champ vide, jamais d'erreur
	if listings[0].Email != "" || listings[0].Website != "" {
		t.Errorf("expected empty email/website, got %q / %q", listings[0].Email, listings[0].Website)
	}
}

func TestHasNextPage(t *testing.T) {
	s := NewScraper(testSelectors())

	tests := []struct {
		name     string
		html     string
		expected bool
	}{
		{"primary control", `<nav><a class="next" href="?page=2">Suivant</a></nav>`, true},
		{"fallback rel=next", `<nav><a rel="next" href="?page=2">»</a></nav>`, true},
		{"no control", `<nav><span class="current">2</span></nav>`, false},
		{"empty page", ``, false},
	}

	for _, tt := range tests {
		if got := s.HasNextPage(tt.html); got != tt.expected {
			t.Errorf("%s: HasNextPage = %v, want %v", tt.name, got, tt.expected)
		}
	}
}
