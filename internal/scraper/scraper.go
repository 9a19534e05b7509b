package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Kimcabron/Scraper-Vet/internal/normalize"
)

type Scraper struct {
	selectors *Selectors
}

func NewScraper(selectors *Selectors) *Scraper {
	return &Scraper{
		selectors: selectors,
	}
}

// ParseListing parse une page de résultats et retourne les fiches du canton.
// Une fiche sans nom est écartée. Une page sans aucune carte retourne une
// liste vide, pas une erreur.
func (s *Scraper) ParseListing(html, canton string) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var listings []Listing

	doc.Find(s.selectors.Card).Each(func(i int, card *goquery.Selection) {
		l := Listing{Canton: canton}

		l.Name = textChain(card, s.selectors.Name)
		if l.Name == "" {
			return // Fiche sans nom: on ignore
		}

		// L'adresse peut être éclatée sur plusieurs noeuds
		l.Address = fragmentChain(card, s.selectors.Address)
		l.Phone = linkChain(card, s.selectors.Phone, "tel:")
		l.Email = linkChain(card, s.selectors.Email, "mailto:")
		l.Website = hrefChain(card, s.selectors.Website)
		l.Specialty = textChain(card, s.selectors.Specialty)

		listings = append(listings, l)
	})

	return listings, nil
}

// HasNextPage détecte la présence d'un contrôle "page suivante".
// Son absence est le signal de fin de pagination; la borne max_pages
// de l'orchestrateur couvre le cas d'un contrôle toujours présent.
func (s *Scraper) HasNextPage(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	for _, selector := range s.selectors.NextPage {
		if doc.Find(selector).Length() > 0 {
			return true
		}
	}
	return false
}

// textChain essaye les sélecteurs dans l'ordre et retourne le premier texte non vide
func textChain(card *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if text := normalize.CleanText(card.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// fragmentChain concatène le texte de tous les noeuds du premier sélecteur productif
func fragmentChain(card *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		var fragments []string
		card.Find(selector).Each(func(i int, sel *goquery.Selection) {
			if text := normalize.CleanText(sel.Text()); text != "" {
				fragments = append(fragments, text)
			}
		})
		if len(fragments) > 0 {
			return strings.Join(fragments, " ")
		}
	}
	return ""
}

// linkChain préfère l'attribut href (tel:, mailto:) au texte visible
func linkChain(card *goquery.Selection, selectors []string, scheme string) string {
	for _, selector := range selectors {
		node := card.Find(selector).First()
		if href, exists := node.Attr("href"); exists && strings.TrimSpace(href) != "" {
			return normalize.StripScheme(strings.TrimSpace(href), scheme)
		}
		if text := normalize.CleanText(node.Text()); text != "" {
			return normalize.StripScheme(text, scheme)
		}
	}
	return ""
}

func hrefChain(card *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		node := card.Find(selector).First()
		if href, exists := node.Attr("href"); exists && strings.TrimSpace(href) != "" {
			return strings.TrimSpace(href)
		}
		if text := normalize.CleanText(node.Text()); text != "" {
			return text
		}
	}
	return ""
}
