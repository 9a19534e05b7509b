package normalize

import (
	"regexp"
	"strings"
)

var spacesRe = regexp.MustCompile(`\s+`)

// CleanText remplace les NBSP par des espaces, réduit les espaces multiples
// et retire les espaces de bord.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\u00A0", " ")
	text = spacesRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// StripScheme retire un préfixe de schéma connu (tel:, mailto:) d'une valeur
// extraite d'un attribut de lien. Idempotent: une valeur déjà nettoyée
// ressort inchangée.
func StripScheme(value string, schemes ...string) string {
	value = strings.TrimSpace(value)
	for _, scheme := range schemes {
		if strings.HasPrefix(strings.ToLower(value), scheme) {
			value = strings.TrimSpace(value[len(scheme):])
		}
	}
	return value
}
