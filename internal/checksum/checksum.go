package checksum

import (
	"crypto/sha256"
	"fmt"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Fingerprint génère l'empreinte SHA256 d'une fiche.
// Formule: SHA256(nom|adresse|canton) — les fiches sans site web n'ont pas
// d'URL utilisable comme clé.
func (g *Generator) Fingerprint(name, address, canton string) string {
	content := fmt.Sprintf("%s|%s|%s", name, address, canton)
	hash := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", hash)
}

// Verify vérifie la correspondance d'une empreinte
func (g *Generator) Verify(expected, name, address, canton string) bool {
	return g.Fingerprint(name, address, canton) == expected
}
