package checksum

import "testing"

func TestFingerprint(t *testing.T) {
	gen := NewGenerator()

	name := "Cabinet Vétérinaire du Léman"
	address := "Rue Example 1 1000 Lausanne"
	canton := "Vaud"

	hash1 := gen.Fingerprint(name, address, canton)
	hash2 := gen.Fingerprint(name, address, canton)

	// L'empreinte doit être déterministe
	if hash1 != hash2 {
		t.Errorf("Fingerprint not deterministic: %s != %s", hash1, hash2)
	}

	// SHA256 hex: 64 caractères
	if len(hash1) != 64 {
		t.Errorf("Fingerprint wrong length: %d, expected 64", len(hash1))
	}

	// Un champ différent doit changer l'empreinte
	hash3 := gen.Fingerprint(name, address, "Genève")
	if hash1 == hash3 {
		t.Errorf("Fingerprint should change when canton changes")
	}
}

func TestVerify(t *testing.T) {
	gen := NewGenerator()

	hash := gen.Fingerprint("Clinique des Eaux-Vives", "Rue du Lac 12 1207 Genève", "Genève")

	if !gen.Verify(hash, "Clinique des Eaux-Vives", "Rue du Lac 12 1207 Genève", "Genève") {
		t.Errorf("Verify failed for correct data")
	}
	if gen.Verify(hash, "Autre Clinique", "Rue du Lac 12 1207 Genève", "Genève") {
		t.Errorf("Verify should fail for wrong name")
	}
}
