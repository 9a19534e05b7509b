package normalize

import "testing"

func TestStripScheme(t *testing.T) {
	tests := []struct {
		input    string
		schemes  []string
		expected string
	}{
		{"tel:+41211234567", []string{"tel:"}, "+41211234567"},
		{"mailto:info@vetleman.ch", []string{"mailto:"}, "info@vetleman.ch"},
		{"+41211234567", []string{"tel:"}, "+41211234567"},
		{"  tel:+41 21 123 45 67 ", []string{"tel:"}, "+41 21 123 45 67"},
		{"TEL:+41211234567", []string{"tel:"}, "+41211234567"},
	}

	for _, tt := range tests {
		result := StripScheme(tt.input, tt.schemes...)
		if result != tt.expected {
			t.Errorf("StripScheme(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestStripSchemeIdempotent(t *testing.T) {
	once := StripScheme("tel:+41211234567", "tel:")
	twice := StripScheme(once, "tel:")

	if once != twice {
		t.Errorf("StripScheme not idempotent: %q != %q", once, twice)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Rue\u00A0Example\u00A01", "Rue Example 1"},
		{"  1000   Lausanne  ", "1000 Lausanne"},
		{"Clinique\n\tdu Léman", "Clinique du Léman"},
		{"", ""},
	}

	for _, tt := range tests {
		result := CleanText(tt.input)
		if result != tt.expected {
			t.Errorf("CleanText(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}
