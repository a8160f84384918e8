package phonemodels

import "testing"

func TestParseCatalogEntry(t *testing.T) {
	cases := []struct {
		raw   string
		brand string
		model string
	}{
		{"iPhone 15 Pro Max", "Apple", "iPhone 15 Pro Max"},
		{"Samsung Galaxy S24 Ultra", "Samsung", "Galaxy S24 Ultra"},
		{"  OPPO   Find X5 ", "OPPO", "Find X5"},
		{"Google Pixel 8", "Google", "Pixel 8"},
		{"Redmi Note 13", "Redmi", "Note 13"},
		{"POCO F5", "POCO", "F5"},
		{"Nokia 3310", "Apple", "Nokia 3310"},
	}
	for _, tc := range cases {
		entry, ok := ParseCatalogEntry(tc.raw)
		if !ok {
			t.Fatalf("expected %q to parse", tc.raw)
		}
		if entry.Brand != tc.brand || entry.ModelName != tc.model {
			t.Fatalf("%q: got %+v", tc.raw, entry)
		}
	}

	if _, ok := ParseCatalogEntry("   "); ok {
		t.Fatalf("blank names should be skipped")
	}
}

func TestKnownBrand(t *testing.T) {
	if !KnownBrand("Motorola") {
		t.Fatalf("expected Motorola to be known")
	}
	if KnownBrand("motorola") {
		t.Fatalf("brand matching is case sensitive")
	}
}
