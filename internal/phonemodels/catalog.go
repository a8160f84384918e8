package phonemodels

import "strings"

// DefaultBrand receives catalog names without a recognised brand prefix.
const DefaultBrand = "Apple"

// Brands lists the manufacturers the shop stocks, in display order.
var Brands = []string{"Apple", "Samsung", "OPPO", "Motorola", "Google", "Xiaomi", "Redmi", "POCO"}

// Entry is a catalog name split into brand and model.
type Entry struct {
	Brand     string
	ModelName string
}

// ParseCatalogEntry splits a marketing name such as "Samsung Galaxy S24" into
// its brand and model. iPhones keep their full name under Apple.
func ParseCatalogEntry(raw string) (Entry, bool) {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" {
		return Entry{}, false
	}
	if strings.HasPrefix(name, "iPhone") {
		return Entry{Brand: "Apple", ModelName: name}, true
	}
	for _, brand := range Brands[1:] {
		if rest, ok := strings.CutPrefix(name, brand+" "); ok {
			return Entry{Brand: brand, ModelName: rest}, true
		}
	}
	return Entry{Brand: DefaultBrand, ModelName: name}, true
}

// KnownBrand reports whether brand is one of Brands.
func KnownBrand(brand string) bool {
	for _, candidate := range Brands {
		if candidate == brand {
			return true
		}
	}
	return false
}
