package enums

import (
	"fmt"
	"strings"
)

// Store identifies one of the shop's physical locations.
type Store string

const (
	StoreEastwood   Store = "EASTWOOD"
	StoreParramatta Store = "PARRAMATTA"
)

// DefaultStore is used when a request does not name a location.
const DefaultStore = StoreEastwood

var validStores = []Store{
	StoreEastwood,
	StoreParramatta,
}

// String implements fmt.Stringer.
func (s Store) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Store.
func (s Store) IsValid() bool {
	for _, candidate := range validStores {
		if candidate == s {
			return true
		}
	}
	return false
}

// Stores lists every known location in display order.
func Stores() []Store {
	out := make([]Store, len(validStores))
	copy(out, validStores)
	return out
}

// ParseStore converts raw input into a Store. Matching is case-insensitive and
// blank input resolves to DefaultStore.
func ParseStore(value string) (Store, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return DefaultStore, nil
	}
	for _, candidate := range validStores {
		if string(candidate) == trimmed {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid store %q", value)
}
