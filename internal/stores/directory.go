package stores

import (
	"fmt"

	"github.com/phonemechanic/repair-ledger/pkg/enums"
)

const (
	BusinessName = "PHONE MECHANIC"
	ABN          = "50 629 357 937"
)

// Header is the business block printed at the top of every invoice.
type Header struct {
	Store        enums.Store `json:"store"`
	BusinessName string      `json:"business_name"`
	ABN          string      `json:"abn"`
	DisplayName  string      `json:"display_name"`
	AddressLines []string    `json:"address_lines,omitempty"`
	Phones       []string    `json:"phones,omitempty"`
}

var directory = map[enums.Store]Header{
	enums.StoreEastwood: {
		Store:        enums.StoreEastwood,
		BusinessName: BusinessName,
		ABN:          ABN,
		DisplayName:  "PHONE MECHANIC EASTWOOD",
		AddressLines: []string{
			"Shop C3A Eastwood Shopping Centre",
			"160 Rowe Street, EASTWOOD NSW 2122",
		},
		Phones: []string{"0450779688", "0414640101"},
	},
	enums.StoreParramatta: {
		Store:        enums.StoreParramatta,
		BusinessName: BusinessName,
		ABN:          ABN,
		DisplayName:  "PHONE MECHANIC PARRAMATTA",
	},
}

// Lookup returns the invoice header for a store.
func Lookup(store enums.Store) (Header, error) {
	header, ok := directory[store]
	if !ok {
		return Header{}, fmt.Errorf("unknown store %q", store)
	}
	return clone(header), nil
}

// All lists every store header in display order.
func All() []Header {
	out := make([]Header, 0, len(directory))
	for _, store := range enums.Stores() {
		out = append(out, clone(directory[store]))
	}
	return out
}

func clone(h Header) Header {
	h.AddressLines = append([]string(nil), h.AddressLines...)
	h.Phones = append([]string(nil), h.Phones...)
	return h
}
