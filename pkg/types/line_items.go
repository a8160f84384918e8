package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/phonemechanic/repair-ledger/pkg/enums"
)

// Device is one handset sold or serviced as part of a transaction. Price is
// kept as the decimal string the counter staff typed in.
type Device struct {
	Model      string            `json:"model"`
	IMEI       string            `json:"imei,omitempty"`
	Price      string            `json:"price"`
	Storage    string            `json:"storage,omitempty"`
	PolicyType *enums.PolicyType `json:"policy_type,omitempty"`
}

// Devices is an ordered device list persisted as JSONB.
type Devices []Device

// Value marshals the list into JSON for Postgres.
func (d Devices) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes JSONB into the list.
func (d *Devices) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded Devices
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*d = decoded
	return nil
}

// RepairLineItem is one named repair job with its GST-inclusive price.
type RepairLineItem struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// RepairLineItems is an ordered repair job list persisted as JSONB.
type RepairLineItems []RepairLineItem

// Value marshals the list into JSON for Postgres.
func (r RepairLineItems) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes JSONB into the list.
func (r *RepairLineItems) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded RepairLineItems
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*r = decoded
	return nil
}
