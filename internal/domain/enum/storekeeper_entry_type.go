package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StorekeeperEntryType is the kind of physical stock movement recorded.
type StorekeeperEntryType string

const (
	StorekeeperEntryDriverPickup     StorekeeperEntryType = "driver_pickup"
	StorekeeperEntryGeneralSales     StorekeeperEntryType = "general_sales"
	StorekeeperEntryPackerProduction StorekeeperEntryType = "packer_production"
	StorekeeperEntryMinistorePickup  StorekeeperEntryType = "ministore_pickup"
)

func (t StorekeeperEntryType) IsValid() bool {
	switch t {
	case StorekeeperEntryDriverPickup, StorekeeperEntryGeneralSales, StorekeeperEntryPackerProduction, StorekeeperEntryMinistorePickup:
		return true
	}
	return false
}

func (t StorekeeperEntryType) NeedsDriver() bool {
	return t == StorekeeperEntryDriverPickup
}

func (t StorekeeperEntryType) NeedsPacker() bool {
	return t == StorekeeperEntryPackerProduction
}

func (t StorekeeperEntryType) String() string {
	return string(t)
}

func (t StorekeeperEntryType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *StorekeeperEntryType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = StorekeeperEntryType(str)
	return nil
}

func (t StorekeeperEntryType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *StorekeeperEntryType) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
	case string:
		*t = StorekeeperEntryType(v)
	case []byte:
		*t = StorekeeperEntryType(string(v))
	default:
		return fmt.Errorf("enum: cannot scan %T into StorekeeperEntryType", value)
	}
	return nil
}
