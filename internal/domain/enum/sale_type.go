package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SaleType is the channel a receptionist sale went through.
type SaleType string

const (
	SaleTypeDriver    SaleType = "driver"
	SaleTypeGeneral   SaleType = "general"
	SaleTypeMiniStore SaleType = "mini_store"
)

func (t SaleType) IsValid() bool {
	switch t {
	case SaleTypeDriver, SaleTypeGeneral, SaleTypeMiniStore:
		return true
	}
	return false
}

func (t SaleType) String() string {
	return string(t)
}

func (t SaleType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *SaleType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = SaleType(str)
	return nil
}

func (t SaleType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *SaleType) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
	case string:
		*t = SaleType(v)
	case []byte:
		*t = SaleType(string(v))
	default:
		return fmt.Errorf("enum: cannot scan %T into SaleType", value)
	}
	return nil
}
