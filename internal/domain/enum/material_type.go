package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MaterialType is one of the two consumables every bag uses.
type MaterialType string

const (
	MaterialTypeSachetRoll   MaterialType = "sachet_roll"
	MaterialTypePackingNylon MaterialType = "packing_nylon"
)

func (t MaterialType) IsValid() bool {
	return t == MaterialTypeSachetRoll || t == MaterialTypePackingNylon
}

func (t MaterialType) String() string {
	return string(t)
}

func (t MaterialType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *MaterialType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = MaterialType(str)
	return nil
}

func (t MaterialType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *MaterialType) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
	case string:
		*t = MaterialType(v)
	case []byte:
		*t = MaterialType(string(v))
	default:
		return fmt.Errorf("enum: cannot scan %T into MaterialType", value)
	}
	return nil
}
