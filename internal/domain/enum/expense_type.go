package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ExpenseType categorizes an outlay. GeneratorFuel and DriverPayment are
// legacy names still accepted on input and in stored rows.
type ExpenseType string

const (
	ExpenseTypeFuel       ExpenseType = "fuel"
	ExpenseTypeDriverFuel ExpenseType = "driver_fuel"
	ExpenseTypeOther      ExpenseType = "other"

	ExpenseTypeGeneratorFuel ExpenseType = "generator_fuel"
	ExpenseTypeDriverPayment ExpenseType = "driver_payment"
)

// Normalize maps legacy names onto their current equivalent.
func (t ExpenseType) Normalize() ExpenseType {
	switch t {
	case ExpenseTypeGeneratorFuel:
		return ExpenseTypeFuel
	case ExpenseTypeDriverPayment:
		return ExpenseTypeDriverFuel
	}
	return t
}

func (t ExpenseType) IsValid() bool {
	switch t.Normalize() {
	case ExpenseTypeFuel, ExpenseTypeDriverFuel, ExpenseTypeOther:
		return true
	}
	return false
}

// IsFuel reports whether t counts toward fuel costs.
func (t ExpenseType) IsFuel() bool {
	return t.Normalize() == ExpenseTypeFuel
}

// IsDriverPayment reports whether t counts toward driver payments.
func (t ExpenseType) IsDriverPayment() bool {
	return t.Normalize() == ExpenseTypeDriverFuel
}

func (t ExpenseType) String() string {
	return string(t)
}

func (t ExpenseType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *ExpenseType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = ExpenseType(str)
	return nil
}

func (t ExpenseType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *ExpenseType) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
	case string:
		*t = ExpenseType(v)
	case []byte:
		*t = ExpenseType(string(v))
	default:
		return fmt.Errorf("enum: cannot scan %T into ExpenseType", value)
	}
	return nil
}
