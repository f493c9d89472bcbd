package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SalaryType decides which components make up an employee's pay.
type SalaryType string

const (
	SalaryTypeFixed      SalaryType = "fixed"
	SalaryTypeCommission SalaryType = "commission"
	SalaryTypeBoth       SalaryType = "both"
)

func (t SalaryType) IsValid() bool {
	switch t {
	case SalaryTypeFixed, SalaryTypeCommission, SalaryTypeBoth:
		return true
	}
	return false
}

func (t SalaryType) HasFixed() bool {
	return t == SalaryTypeFixed || t == SalaryTypeBoth
}

func (t SalaryType) HasCommission() bool {
	return t == SalaryTypeCommission || t == SalaryTypeBoth
}

func (t SalaryType) String() string {
	return string(t)
}

func (t SalaryType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *SalaryType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = SalaryType(str)
	return nil
}

func (t SalaryType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *SalaryType) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
	case string:
		*t = SalaryType(v)
	case []byte:
		*t = SalaryType(string(v))
	default:
		return fmt.Errorf("enum: cannot scan %T into SalaryType", value)
	}
	return nil
}

// SalaryPeriod is the span a salary payment covers.
type SalaryPeriod string

const (
	SalaryPeriodDaily      SalaryPeriod = "daily"
	SalaryPeriodWeekly     SalaryPeriod = "weekly"
	SalaryPeriodMonthly    SalaryPeriod = "monthly"
	SalaryPeriodFirstHalf  SalaryPeriod = "first_half"
	SalaryPeriodSecondHalf SalaryPeriod = "second_half"
)

func (p SalaryPeriod) IsValid() bool {
	switch p {
	case SalaryPeriodDaily, SalaryPeriodWeekly, SalaryPeriodMonthly, SalaryPeriodFirstHalf, SalaryPeriodSecondHalf:
		return true
	}
	return false
}

func (p SalaryPeriod) String() string {
	return string(p)
}

func (p SalaryPeriod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

func (p *SalaryPeriod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*p = SalaryPeriod(str)
	return nil
}

func (p SalaryPeriod) Value() (driver.Value, error) {
	return string(p), nil
}

func (p *SalaryPeriod) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = ""
	case string:
		*p = SalaryPeriod(v)
	case []byte:
		*p = SalaryPeriod(string(v))
	default:
		return fmt.Errorf("enum: cannot scan %T into SalaryPeriod", value)
	}
	return nil
}
