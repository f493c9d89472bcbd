package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// UserRole gates what a dashboard user may do.
type UserRole string

const (
	UserRoleAdmin        UserRole = "admin"
	UserRoleReceptionist UserRole = "receptionist"
	UserRoleStorekeeper  UserRole = "storekeeper"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleReceptionist, UserRoleStorekeeper:
		return true
	}
	return false
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*r = UserRole(str)
	return nil
}

func (r UserRole) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *UserRole) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*r = ""
	case string:
		*r = UserRole(v)
	case []byte:
		*r = UserRole(string(v))
	default:
		return fmt.Errorf("enum: cannot scan %T into UserRole", value)
	}
	return nil
}
