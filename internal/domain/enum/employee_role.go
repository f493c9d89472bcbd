package enum

import "strings"

// EmployeeRole is free text on the employee record. Only the packer role
// changes behaviour: packers earn commission from packing entries.
type EmployeeRole string

const (
	EmployeeRoleDriver  EmployeeRole = "Driver"
	EmployeeRolePackers EmployeeRole = "Packers"
	EmployeeRoleManager EmployeeRole = "Manager"
	EmployeeRoleGeneral EmployeeRole = "General"
)

func (r EmployeeRole) IsPacker() bool {
	switch strings.ToLower(strings.TrimSpace(string(r))) {
	case "packer", "packers":
		return true
	}
	return false
}
