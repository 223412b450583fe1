package models

import "fmt"

// Role is the closed set of account kinds. Capabilities hang off the
// role: patients book appointments, doctors publish availability.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor:
		return true
	}
	return false
}

// ParseRole returns the Role for s or an error for anything outside the set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
