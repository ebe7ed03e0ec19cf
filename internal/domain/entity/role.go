// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the name of a role an identity can hold in the system.
type Role string

const (
	// RoleOperador is the lowest-privilege role; every provisioned account gets it.
	RoleOperador Role = "OPERADOR"
	// RoleGerente is the managerial role required for privileged catalog operations.
	RoleGerente Role = "GERENTE"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for claim compatibility.
// No prefix and no case transformation is applied: authorities in issued
// tokens are exactly the stored role names.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles. Unknown role names are kept
// as-is; which roles suffice for an endpoint is decided at the route level.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		result = append(result, Role(s))
	}

	return result
}
