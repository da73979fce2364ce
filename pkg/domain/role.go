package domain

import dErrors "taskdeck/pkg/domain-errors"

// Role is a fixed permission tier, highest (owner) to read-only (viewer).
// Invariant: the value must be one of the supported roles.
//
// Usage: construct via ParseRole at trust boundaries (JWT claims, seeds);
// direct casting bypasses validation.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// validRoles is the single source of truth for valid roles.
var validRoles = map[Role]bool{
	RoleOwner:  true,
	RoleAdmin:  true,
	RoleViewer: true,
}

// ParseRole constructs a Role from external input.
//
// Errors: returns CodeValidation when the value is empty or unsupported.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "role cannot be empty")
	}
	r := Role(s)
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "invalid role")
	}
	return r, nil
}

// IsValid checks if the role is one of the supported enum values.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}
