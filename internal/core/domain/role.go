package domain

import (
	"errors"
	"strings"
)

// Core role internal names. These roles are seeded with the system and are
// protected: they cannot be deleted and their internal name cannot change.
const (
	RoleAdmin     = "admin"
	RolePhysician = "physician"
	RoleCustomer  = "customer"
)

var ErrRoleNotFound = errors.New("role not found")
var ErrDuplicateRoleName = errors.New("role name already exists")
var ErrImmutableField = errors.New("field cannot be changed")
var ErrCoreRoleProtected = errors.New("core role is protected")
var ErrRoleInUse = errors.New("role is referenced by existing users")

// Role models an access role. Name is the internal lowercase token used for
// authorization logic; Title is the human-readable label shown in the console.
type Role struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// IsCoreRole reports whether name is one of the protected built-in roles.
func IsCoreRole(name string) bool {
	switch name {
	case RoleAdmin, RolePhysician, RoleCustomer:
		return true
	}
	return false
}

// NormalizeRoleName lowercases, trims, and collapses runs of whitespace into a
// single underscore, producing the canonical internal name for a role.
func NormalizeRoleName(input string) string {
	fields := strings.Fields(strings.ToLower(input))
	return strings.Join(fields, "_")
}
