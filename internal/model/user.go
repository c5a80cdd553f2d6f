// Package model defines the entity structs mirroring the database tables.
// Dates and times are carried as ISO-8601 strings exactly as stored, so both
// storage backends produce identical API output.
package model

// User mirrors the `users` table. PasswordHash never leaves the server.
type User struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Role         string  `json:"role"`
	Phone        *string `json:"phone"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// Role levels order the role hierarchy; a route guarded by a minimum role
// admits every role at or above that level.
const (
	RoleReadOnly    = "read_only"
	RoleCoordinator = "coordinator"
	RoleManager     = "manager"
	RoleAdmin       = "admin"
)

var roleLevels = map[string]int{
	RoleReadOnly:    1,
	RoleCoordinator: 2,
	RoleManager:     3,
	RoleAdmin:       4,
}

// RoleLevel returns the numeric rank of a role, or 0 for an unknown role.
func RoleLevel(role string) int { return roleLevels[role] }

// ValidRole reports whether role is one of the four known roles.
func ValidRole(role string) bool { _, ok := roleLevels[role]; return ok }
