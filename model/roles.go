package model

// UserRole is the role tag assigned to a staff account
type UserRole = string

const (
	// RoleUser is the base staff role (view and edit records)
	RoleUser UserRole = "user"
	// RoleEditor is a staff role with extended editing rights
	RoleEditor UserRole = "editor"
	// RoleAdmin can additionally manage user accounts
	RoleAdmin UserRole = "admin"
)

// AllRoles returns the closed set of valid roles in hierarchical order
func AllRoles() []UserRole {
	return []UserRole{RoleUser, RoleEditor, RoleAdmin}
}

// IsValidRole checks the role against the closed set. Anything outside
// the set is invalid, historical variants included.
func IsValidRole(r UserRole) bool {
	switch r {
	case RoleUser, RoleEditor, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a UserRole
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, IsValidRole(role)
}

// RoleIsAtLeast checks if role meets the minimum required level.
// Unknown roles never satisfy any minimum.
func RoleIsAtLeast(role, minRole UserRole) bool {
	roleHierarchy := map[UserRole]int{
		RoleUser:   0,
		RoleEditor: 1,
		RoleAdmin:  2,
	}

	currentLevel, exists := roleHierarchy[role]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// RoleLabels maps role tags to display labels
var RoleLabels = map[UserRole]string{
	RoleUser:   "Usuário",
	RoleEditor: "Editor",
	RoleAdmin:  "Administrador",
}
