package models

import "strings"

// Roles with granted capabilities. Any other role value grants nothing.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
)

// User represents one row of the users range. Username is unique under
// case-insensitive comparison; the store does not enforce it, the user
// service does.
type User struct {
	Username string `json:"username"`
	Secret   string `json:"-"`
	Role     string `json:"role"`
}

// Identity is the authenticated principal carried by a credential.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsValidRole reports whether role is one of the three enumerated values.
func IsValidRole(role string) bool {
	switch strings.ToLower(role) {
	case RoleSuperadmin, RoleAdmin, RoleTechnician:
		return true
	}
	return false
}

// UserFromCells maps a raw row onto a User using UserSchema.
func UserFromCells(cells []string) User {
	s := UserSchema
	return User{
		Username: cellAt(cells, s.Col(ColUsername)),
		Secret:   cellAt(cells, s.Col(ColSecret)),
		Role:     cellAt(cells, s.Col(ColRole)),
	}
}

// Cells maps the User back onto a full-width row.
func (u User) Cells() []string {
	s := UserSchema
	cells := make([]string, s.Width())
	cells[s.Col(ColUsername)] = u.Username
	cells[s.Col(ColSecret)] = u.Secret
	cells[s.Col(ColRole)] = u.Role
	return cells
}
