package domain

import "time"

// UserRole marks elevated accounts.
type UserRole string

const (
	UserRoleMember UserRole = ""
	UserRoleAdmin  UserRole = "admin"
)

// User is the domain model for registered residents.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Role         UserRole  `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}
