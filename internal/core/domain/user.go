package domain

import "time"

// UserRole defines the access level of a user.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleCashier UserRole = "cashier"
)

// IsValid checks if the role is one of the recognized roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}

// User represents a staff member operating the point of sale.
type User struct {
	UserID       string     `json:"userID"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phoneNumber"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	AuditFields
}
