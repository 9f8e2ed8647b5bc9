package models

import "time"

// UserRole defines the access level of a user.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleCashier UserRole = "cashier"
)

// User mirrors the users table.
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
