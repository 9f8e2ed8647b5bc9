package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost trades login latency for brute-force resistance. Cashier
// terminals authenticate once per shift, so a cost above the bcrypt default
// is affordable here.
const passwordHashCost = 12

// minPasswordLength backstops the binding-level min=8 on the auth DTOs.
const minPasswordLength = 8

// ErrPasswordTooShort is returned when a plaintext password fails the
// minimum length check before hashing.
var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash. It
// never reveals whether the hash or the password was at fault.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
