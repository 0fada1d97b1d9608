package domain

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// MinPasswordLength applies to passwords set through the API.
const MinPasswordLength = 8

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NormalizeEmail lowercases and trims an email address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword always rehashes plaintext with a fresh salt.
func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares candidate against the stored hash.
func (u *User) CheckPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(candidate)) == nil
}

// Validate checks the profile fields of a user. The password hash is checked
// for presence only.
func (u *User) Validate() error {
	var errs fieldErrors
	errs.check("email", u.Email, "required,email")
	errs.check("name", strings.TrimSpace(u.Name), "required")
	if !u.Role.Valid() {
		errs.add("role", "role must be one of: admin manager user")
	}
	if u.PasswordHash == "" {
		errs.add("password", "password is required")
	}
	return errs.err()
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(field, plaintext string) error {
	var errs fieldErrors
	errs.check(field, plaintext, "required,min=8,max=72")
	return errs.err()
}
