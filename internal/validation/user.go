// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"haggle/internal/models"
)

const (
	NameMinLen     = 2
	NameMaxLen     = 40
	PasswordMinLen = 8
	PasswordMaxLen = 128
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateName checks the display name length bounds.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < NameMinLen {
		return models.NewValidationError(fmt.Sprintf("name must be at least %d characters long", NameMinLen))
	}
	if n > NameMaxLen {
		return models.NewValidationError(fmt.Sprintf("name must not exceed %d characters", NameMaxLen))
	}
	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return models.NewValidationError("invalid email format")
	}
	if len(email) > 254 {
		return models.NewValidationError("email must not exceed 254 characters")
	}
	return nil
}

// ValidatePassword checks the password length bounds. Too-short passwords are
// rejected outright; they are never stored in any form.
func ValidatePassword(password string) error {
	if len(password) < PasswordMinLen {
		return models.NewValidationError(fmt.Sprintf("password must be at least %d characters long", PasswordMinLen))
	}
	if len(password) > PasswordMaxLen {
		return models.NewValidationError(fmt.Sprintf("password must not exceed %d characters", PasswordMaxLen))
	}
	return nil
}
