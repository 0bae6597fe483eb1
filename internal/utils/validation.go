package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// emailPattern mirrors the pattern the recovery flow uses: local part,
// @, domain, dot, 2+ letter TLD.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword validates a password
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	return nil
}

// ValidateName validates the account holder's display name
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(strings.TrimSpace(name)) < 2 {
		return fmt.Errorf("name must be at least 2 characters long")
	}
	return nil
}

// ValidateOTPCode validates the shape of a verification code: exactly
// six digits.
func ValidateOTPCode(code string) error {
	if len(code) != 6 {
		return fmt.Errorf("code must be exactly 6 digits")
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("code must contain only digits")
		}
	}
	return nil
}

// ValidateRequired validates that a string is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}
