package auth

import (
	"strings"
	"unicode"
)

// PasswordValidationError contains details about password validation failure.
type PasswordValidationError struct {
	Messages []string
}

func (e *PasswordValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// ValidatePassword checks if a password meets complexity requirements.
// Requirements:
// - Minimum 10 characters
// - At least 1 letter
// - At least 1 digit
//
// Applies only to accounts created through workflowctl; the legacy
// fallback table is exempt by definition.
func ValidatePassword(password string) error {
	var messages []string

	if len(password) < 10 {
		messages = append(messages, "password must be at least 10 characters")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter {
		messages = append(messages, "password must contain at least one letter")
	}
	if !hasDigit {
		messages = append(messages, "password must contain at least one digit")
	}

	if len(messages) > 0 {
		return &PasswordValidationError{Messages: messages}
	}
	return nil
}
