package jobboard

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	hasUppercase = regexp.MustCompile(`[A-Z]`)
	hasLowercase = regexp.MustCompile(`[a-z]`)
	hasDigit     = regexp.MustCompile(`[0-9]`)
	hasSpecial   = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// ValidatePassword enforces the strength policy applied to new passwords:
// at least 8 characters with an uppercase letter, a lowercase letter, a
// digit, and a non-alphanumeric character. Login never applies this policy,
// only password resets do, so accounts created before the policy keep working.
func ValidatePassword(password string) error {
	err := validation.Validate(password,
		validation.Required,
		validation.Length(8, 0),
		validation.Match(hasUppercase),
		validation.Match(hasLowercase),
		validation.Match(hasDigit),
		validation.Match(hasSpecial),
	)
	if err != nil {
		return ErrWeakPassword
	}
	return nil
}
