package validators

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors collects per-field validation messages. The first message
// recorded for a field wins.
type FieldErrors map[string]string

// Add records msg for field unless the field already failed.
func (f FieldErrors) Add(field, msg string) {
	if msg == "" {
		return
	}
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

// Merge copies every message of other that is not already present.
func (f FieldErrors) Merge(other map[string]string) {
	for field, msg := range other {
		f.Add(field, msg)
	}
}

// Err returns a validation error carrying the collected messages, or nil
// when nothing failed.
func (f FieldErrors) Err(message string) error {
	if len(f) == 0 {
		return nil
	}
	return apierr.Validation(message, f)
}

// IsBlank reports whether v is absent for the purpose of required-field
// checks: nil, or a string that is empty after trimming.
func IsBlank(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	default:
		return false
	}
}

// ValidateRequired checks that every named field of data is present and
// not blank. All missing fields are reported in a single error.
func ValidateRequired(data map[string]any, fields ...string) error {
	missing := make(FieldErrors)
	for _, field := range fields {
		if IsBlank(data[field]) {
			missing.Add(field, apierr.MsgRequiredField)
		}
	}
	return missing.Err(MsgMissingRequiredFields)
}

// ValidateEmail returns a message when email is not shaped like
// local@domain.tld, or "" when it is.
func ValidateEmail(email string) string {
	if !emailPattern.MatchString(email) {
		return MsgInvalidEmail
	}
	return ""
}

// ValidatePassword returns the message of the first strength rule the
// password breaks, or "" when it satisfies all of them.
func ValidatePassword(password string) string {
	if utf8.RuneCountInString(password) < 8 {
		return MsgPasswordLength
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	switch {
	case !hasUpper:
		return MsgPasswordUpper
	case !hasLower:
		return MsgPasswordLower
	case !hasDigit:
		return MsgPasswordDigit
	}
	return ""
}

// ValidateName returns a message when the name is outside 2..50 characters.
func ValidateName(name string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	switch {
	case n < 2:
		return MsgNameTooShort
	case n > 50:
		return MsgNameTooLong
	}
	return ""
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
