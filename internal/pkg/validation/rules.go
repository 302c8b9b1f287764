package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// EmailPattern is the accepted email shape
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// UniqueCodePattern is the 8-character alphanumeric user code
	UniqueCodePattern = `^[a-zA-Z0-9]{8}$`

	// PhonePattern allows an optional leading plus and 7-15 digits
	PhonePattern = `^\+?\d{7,15}$`

	// PasswordMinLength is the minimum accepted password length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	UniqueCode *regexp.Regexp
	Phone      *regexp.Regexp
}{
	Email:      regexp.MustCompile(EmailPattern),
	UniqueCode: regexp.MustCompile(UniqueCodePattern),
	Phone:      regexp.MustCompile(PhonePattern),
}

// IsValidEmail reports whether the email matches the accepted shape.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidUniqueCode reports whether the code is an 8-char alphanumeric code.
func IsValidUniqueCode(code string) bool {
	return CompiledPatterns.UniqueCode.MatchString(code)
}

// IsValidPhone reports whether the phone number matches the accepted shape.
func IsValidPhone(phone string) bool {
	return CompiledPatterns.Phone.MatchString(phone)
}
