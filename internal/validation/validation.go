// Package validation holds the input rules for signup, profile edits and
// password changes. Every failure is an apperr.FieldError naming the field.
package validation

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"DEVLINK_BACK-END/internal/apperr"
)

const (
	MinFirstNameLen = 4
	MaxNameLen      = 50
	MinPasswordLen  = 8
	MaxPasswordLen  = 72 // bcrypt ignores anything past 72 bytes
	MinAge          = 18
	MaxAboutLen     = 500
	MaxSkills       = 10
	MaxSkillLen     = 50
)

var allowedGenders = map[string]bool{
	"male":   true,
	"female": true,
	"others": true,
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp validates the fields required to create an account.
func SignUp(firstName, lastName, email, password string) error {
	if err := FirstName(firstName); err != nil {
		return err
	}
	if err := LastName(lastName); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	return Password("password", password)
}

func FirstName(v string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(v))
	if n == 0 {
		return apperr.Field("firstName", "is required")
	}
	if n < MinFirstNameLen || n > MaxNameLen {
		return apperr.Field("firstName", "must be between 4 and 50 characters")
	}
	return nil
}

func LastName(v string) error {
	if utf8.RuneCountInString(strings.TrimSpace(v)) > MaxNameLen {
		return apperr.Field("lastName", "must be at most 50 characters")
	}
	return nil
}

// Email accepts a bare RFC 5322 address, without a display name.
func Email(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return apperr.Field("emailId", "is required")
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".") {
		return apperr.Field("emailId", "invalid email address")
	}
	return nil
}

// Password enforces length plus one lowercase, uppercase, digit and symbol.
func Password(field, v string) error {
	if v == "" {
		return apperr.Field(field, "is required")
	}
	if len(v) < MinPasswordLen {
		return apperr.Field(field, "must be at least 8 characters")
	}
	if len(v) > MaxPasswordLen {
		return apperr.Field(field, "must be at most 72 bytes")
	}

	var lower, upper, digit, symbol bool
	for _, r := range v {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return apperr.Field(field, "is not strong enough: use upper and lower case letters, a number and a symbol")
	}
	return nil
}

func Age(v int) error {
	if v < MinAge {
		return apperr.Field("age", "must be at least 18")
	}
	return nil
}

func Gender(v string) error {
	if !allowedGenders[v] {
		return apperr.Field("gender", "must be one of male, female, others")
	}
	return nil
}

func PhotoURL(v string) error {
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperr.Field("photoUrl", "must be an absolute http(s) URL")
	}
	return nil
}

func About(v string) error {
	if utf8.RuneCountInString(v) > MaxAboutLen {
		return apperr.Field("about", "must be at most 500 characters")
	}
	return nil
}

func Skills(v []string) error {
	if len(v) > MaxSkills {
		return apperr.Field("skills", "at most 10 skills are allowed")
	}
	for _, s := range v {
		s = strings.TrimSpace(s)
		if s == "" || utf8.RuneCountInString(s) > MaxSkillLen {
			return apperr.Field("skills", "each skill must be 1 to 50 characters")
		}
	}
	return nil
}
