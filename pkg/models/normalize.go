package models

import (
	"net/mail"
	"net/url"
	"strings"
)

// NormalizeEmail trims surrounding whitespace and lower-cases the address so
// that storage and lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeText trims surrounding whitespace from free text. The text itself is
// stored as sent; JSON encoding escapes it on the way out.
func NormalizeText(s string) string {
	return strings.TrimSpace(s)
}

// IsValidEmail reports whether email is a bare RFC 5322 address
// (no display name, no surrounding whitespace).
func IsValidEmail(email string) bool {
	if email == "" || strings.TrimSpace(email) != email {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == email
}

// IsValidURL reports whether raw is an absolute http or https URL with a host.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
