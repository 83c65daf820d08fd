package services

import (
	"net/mail"
	"strings"
)

// NormEmail lowercases and validates an address. Accounts are keyed by email,
// so empty is not acceptable here.
func NormEmail(s string) (string, bool) {
	e := strings.ToLower(strings.TrimSpace(s))
	if e == "" {
		return "", false
	}
	_, err := mail.ParseAddress(e)
	return e, err == nil
}
