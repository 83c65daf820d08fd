package services

import "strings"

var phoneRepl = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// NormPhone strips separators from a phone number. Competitors enter numbers
// in every format imaginable; we keep only the digits and any leading +.
func NormPhone(p string) string {
	return phoneRepl.Replace(strings.TrimSpace(p))
}
