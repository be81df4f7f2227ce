package entities

import "strings"

// AccessCodeEntry is a row of the candidate roster.
type AccessCodeEntry struct {
	AccessCode string
	Activated  bool
	Name       string
	NRIC       string
	Email      string
}

// Identity holds the optional verification fields supplied at signup.
type Identity struct {
	FullName string
	NRIC     string
	Email    string
}

// Complete reports whether every identity field is filled.
func (id Identity) Complete() bool {
	return strings.TrimSpace(id.FullName) != "" &&
		strings.TrimSpace(id.NRIC) != "" &&
		strings.TrimSpace(id.Email) != ""
}

// Matches checks the identity against the roster entry.
// Name and email compare case-insensitively, NRIC exactly; surrounding spaces are ignored.
func (e *AccessCodeEntry) Matches(id Identity) bool {
	return strings.EqualFold(strings.TrimSpace(e.Name), strings.TrimSpace(id.FullName)) &&
		strings.TrimSpace(e.NRIC) == strings.TrimSpace(id.NRIC) &&
		strings.EqualFold(strings.TrimSpace(e.Email), strings.TrimSpace(id.Email))
}
