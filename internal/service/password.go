package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordMode selects how passwords are stored and compared.
type PasswordMode string

const (
	// PasswordPlaintext stores passwords as entered and compares them exactly.
	PasswordPlaintext PasswordMode = "plaintext"
	// PasswordBcrypt stores bcrypt hashes. Rows written in plaintext mode stop matching.
	PasswordBcrypt PasswordMode = "bcrypt"
)

// ParsePasswordMode validates a configured mode. Empty means plaintext.
func ParsePasswordMode(s string) (PasswordMode, error) {
	switch PasswordMode(s) {
	case "", PasswordPlaintext:
		return PasswordPlaintext, nil
	case PasswordBcrypt:
		return PasswordBcrypt, nil
	default:
		return "", fmt.Errorf("unknown password mode %q", s)
	}
}

func (m PasswordMode) hash(password string) (string, error) {
	if m != PasswordBcrypt {
		return password, nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func (m PasswordMode) matches(stored, password string) bool {
	if m != PasswordBcrypt {
		return stored == password
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
