package entities

import "strings"

const (
	// MaxAttempts is the number of failed submissions a user may make.
	MaxAttempts = 3
	// PassScore is the minimum score that grants certification.
	PassScore = 70
)

// User represents a registered quiz candidate.
type User struct {
	Username   string
	Password   string // plaintext unless bcrypt password mode is enabled
	Score      int    // last submitted score, 0..100
	Certified  bool
	Attempts   int // failed submissions so far
	AccessCode string
	FullName   string
	NRIC       string
	Email      string
}

// NewUser creates a user that has not taken the quiz yet.
func NewUser(username, password, accessCode string) *User {
	return &User{
		Username:   username,
		Password:   password,
		AccessCode: strings.TrimSpace(accessCode),
	}
}

// AttemptsLeft returns how many failed submissions the user can still make.
func (u *User) AttemptsLeft() int {
	left := MaxAttempts - u.Attempts
	if left < 0 {
		return 0
	}
	return left
}

// CanStartQuiz reports whether the user may start or continue a quiz.
func (u *User) CanStartQuiz() error {
	if u.Certified {
		return ErrAlreadyCertified
	}
	if u.Attempts >= MaxAttempts {
		return ErrAttemptsExhausted
	}
	return nil
}

// ApplyScore records a submission result. Attempts grow only on failure.
func (u *User) ApplyScore(score int) {
	u.Score = score
	u.Certified = score >= PassScore
	if !u.Certified {
		u.Attempts++
	}
}
