package entities

import "errors"

// Errors surfaced to users. Delivery layers map them to messages; none of them is fatal.
var (
	ErrDuplicateUsername     = errors.New("username already exists")
	ErrInvalidAccessCode     = errors.New("invalid access code")
	ErrAccessCodeAlreadyUsed = errors.New("access code already used")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAttemptsExhausted     = errors.New("no attempts left")
	ErrAlreadyCertified      = errors.New("user is already certified")
	ErrMissingFields         = errors.New("missing required fields")
	ErrStorageUnavailable    = errors.New("storage unavailable")
)

var (
	ErrNoQuestions       = errors.New("no questions available")
	ErrInvalidChoice     = errors.New("choice must be one of a, b, c, d")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrNotAtLastQuestion = errors.New("quiz can only be submitted from the last question")
	ErrSessionClosed     = errors.New("quiz session is not in progress")
	ErrSessionNotFound   = errors.New("quiz session not found")
	ErrNotCertified      = errors.New("user is not certified")
	ErrUserNotFound      = errors.New("user not found")
	ErrForbidden         = errors.New("forbidden")
)
