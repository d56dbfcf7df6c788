package services

import "errors"

// Sentinel errors returned by the services. Controllers map them to
// HTTP statuses; anything else becomes a generic 500.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrGenerationFailed   = errors.New("failed to generate quiz questions")
)
