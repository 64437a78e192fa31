package service

import (
	"errors"
	"strings"

	"github.com/Dan9191/fintrack/internal/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrConflict           = repository.ErrDuplicate
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnavailable means an optional integration (receipt storage, rates feed) is not configured
	ErrUnavailable = errors.New("service unavailable")
)

// ValidationError lists every problem found with a request
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func invalid(messages ...string) error {
	return &ValidationError{Messages: messages}
}
