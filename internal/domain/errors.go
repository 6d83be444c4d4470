package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotConfigured = errors.New("not configured")
)

// UpstreamError carries a provider failure so the HTTP layer can forward the
// provider's status code and message.
type UpstreamError struct {
	Service string
	Status  int // 0 when the provider gave no HTTP status
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %d: %s", e.Service, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

// Invalidf wraps ErrInvalidInput with a human-readable message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}
