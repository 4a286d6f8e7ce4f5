package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrDuplicateSlot = errors.New("duplicate slot selection")
	ErrUnauthorized  = errors.New("missing trip access token")
	ErrForbidden     = errors.New("invalid trip access token")
)

var ErrNoParticipants = fmt.Errorf("at least one participant is required: %w", ErrInvalidInput)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}
