package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInput       = errors.New("malformed request body")
	ErrNoBody               = fmt.Errorf("%w: no request body", ErrMalformedInput)
	ErrValidationFailed     = errors.New("validation failed")
	ErrCapacityExceeded     = errors.New("poll is at capacity")
	ErrDuplicateParticipant = errors.New("participant already entered the poll")
	ErrPollNotFound         = errors.New("poll not found")
	ErrStoreUnavailable     = errors.New("store unavailable")
)

type ValidationReason string

const (
	ReasonMissing           ValidationReason = "missing"
	ReasonTooShort          ValidationReason = "too_short"
	ReasonTooLong           ValidationReason = "too_long"
	ReasonInvalidCharacters ValidationReason = "invalid_characters"
)

// ValidationError reports the first rule a field violated.
type ValidationError struct {
	Field  string
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// DuplicateParticipantError names the person whose self-entry already exists.
type DuplicateParticipantError struct {
	Person string
}

func (e *DuplicateParticipantError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicateParticipant, e.Person)
}

func (e *DuplicateParticipantError) Is(target error) bool {
	return target == ErrDuplicateParticipant
}
