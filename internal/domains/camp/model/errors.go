package model

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// Not Found
	ErrCampNotFound    = errors.New("camp not found")
	ErrTalkNotFound    = errors.New("talk not found")
	ErrSpeakerNotFound = errors.New("speaker not found")

	// Validation / business rule errors
	ErrDuplicateMoniker  = errors.New("camp with this moniker already exists")
	ErrMonikerImmutable  = errors.New("camp moniker cannot be changed")
	ErrCampRequired      = errors.New("talk must belong to a camp")
	ErrSpeakerRequired   = errors.New("speaker id is required")
	ErrInvalidDate       = errors.New("date must be formatted as YYYY-MM-DD")
	ErrUnsupportedEntity = errors.New("unsupported entity")
	ErrNotPersisted      = errors.New("entity has not been persisted")

	// Persistence
	ErrPersistence  = errors.New("persistence failure")
	ErrNothingSaved = errors.New("no changes were saved")
)

// PersistenceError wraps a failed SaveChanges. Err carries the underlying
// cause; constraint violations are mapped to the domain sentinel so callers
// can still match them with errors.Is.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// NewPersistenceError wraps err unless it already is a PersistenceError.
func NewPersistenceError(op string, err error) error {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsNotFound reports whether err means "absent".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCampNotFound) ||
		errors.Is(err, ErrTalkNotFound)
}

// IsValidation reports whether err is a business-rule rejection the caller
// caused (as opposed to the store failing).
func IsValidation(err error) bool {
	if errors.Is(err, ErrPersistence) {
		return false
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return true
	}
	for _, target := range []error{
		ErrDuplicateMoniker,
		ErrMonikerImmutable,
		ErrCampRequired,
		ErrSpeakerRequired,
		ErrSpeakerNotFound,
		ErrInvalidDate,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrPersistence):
		return "DATABASE_FAILURE"
	case errors.Is(err, ErrCampNotFound):
		return "CAMP_NOT_FOUND"
	case errors.Is(err, ErrTalkNotFound):
		return "TALK_NOT_FOUND"
	case errors.Is(err, ErrSpeakerNotFound):
		return "SPEAKER_NOT_FOUND"
	case errors.Is(err, ErrDuplicateMoniker):
		return "DUPLICATE_MONIKER"
	case errors.Is(err, ErrMonikerImmutable):
		return "MONIKER_IMMUTABLE"
	case errors.Is(err, ErrSpeakerRequired):
		return "SPEAKER_REQUIRED"
	case IsValidation(err):
		return "VALIDATION_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrPersistence):
		return http.StatusInternalServerError
	case IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateMoniker):
		return http.StatusConflict
	case IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
