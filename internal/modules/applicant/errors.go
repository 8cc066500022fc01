package applicant

import (
	"errors"
	"sort"
	"strings"

	"svpportal/internal/pkg/validator"
)

var (
	ErrDuplicatePassport    = errors.New("applicant already exists with this passport")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired OTP")
	ErrNotFound             = errors.New("applicant not found")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrStatusFinal          = errors.New("applicant status is final")
)

// ValidationError lists the request fields that failed and why.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func validateRequest(v any) error {
	if fields := validator.Validate(v); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
