package errors

import "fmt"

// ErrorCode represents a Graha error code.
type ErrorCode string

const (
	ErrValidation      ErrorCode = "VALIDATION"       // 400: bad date/time/digit/coordinate input
	ErrUnknownSystem   ErrorCode = "UNKNOWN_SYSTEM"   // 400: unrecognized ayanamsa/planet/house system
	ErrNotFound        ErrorCode = "NOT_FOUND"        // 404: stored record not found
	ErrDataUnavailable ErrorCode = "DATA_UNAVAILABLE" // 502: ephemeris or sunrise provider failure
	ErrInternal        ErrorCode = "INTERNAL"         // 500
)

// GrahaError represents a structured error with code, status, and details.
type GrahaError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *GrahaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidation creates a 400 error for invalid caller input.
// Validation errors are never recovered; they surface immediately at the boundary.
func NewValidation(msg string) *GrahaError {
	return &GrahaError{
		Code:    ErrValidation,
		Status:  400,
		Message: msg,
	}
}

// NewValidationf creates a 400 validation error with a formatted message.
func NewValidationf(format string, args ...any) *GrahaError {
	return NewValidation(fmt.Sprintf(format, args...))
}

// NewInvalidCoordinates creates a 400 error for out-of-range latitude/longitude.
func NewInvalidCoordinates(lat, lon float64) *GrahaError {
	return &GrahaError{
		Code:    ErrValidation,
		Status:  400,
		Message: fmt.Sprintf("coordinates out of range: latitude must be in [-90,90] and longitude in [-180,180], got (%g, %g)", lat, lon),
		Details: map[string]any{"latitude": lat, "longitude": lon},
	}
}

// NewUnknownSystem creates a 400 error for an unrecognized named system
// (ayanamsa system, planet name, house system).
func NewUnknownSystem(kind, name string, valid []string) *GrahaError {
	return &GrahaError{
		Code:    ErrUnknownSystem,
		Status:  400,
		Message: fmt.Sprintf("unknown %s %q", kind, name),
		Details: map[string]any{"kind": kind, "name": name, "valid": valid},
	}
}

// NewNotFound creates a 404 error for a record that cannot be found.
func NewNotFound(identifier string) *GrahaError {
	return &GrahaError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("record not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewDataUnavailable creates a 502 error for an ephemeris or sunrise provider
// failure. The engine performs no retries; the caller decides whether to skip
// or abort.
func NewDataUnavailable(source string, err error) *GrahaError {
	return &GrahaError{
		Code:    ErrDataUnavailable,
		Status:  502,
		Message: fmt.Sprintf("%s data unavailable: %v", source, err),
		Details: map[string]any{"source": source},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *GrahaError {
	return &GrahaError{
		Code:    ErrInternal,
		Status:  500,
		Message: err.Error(),
	}
}

// IsCode reports whether err is a *GrahaError with the given code.
func IsCode(err error, code ErrorCode) bool {
	ge, ok := err.(*GrahaError)
	return ok && ge.Code == code
}
