package booking

import "errors"

var (
	ErrMissingFields   = errors.New("please fill out all fields")
	ErrInvalidDateTime = errors.New("invalid date or time")
	ErrUnknownService  = errors.New("selected service is invalid")
	ErrFieldTooLong    = errors.New("field is too long")
)

// ValidationError carries the rejected fields alongside one of the sentinels above.
type ValidationError struct {
	Err    error
	Fields map[string]string
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidation reports whether err was caused by rejected input.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
