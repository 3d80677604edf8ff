package yamldoc

import (
	"errors"
	"fmt"
)

// FormatError is returned when a YAML value does not have the expected shape.
type FormatError struct {
	Path     string
	Subject  string
	Expected string
	Actual   string
}

func (e *FormatError) Error() string {
	if e.Actual == "" {
		return fmt.Sprintf("%s in %s must be %s", e.Subject, e.Path, e.Expected)
	}
	return fmt.Sprintf("%s in %s must be %s, got %s", e.Subject, e.Path, e.Expected, e.Actual)
}

// NewFormatError creates a new FormatError.
func NewFormatError(path, subject, expected, actual string) error {
	return &FormatError{
		Path:     path,
		Subject:  subject,
		Expected: expected,
		Actual:   actual,
	}
}

// IsFormatError reports whether err or any error it wraps is a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
