package fit

import "fmt"

// InvalidInputError reports sample data that cannot be fitted at all.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func invalid(format string, args ...interface{}) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// InsufficientDataError reports that too few points survived outlier rejection
// for the requested degree.
// Distinct is set when the points were enough but their abscissae were not.
type InsufficientDataError struct {
	Retained int
	Required int
	Distinct bool
}

func (e *InsufficientDataError) Error() string {
	if e.Distinct {
		return fmt.Sprintf("insufficient data: %d distinct x values retained, at least %d required", e.Retained, e.Required)
	}
	return fmt.Sprintf("insufficient data: %d points retained, at least %d required", e.Retained, e.Required)
}
