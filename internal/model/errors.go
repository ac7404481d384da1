package model

import "fmt"

// NotFoundError is returned when no model was ever saved for the axis.
type NotFoundError struct {
	Axis Axis
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no model saved for %s", e.Axis)
}

// CorruptError is returned when the stored record is not a valid model.
type CorruptError struct {
	Axis   Axis
	Reason string
	Err    error
}

func (e *CorruptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt model for %s: %s: %v", e.Axis, e.Reason, e.Err)
	}
	return fmt.Sprintf("corrupt model for %s: %s", e.Axis, e.Reason)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}
