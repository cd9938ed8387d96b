package accessibility

import (
	"errors"
	"fmt"
)

// ErrNoRecords is returned when Compute receives an empty batch.
var ErrNoRecords = errors.New("no records to evaluate")

// UnknownModeError indicates an alternative code outside the mode enumeration.
type UnknownModeError struct {
	Row      int
	PersonID string
	Code     int
}

func (e *UnknownModeError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("unknown mode code %d (row %d, person %s)", e.Code, e.Row, e.PersonID)
	}
	return fmt.Sprintf("unknown mode code %d", e.Code)
}

// MissingRequiredFieldError indicates a record lacks a value the utility cannot do without.
type MissingRequiredFieldError struct {
	Row      int
	PersonID string
	Field    string
}

func (e *MissingRequiredFieldError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("missing required field %q (row %d, person %s)", e.Field, e.Row, e.PersonID)
	}
	return fmt.Sprintf("missing required field %q (person %s)", e.Field, e.PersonID)
}

// DegeneratePersonError indicates a person with no alternative of finite utility.
type DegeneratePersonError struct {
	PersonID string
}

func (e *DegeneratePersonError) Error() string {
	return fmt.Sprintf("person %s has no alternative with finite utility", e.PersonID)
}
