package header

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidField     = errors.New("header: invalid field")
	ErrOverlap          = errors.New("header: overlapping fields")
	ErrDuplicateName    = errors.New("header: duplicate field name")
	ErrUnknownField     = errors.New("header: unknown field")
	ErrLengthMismatch   = errors.New("header: length mismatch")
	ErrUnknownOperation = errors.New("header: unknown operation")
)

// OverlapError reports two fields claiming the same byte positions.
type OverlapError struct {
	First  Field
	Second Field
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf(
		"header: fields %s [%d..%d] and %s [%d..%d] overlap",
		e.First.Name, e.First.Offset, e.First.End(),
		e.Second.Name, e.Second.Offset, e.Second.End(),
	)
}

func (e *OverlapError) Unwrap() error { return ErrOverlap }

// LengthError reports input whose length differs from what was expected.
type LengthError struct {
	What string
	Want int
	Got  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("header: %s needs exactly %d bytes, got %d", e.What, e.Want, e.Got)
}

func (e *LengthError) Unwrap() error { return ErrLengthMismatch }

// UnknownOperationError reports an operation byte outside the known key set.
type UnknownOperationError struct {
	Byte byte
}

func (e UnknownOperationError) Error() string {
	return fmt.Sprintf("header: unknown operation key 0x%02X", e.Byte)
}

func (e UnknownOperationError) Unwrap() error { return ErrUnknownOperation }
