// Package conv converts between unsigned integers and big-endian byte ranges
// at arbitrary offsets and widths.
//
// Widths above eight bytes are allowed; the extra leading bytes are written as
// zero and must be zero when decoding.
package conv

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeWidth = errors.New("conv: negative offset or width")
	ErrOutOfRange    = errors.New("conv: range exceeds buffer")
	ErrValueOverflow = errors.New("conv: value does not fit width")
)

// BytesToInt decodes data[offset:offset+width] as a big-endian integer.
func BytesToInt(data []byte, offset, width int) (uint64, error) {
	if offset < 0 || width < 0 {
		return 0, ErrNegativeWidth
	}
	if offset+width > len(data) {
		return 0, fmt.Errorf("%w: [%d:%d] of %d bytes", ErrOutOfRange, offset, offset+width, len(data))
	}
	var v uint64
	for i, b := range data[offset : offset+width] {
		if width-i > 8 {
			if b != 0 {
				return 0, fmt.Errorf("%w: %d-byte field at offset %d", ErrValueOverflow, width, offset)
			}
			continue
		}
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// IntToBytes writes value big-endian into buf[offset:offset+width].
// A value that needs more than width bytes is rejected and buf is left unchanged.
func IntToBytes(value uint64, buf []byte, offset, width int) error {
	if offset < 0 || width < 0 {
		return ErrNegativeWidth
	}
	if offset+width > len(buf) {
		return fmt.Errorf("%w: [%d:%d] of %d bytes", ErrOutOfRange, offset, offset+width, len(buf))
	}
	if !Fits(value, width) {
		return fmt.Errorf("%w: %d into %d bytes", ErrValueOverflow, value, width)
	}
	for i := offset + width - 1; i >= offset; i-- {
		buf[i] = byte(value)
		value >>= 8
	}
	return nil
}

// Fits reports whether value can be represented in width bytes.
func Fits(value uint64, width int) bool {
	if width >= 8 {
		return true
	}
	if width <= 0 {
		return value == 0
	}
	return value>>(8*uint(width)) == 0
}
