package header

import "fmt"

// FieldName identifies a header field. Only the names listed below are valid.
type FieldName string

const (
	FieldOperation   FieldName = "operation"
	FieldSafeload    FieldName = "safeload"
	FieldChannel     FieldName = "channel"
	FieldTotalLength FieldName = "total_length"
	FieldChipAddress FieldName = "chip_address"
	FieldDataLength  FieldName = "data_length"
	FieldAddress     FieldName = "address"
	FieldSuccess     FieldName = "success"
	FieldReserved    FieldName = "reserved"
)

var validNames = map[FieldName]struct{}{
	FieldOperation:   {},
	FieldSafeload:    {},
	FieldChannel:     {},
	FieldTotalLength: {},
	FieldChipAddress: {},
	FieldDataLength:  {},
	FieldAddress:     {},
	FieldSuccess:     {},
	FieldReserved:    {},
}

// Valid reports whether n belongs to the protocol's field name set.
func (n FieldName) Valid() bool {
	_, ok := validNames[n]
	return ok
}

// Field is a named byte range of a header and the value stored in it.
type Field struct {
	Name   FieldName
	Offset int
	Size   int
	Value  uint64
}

// FieldKey is the layout identity of a field. Value is not part of it.
type FieldKey struct {
	Name   FieldName
	Offset int
	Size   int
}

// NewField validates and returns a field.
func NewField(name FieldName, offset, size int, value uint64) (Field, error) {
	f := Field{Name: name, Offset: offset, Size: size, Value: value}
	if err := f.validate(); err != nil {
		return Field{}, err
	}
	return f, nil
}

func (f Field) validate() error {
	if !f.Name.Valid() {
		return fmt.Errorf("%w: name %q", ErrInvalidField, f.Name)
	}
	if f.Size < 0 {
		return fmt.Errorf("%w: %s size %d is negative", ErrInvalidField, f.Name, f.Size)
	}
	if f.Offset < 0 {
		return fmt.Errorf("%w: %s offset %d is negative", ErrInvalidField, f.Name, f.Offset)
	}
	return nil
}

// End is the index of the last byte occupied by the field.
func (f Field) End() int {
	return f.Offset + f.Size - 1
}

func (f Field) Key() FieldKey {
	return FieldKey{Name: f.Name, Offset: f.Offset, Size: f.Size}
}

// SameLayout reports whether f and other occupy the same slot.
func (f Field) SameLayout(other Field) bool {
	return f.Key() == other.Key()
}

func (f Field) String() string {
	return fmt.Sprintf("%s@%d+%d=%d", f.Name, f.Offset, f.Size, f.Value)
}
