package header

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/danmuck/sigmactl/internal/protocol/conv"
	"github.com/rs/zerolog/log"
)

// Header is an ordered collection of fields that forms a packet header.
//
// Fields are kept sorted by offset and the layout is validated on every
// insertion. A Header is not safe for concurrent mutation.
type Header struct {
	fields []Field
	index  map[FieldName]int
}

// New builds a header from an initial field list. Fields may be given in any order.
func New(fields ...Field) (*Header, error) {
	h := &Header{index: make(map[FieldName]int, len(fields))}
	for _, f := range fields {
		if err := h.AddField(f); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// MustNew is New for static layouts; it panics on an invalid layout.
func MustNew(fields ...Field) *Header {
	h, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return h
}

// Add creates a field and inserts it, see AddField.
func (h *Header) Add(name FieldName, offset, size int, value uint64) error {
	f, err := NewField(name, offset, size, value)
	if err != nil {
		return err
	}
	return h.AddField(f)
}

// AddField inserts f. A field with the same name, offset and size is ignored,
// including its value. The header is only changed if the resulting layout has
// no overlapping fields.
func (h *Header) AddField(f Field) error {
	if err := f.validate(); err != nil {
		return err
	}
	if h.index == nil {
		h.index = make(map[FieldName]int)
	}
	if i, ok := h.index[f.Name]; ok {
		if h.fields[i].SameLayout(f) {
			return nil
		}
		return fmt.Errorf("%w: %s already at [%d..%d]", ErrDuplicateName, f.Name, h.fields[i].Offset, h.fields[i].End())
	}

	candidate := make([]Field, len(h.fields), len(h.fields)+1)
	copy(candidate, h.fields)
	candidate = append(candidate, f)
	sortByOffset(candidate)
	if err := checkOverlaps(candidate); err != nil {
		log.Debug().Err(err).Str("field", string(f.Name)).Msg("header.AddField rejected")
		return err
	}

	h.fields = candidate
	h.reindex()
	return nil
}

// sortByOffset orders by offset, then by size so empty fields sort first.
func sortByOffset(fields []Field) {
	slices.SortStableFunc(fields, func(a, b Field) int {
		if c := cmp.Compare(a.Offset, b.Offset); c != 0 {
			return c
		}
		return cmp.Compare(a.Size, b.Size)
	})
}

// checkOverlaps expects fields sorted by offset. A field must end strictly
// before the next one starts.
func checkOverlaps(fields []Field) error {
	for i := 1; i < len(fields); i++ {
		prev, next := fields[i-1], fields[i]
		if prev.End() >= next.Offset {
			return &OverlapError{First: prev, Second: next}
		}
	}
	return nil
}

func (h *Header) reindex() {
	clear(h.index)
	for i, f := range h.fields {
		h.index[f.Name] = i
	}
}

// Size is the sum of all field sizes in bytes.
func (h *Header) Size() int {
	total := 0
	for _, f := range h.fields {
		total += f.Size
	}
	return total
}

// Len is the number of fields.
func (h *Header) Len() int { return len(h.fields) }

// IsContinuous reports whether the fields leave no unused bytes between them.
func (h *Header) IsContinuous() bool {
	for i := 1; i < len(h.fields); i++ {
		if h.fields[i-1].End()+1 != h.fields[i].Offset {
			return false
		}
	}
	return true
}

// Bytes serializes all field values into a buffer of Size bytes.
func (h *Header) Bytes() ([]byte, error) {
	buf := make([]byte, h.Size())
	for _, f := range h.fields {
		if err := conv.IntToBytes(f.Value, buf, f.Offset, f.Size); err != nil {
			return nil, fmt.Errorf("header: encode %s: %w", f.Name, err)
		}
	}
	return buf, nil
}

// Parse overwrites every field value with the value decoded from data.
// data must be exactly Size bytes long. On error no field is modified.
func (h *Header) Parse(data []byte) error {
	if len(data) != h.Size() {
		return &LengthError{What: "header data", Want: h.Size(), Got: len(data)}
	}
	values := make([]uint64, len(h.fields))
	for i, f := range h.fields {
		v, err := conv.BytesToInt(data, f.Offset, f.Size)
		if err != nil {
			return fmt.Errorf("header: decode %s: %w", f.Name, err)
		}
		values[i] = v
	}
	for i := range h.fields {
		h.fields[i].Value = values[i]
	}
	return nil
}

// Field returns a copy of the named field.
func (h *Header) Field(name FieldName) (Field, error) {
	i, ok := h.index[name]
	if !ok {
		return Field{}, h.unknown(name)
	}
	return h.fields[i], nil
}

// Value returns the value of the named field.
func (h *Header) Value(name FieldName) (uint64, error) {
	f, err := h.Field(name)
	if err != nil {
		return 0, err
	}
	return f.Value, nil
}

// Set assigns the value of the named field. Whether the value fits the field
// is only checked by Bytes. Assigning to a name outside this header is a
// validation error matching both ErrInvalidField and ErrUnknownField.
func (h *Header) Set(name FieldName, value uint64) error {
	i, ok := h.index[name]
	if !ok {
		return fmt.Errorf("%w: %w", ErrInvalidField, h.unknown(name))
	}
	h.fields[i].Value = value
	return nil
}

// SetOperation stores k in the operation field.
func (h *Header) SetOperation(k OperationKey) error {
	return h.Set(FieldOperation, uint64(k))
}

// Has reports whether the header contains a field called name.
func (h *Header) Has(name FieldName) bool {
	_, ok := h.index[name]
	return ok
}

func (h *Header) unknown(name FieldName) error {
	names := make([]string, 0, len(h.fields))
	for _, f := range h.fields {
		names = append(names, string(f.Name))
	}
	return fmt.Errorf("%w %q; valid names are %s", ErrUnknownField, name, strings.Join(names, ", "))
}

// All yields copies of the fields in ascending offset order.
func (h *Header) All() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for _, f := range h.fields {
			if !yield(f) {
				return
			}
		}
	}
}

// Fields returns a copy of the fields in ascending offset order.
func (h *Header) Fields() []Field {
	return slices.Clone(h.fields)
}

// Names returns the field names in ascending offset order.
func (h *Header) Names() []FieldName {
	names := make([]FieldName, 0, len(h.fields))
	for _, f := range h.fields {
		names = append(names, f.Name)
	}
	return names
}

// Clone returns an independent copy of the header, values included.
func (h *Header) Clone() *Header {
	c := &Header{
		fields: slices.Clone(h.fields),
		index:  make(map[FieldName]int, len(h.fields)),
	}
	c.reindex()
	return c
}

// Operation decodes the operation field as an OperationKey.
func (h *Header) Operation() (OperationKey, error) {
	v, err := h.Value(FieldOperation)
	if err != nil {
		return 0, err
	}
	if v > 0xFF {
		return 0, fmt.Errorf("%w: operation value %d", ErrUnknownOperation, v)
	}
	return ParseOperationKey(byte(v))
}

func (h *Header) valueIs(name FieldName, want uint64) bool {
	i, ok := h.index[name]
	return ok && h.fields[i].Value == want
}

func (h *Header) IsWriteRequest() bool {
	return h.valueIs(FieldOperation, uint64(OpWrite))
}

func (h *Header) IsReadRequest() bool {
	return h.valueIs(FieldOperation, uint64(OpReadRequest))
}

func (h *Header) IsReadResponse() bool {
	return h.valueIs(FieldOperation, uint64(OpReadResponse))
}

// IsSafeload reports a write request that goes through software safeload.
func (h *Header) IsSafeload() bool {
	return h.IsWriteRequest() && h.valueIs(FieldSafeload, 1)
}

// CarriesPayload reports whether a payload follows this header on the wire.
func (h *Header) CarriesPayload() bool {
	return h.IsWriteRequest() || h.IsReadResponse()
}

func (h *Header) String() string {
	parts := make([]string, 0, len(h.fields))
	for _, f := range h.fields {
		parts = append(parts, f.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}
