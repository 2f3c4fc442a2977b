package header

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/sigmactl/internal/protocol/conv"
	"github.com/danmuck/sigmactl/internal/testutil/testlog"
	"github.com/google/go-cmp/cmp"
)

func mustField(t *testing.T, name FieldName, offset, size int) Field {
	t.Helper()
	f, err := NewField(name, offset, size, 0)
	if err != nil {
		t.Fatalf("new field %s: %v", name, err)
	}
	return f
}

func TestNewFieldRejectsNegativeLayout(t *testing.T) {
	if _, err := NewField(FieldAddress, -1, 2, 0); !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField for negative offset, got %v", err)
	}
	if _, err := NewField(FieldAddress, 0, -2, 0); !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField for negative size, got %v", err)
	}
	if _, err := NewField("checksum", 0, 1, 0); !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField for unknown name, got %v", err)
	}
}

func TestFieldEndAndIdentity(t *testing.T) {
	f := Field{Name: FieldTotalLength, Offset: 3, Size: 4, Value: 7}
	if f.End() != 6 {
		t.Fatalf("unexpected end: %d", f.End())
	}
	g := f
	g.Value = 99
	if !f.SameLayout(g) || f.Key() != g.Key() {
		t.Fatalf("value must not affect identity")
	}
	g.Size = 2
	if f.SameLayout(g) {
		t.Fatalf("size must affect identity")
	}
}

func TestContinuousHeaderSize(t *testing.T) {
	testlog.Start(t)
	h, err := New(
		Field{Name: FieldOperation, Offset: 0, Size: 4},
		Field{Name: FieldSafeload, Offset: 4, Size: 1},
	)
	if err != nil {
		t.Fatalf("new header: %v", err)
	}
	if !h.IsContinuous() {
		t.Fatalf("expected continuous header")
	}
	if h.Size() != 5 {
		t.Fatalf("unexpected size: %d", h.Size())
	}

	gap, err := New(
		Field{Name: FieldOperation, Offset: 0, Size: 4},
		Field{Name: FieldSafeload, Offset: 5, Size: 1},
	)
	if err != nil {
		t.Fatalf("new gap header: %v", err)
	}
	if gap.IsContinuous() {
		t.Fatalf("expected gap to break continuity")
	}
}

func TestEmptyHeader(t *testing.T) {
	h, err := New()
	if err != nil {
		t.Fatalf("new header: %v", err)
	}
	if h.Size() != 0 || !h.IsContinuous() || h.Len() != 0 {
		t.Fatalf("unexpected empty header state: %v", h)
	}
	b, err := h.Bytes()
	if err != nil || len(b) != 0 {
		t.Fatalf("unexpected empty bytes: %v %v", b, err)
	}
	var zero Header
	if err := zero.Add(FieldOperation, 0, 1, 0); err != nil {
		t.Fatalf("zero value header add: %v", err)
	}
}

func TestIterationFollowsOffsetOrder(t *testing.T) {
	h := MustNew(
		Field{Name: FieldAddress, Offset: 6, Size: 2},
		Field{Name: FieldOperation, Offset: 0, Size: 1},
		Field{Name: FieldDataLength, Offset: 2, Size: 4},
		Field{Name: FieldChipAddress, Offset: 1, Size: 1},
	)
	want := []FieldName{FieldOperation, FieldChipAddress, FieldDataLength, FieldAddress}
	if diff := cmp.Diff(want, h.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	var got []FieldName
	for f := range h.All() {
		got = append(got, f.Name)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("iteration mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateIdentityIsIgnored(t *testing.T) {
	testlog.Start(t)
	h := MustNew(Field{Name: FieldOperation, Offset: 0, Size: 1}, Field{Name: FieldAddress, Offset: 1, Size: 2})
	if err := h.Set(FieldAddress, 0x1234); err != nil {
		t.Fatalf("set: %v", err)
	}
	before := h.Fields()

	if err := h.Add(FieldAddress, 1, 2, 0xFFFF); err != nil {
		t.Fatalf("duplicate add returned error: %v", err)
	}
	if diff := cmp.Diff(before, h.Fields()); diff != "" {
		t.Fatalf("duplicate add changed header (-before +after):\n%s", diff)
	}
}

func TestSameNameDifferentLayoutRejected(t *testing.T) {
	h := MustNew(Field{Name: FieldOperation, Offset: 0, Size: 1})
	err := h.Add(FieldOperation, 4, 1, 0)
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if h.Len() != 1 {
		t.Fatalf("rejected add changed header: %v", h)
	}
}

func TestOverlapRejectedBeforeCommit(t *testing.T) {
	testlog.Start(t)
	h := MustNew(
		Field{Name: FieldOperation, Offset: 0, Size: 1},
		Field{Name: FieldTotalLength, Offset: 1, Size: 4},
	)
	before := h.Fields()

	err := h.Add(FieldChipAddress, 3, 2, 0)
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
	var overlap *OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("expected *OverlapError, got %T", err)
	}
	if overlap.First.Name != FieldTotalLength || overlap.Second.Name != FieldChipAddress {
		t.Fatalf("unexpected overlap pair: %+v", overlap)
	}
	if h.Has(FieldChipAddress) {
		t.Fatalf("rejected field was committed")
	}
	if diff := cmp.Diff(before, h.Fields()); diff != "" {
		t.Fatalf("header changed after rejected add:\n%s", diff)
	}
}

// A one-byte overlap at the boundary (last byte of one field equal to the
// first byte of the next) must be rejected.
func TestOverlapBoundaryIsStrict(t *testing.T) {
	h := MustNew(Field{Name: FieldOperation, Offset: 0, Size: 4})
	if err := h.Add(FieldSafeload, 3, 1, 0); !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected shared byte 3 to overlap, got %v", err)
	}
	if err := h.Add(FieldSafeload, 4, 1, 0); err != nil {
		t.Fatalf("adjacent field rejected: %v", err)
	}
	if _, err := New(Field{Name: FieldOperation, Offset: 2, Size: 2}, Field{Name: FieldSafeload, Offset: 2, Size: 1}); !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected equal offsets to overlap, got %v", err)
	}
}

func TestZeroSizeFieldDoesNotOverlapNeighbour(t *testing.T) {
	h := MustNew(
		Field{Name: FieldOperation, Offset: 0, Size: 4},
		Field{Name: FieldSafeload, Offset: 4, Size: 1},
	)
	if err := h.Add(FieldReserved, 4, 0, 0); err != nil {
		t.Fatalf("zero-size field rejected: %v", err)
	}
	if h.Size() != 5 || !h.IsContinuous() {
		t.Fatalf("unexpected layout: size=%d continuous=%v", h.Size(), h.IsContinuous())
	}
}

func TestBytesBigEndianPlacement(t *testing.T) {
	h := MustNew(
		Field{Name: FieldOperation, Offset: 0, Size: 1, Value: 0x09},
		Field{Name: FieldTotalLength, Offset: 1, Size: 4, Value: 0x0102},
		Field{Name: FieldAddress, Offset: 5, Size: 2, Value: 0xBEEF},
	)
	got, err := h.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	want := []byte{0x09, 0x00, 0x00, 0x01, 0x02, 0xBE, 0xEF}
	if !bytes.Equal(got, want) {
		t.Fatalf("bytes mismatch: got=% X want=% X", got, want)
	}
}

func TestBytesValueOverflow(t *testing.T) {
	h := MustNew(Field{Name: FieldOperation, Offset: 0, Size: 1})
	if err := h.Set(FieldOperation, 0x1FF); err != nil {
		t.Fatalf("set should not validate range: %v", err)
	}
	if _, err := h.Bytes(); !errors.Is(err, conv.ErrValueOverflow) {
		t.Fatalf("expected conv.ErrValueOverflow, got %v", err)
	}
}

func TestParseRoundTrip(t *testing.T) {
	testlog.Start(t)
	src := MustNew(
		Field{Name: FieldOperation, Offset: 0, Size: 1, Value: uint64(OpWrite)},
		Field{Name: FieldSafeload, Offset: 1, Size: 1, Value: 1},
		Field{Name: FieldChannel, Offset: 2, Size: 1, Value: 3},
		Field{Name: FieldTotalLength, Offset: 3, Size: 4, Value: 18},
		Field{Name: FieldChipAddress, Offset: 7, Size: 1, Value: 1},
		Field{Name: FieldDataLength, Offset: 8, Size: 4, Value: 4},
		Field{Name: FieldAddress, Offset: 12, Size: 2, Value: 0x4000},
	)
	data, err := src.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}

	dst := src.Clone()
	for _, name := range dst.Names() {
		if err := dst.Set(name, 0); err != nil {
			t.Fatalf("reset %s: %v", name, err)
		}
	}
	if err := dst.Parse(data); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(src.Fields(), dst.Fields()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLengthMismatchDoesNotMutate(t *testing.T) {
	h := MustNew(
		Field{Name: FieldOperation, Offset: 0, Size: 1, Value: 5},
		Field{Name: FieldTotalLength, Offset: 1, Size: 4, Value: 6},
		Field{Name: FieldChipAddress, Offset: 5, Size: 1, Value: 7},
		Field{Name: FieldAddress, Offset: 6, Size: 2, Value: 8},
	)
	if h.Size() != 8 {
		t.Fatalf("unexpected size: %d", h.Size())
	}
	before := h.Fields()

	err := h.Parse(make([]byte, 7))
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	var lengthErr *LengthError
	if !errors.As(err, &lengthErr) || lengthErr.Want != 8 || lengthErr.Got != 7 {
		t.Fatalf("unexpected length error: %v", err)
	}
	if diff := cmp.Diff(before, h.Fields()); diff != "" {
		t.Fatalf("parse mutated header:\n%s", diff)
	}
}

func TestNameAccess(t *testing.T) {
	h := MustNew(Field{Name: FieldOperation, Offset: 0, Size: 1}, Field{Name: FieldAddress, Offset: 1, Size: 2})
	if !h.Has(FieldAddress) || h.Has(FieldSuccess) {
		t.Fatalf("unexpected membership")
	}
	if _, err := h.Field(FieldSuccess); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	err := h.Set(FieldSuccess, 1)
	if !errors.Is(err, ErrInvalidField) || !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrInvalidField and ErrUnknownField on set, got %v", err)
	}
	if err := h.Set(FieldAddress, 0x10); err != nil {
		t.Fatalf("set: %v", err)
	}
	f, err := h.Field(FieldAddress)
	if err != nil || f.Value != 0x10 {
		t.Fatalf("unexpected field: %+v %v", f, err)
	}
	f.Value = 0x20
	if v, _ := h.Value(FieldAddress); v != 0x10 {
		t.Fatalf("returned field must be a copy, got %d", v)
	}
}

func TestPredicates(t *testing.T) {
	h := MustNew(
		Field{Name: FieldOperation, Offset: 0, Size: 1},
		Field{Name: FieldSafeload, Offset: 1, Size: 1},
	)
	if err := h.SetOperation(OpWrite); err != nil {
		t.Fatalf("set operation: %v", err)
	}
	if err := h.Set(FieldSafeload, 1); err != nil {
		t.Fatalf("set safeload: %v", err)
	}
	if !h.IsWriteRequest() || !h.IsSafeload() || !h.CarriesPayload() {
		t.Fatalf("write+safeload predicates wrong: %v", h)
	}
	if h.IsReadRequest() || h.IsReadResponse() {
		t.Fatalf("write header reported as read")
	}

	_ = h.SetOperation(OpReadRequest)
	if !h.IsReadRequest() || h.CarriesPayload() || h.IsSafeload() {
		t.Fatalf("read request predicates wrong: %v", h)
	}

	_ = h.SetOperation(OpReadResponse)
	if !h.IsReadResponse() || !h.CarriesPayload() {
		t.Fatalf("read response predicates wrong: %v", h)
	}

	k, err := h.Operation()
	if err != nil || k != OpReadResponse {
		t.Fatalf("unexpected operation: %v %v", k, err)
	}
}

func TestPredicatesWithoutFields(t *testing.T) {
	h := MustNew(Field{Name: FieldOperation, Offset: 0, Size: 1, Value: uint64(OpWrite)})
	if h.IsSafeload() {
		t.Fatalf("safeload requires a safeload field")
	}
	empty := MustNew()
	if empty.IsWriteRequest() || empty.CarriesPayload() {
		t.Fatalf("empty header must not match any operation")
	}
	if _, err := empty.Operation(); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	h := MustNew(Field{Name: FieldOperation, Offset: 0, Size: 1, Value: 9})
	c := h.Clone()
	_ = c.Set(FieldOperation, 10)
	_ = c.Add(FieldAddress, 1, 2, 0)
	if v, _ := h.Value(FieldOperation); v != 9 || h.Has(FieldAddress) {
		t.Fatalf("clone shares state with original: %v", h)
	}
}

// A header with a gap is a valid layout, but its fields do not fit into a
// buffer of Size bytes, so it can neither be serialized nor parsed.
func TestGapHeaderCannotBeSerialized(t *testing.T) {
	h := MustNew(
		Field{Name: FieldOperation, Offset: 0, Size: 4, Value: 1},
		Field{Name: FieldSafeload, Offset: 5, Size: 1, Value: 2},
	)
	if h.IsContinuous() || h.Size() != 5 {
		t.Fatalf("unexpected layout: size=%d continuous=%v", h.Size(), h.IsContinuous())
	}
	before := h.Fields()

	if _, err := h.Bytes(); !errors.Is(err, conv.ErrOutOfRange) {
		t.Fatalf("expected conv.ErrOutOfRange from Bytes, got %v", err)
	}
	if err := h.Parse(make([]byte, 5)); !errors.Is(err, conv.ErrOutOfRange) {
		t.Fatalf("expected conv.ErrOutOfRange from Parse, got %v", err)
	}
	if diff := cmp.Diff(before, h.Fields()); diff != "" {
		t.Fatalf("failed parse mutated header:\n%s", diff)
	}
}
