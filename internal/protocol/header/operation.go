package header

//go:generate go tool stringer -type=OperationKey -trimprefix=Op
type OperationKey uint8

// Operation keys as carried in the operation field.
const (
	OpWrite        OperationKey = 0x09
	OpReadRequest  OperationKey = 0x0A
	OpReadResponse OperationKey = 0x0B
)

// OperationKeys lists every known key in ascending order.
func OperationKeys() []OperationKey {
	return []OperationKey{OpWrite, OpReadRequest, OpReadResponse}
}

// ParseOperationKey maps a raw operation byte onto a known key.
func ParseOperationKey(b byte) (OperationKey, error) {
	switch k := OperationKey(b); k {
	case OpWrite, OpReadRequest, OpReadResponse:
		return k, nil
	default:
		return 0, UnknownOperationError{Byte: b}
	}
}

func (k OperationKey) Byte() byte { return byte(k) }
