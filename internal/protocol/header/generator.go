package header

import "github.com/rs/zerolog/log"

// Generator produces empty header skeletons for one protocol variant.
// Each call returns a fresh header that the caller owns.
type Generator interface {
	NewWriteHeader() *Header
	NewReadRequestHeader() *Header
	NewReadResponseHeader() *Header
}

// NewHeaderForOperation returns the skeleton g produces for k.
func NewHeaderForOperation(g Generator, k OperationKey) (*Header, error) {
	switch k {
	case OpReadRequest:
		return g.NewReadRequestHeader(), nil
	case OpReadResponse:
		return g.NewReadResponseHeader(), nil
	case OpWrite:
		return g.NewWriteHeader(), nil
	default:
		return nil, UnknownOperationError{Byte: byte(k)}
	}
}

// NewHeaderFromOperationByte selects a skeleton from the single leading
// operation byte of a packet.
func NewHeaderFromOperationByte(g Generator, b []byte) (*Header, error) {
	if len(b) != 1 {
		return nil, &LengthError{What: "operation byte", Want: 1, Got: len(b)}
	}
	k, err := ParseOperationKey(b[0])
	if err != nil {
		log.Debug().Err(err).Msg("header.NewHeaderFromOperationByte")
		return nil, err
	}
	h, err := NewHeaderForOperation(g, k)
	if err != nil {
		return nil, err
	}
	log.Debug().Stringer("operation", k).Int("size", h.Size()).Msg("header.NewHeaderFromOperationByte")
	return h, nil
}
