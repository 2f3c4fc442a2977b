// Package packet pairs a header with its optional payload and moves complete
// packets over a byte stream.
package packet

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/sigmactl/internal/protocol/header"
	"github.com/rs/zerolog/log"
)

var (
	ErrNilHeader             = errors.New("packet: nil header")
	ErrShortHeader           = errors.New("packet: short header")
	ErrShortPayload          = errors.New("packet: short payload")
	ErrPayloadTooLarge       = errors.New("packet: payload too large")
	ErrNoPayloadExpected     = errors.New("packet: payload on a packet that carries none")
	ErrPayloadLengthMismatch = errors.New("packet: data_length does not match payload")
)

// Packet is one complete wire message.
type Packet struct {
	Header  *header.Header
	Payload []byte
}

// Limits constrains payload memory use.
type Limits struct {
	MaxPayloadBytes uint64
}

func DefaultLimits() Limits {
	return Limits{MaxPayloadBytes: 1024 * 1024}
}

// NewWrite builds a write request for data at address on chip.
func NewWrite(g header.Generator, chip, address uint64, data []byte, safeload bool) (*Packet, error) {
	h := g.NewWriteHeader()
	sl := uint64(0)
	if safeload {
		sl = 1
	}
	if err := setAll(h, map[header.FieldName]uint64{
		header.FieldChipAddress: chip,
		header.FieldAddress:     address,
		header.FieldSafeload:    sl,
	}); err != nil {
		return nil, err
	}
	p := &Packet{Header: h, Payload: bytes.Clone(data)}
	return p, p.syncLengths()
}

// NewReadRequest asks for length bytes at address on chip.
func NewReadRequest(g header.Generator, chip, address, length uint64) (*Packet, error) {
	h := g.NewReadRequestHeader()
	if err := setAll(h, map[header.FieldName]uint64{
		header.FieldChipAddress: chip,
		header.FieldAddress:     address,
		header.FieldDataLength:  length,
	}); err != nil {
		return nil, err
	}
	p := &Packet{Header: h}
	return p, p.syncLengths()
}

// NewReadResponse answers req with data. Addressing is copied from req; the
// success field is left for the caller.
func NewReadResponse(g header.Generator, req *header.Header, data []byte) (*Packet, error) {
	if req == nil {
		return nil, ErrNilHeader
	}
	h := g.NewReadResponseHeader()
	for _, name := range []header.FieldName{header.FieldChipAddress, header.FieldAddress} {
		v, err := req.Value(name)
		if err != nil {
			return nil, err
		}
		if err := h.Set(name, v); err != nil {
			return nil, err
		}
	}
	p := &Packet{Header: h, Payload: bytes.Clone(data)}
	return p, p.syncLengths()
}

func setAll(h *header.Header, values map[header.FieldName]uint64) error {
	for name, v := range values {
		if err := h.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}

// syncLengths derives total_length and, for packets with a payload,
// data_length. A read request keeps its data_length as the requested count.
func (p *Packet) syncLengths() error {
	if p.Header == nil {
		return ErrNilHeader
	}
	if !p.Header.CarriesPayload() && len(p.Payload) > 0 {
		return ErrNoPayloadExpected
	}
	if p.Header.Has(header.FieldTotalLength) {
		total := uint64(p.Header.Size() + len(p.Payload))
		if err := p.Header.Set(header.FieldTotalLength, total); err != nil {
			return err
		}
	}
	if p.Header.CarriesPayload() && p.Header.Has(header.FieldDataLength) {
		if err := p.Header.Set(header.FieldDataLength, uint64(len(p.Payload))); err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns the header followed by the payload.
func (p *Packet) Bytes() ([]byte, error) {
	if err := p.syncLengths(); err != nil {
		return nil, err
	}
	hb, err := p.Header.Bytes()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(hb)+len(p.Payload))
	out = append(out, hb...)
	return append(out, p.Payload...), nil
}

// Read reads one packet from r. The leading operation byte selects the header
// layout from g. io.EOF is returned unchanged when r ends before a new packet.
func Read(r io.Reader, g header.Generator, limits Limits) (*Packet, error) {
	var op [1]byte
	if _, err := io.ReadFull(r, op[:]); err != nil {
		return nil, err
	}

	h, err := header.NewHeaderFromOperationByte(g, op[:])
	if err != nil {
		return nil, err
	}

	if h.Size() < 1 {
		return nil, ErrShortHeader
	}
	raw := make([]byte, h.Size())
	raw[0] = op[0]
	if _, err := io.ReadFull(r, raw[1:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, ErrShortHeader
		}
		return nil, err
	}
	if err := h.Parse(raw); err != nil {
		return nil, err
	}

	p := &Packet{Header: h}
	if !h.CarriesPayload() {
		log.Debug().Str("header", h.String()).Msg("packet.Read")
		return p, nil
	}

	n, err := h.Value(header.FieldDataLength)
	if err != nil {
		return nil, err
	}
	if n > limits.MaxPayloadBytes {
		log.Error().Uint64("data_length", n).Uint64("max", limits.MaxPayloadBytes).Msg("packet.Read payload too large")
		return nil, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, n, limits.MaxPayloadBytes)
	}
	p.Payload = make([]byte, n)
	if _, err := io.ReadFull(r, p.Payload); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, ErrShortPayload
		}
		return nil, err
	}
	log.Debug().Str("header", h.String()).Int("payload", len(p.Payload)).Msg("packet.Read")
	return p, nil
}

// Write fills the length fields of p and writes it to w.
func Write(w io.Writer, p *Packet, limits Limits) error {
	if p == nil || p.Header == nil {
		return ErrNilHeader
	}
	if uint64(len(p.Payload)) > limits.MaxPayloadBytes {
		return ErrPayloadTooLarge
	}
	b, err := p.Bytes()
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	log.Debug().Str("header", p.Header.String()).Int("payload", len(p.Payload)).Msg("packet.Write")
	return nil
}

// Validate checks that data_length agrees with the payload of p.
func (p *Packet) Validate() error {
	if p.Header == nil {
		return ErrNilHeader
	}
	if !p.Header.CarriesPayload() {
		if len(p.Payload) > 0 {
			return ErrNoPayloadExpected
		}
		return nil
	}
	n, err := p.Header.Value(header.FieldDataLength)
	if err != nil {
		return err
	}
	if n != uint64(len(p.Payload)) {
		return fmt.Errorf("%w: data_length=%d payload=%d", ErrPayloadLengthMismatch, n, len(p.Payload))
	}
	return nil
}
