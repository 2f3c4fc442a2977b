package variant

import "github.com/danmuck/sigmactl/internal/protocol/header"

// ADAU1x01 generates headers for the ADAU1701/1401 family, which use 16-bit
// length fields.
type ADAU1x01 struct{}

func (ADAU1x01) NewWriteHeader() *header.Header {
	return header.MustNew(
		header.Field{Name: header.FieldOperation, Offset: 0, Size: 1, Value: uint64(header.OpWrite)},
		header.Field{Name: header.FieldSafeload, Offset: 1, Size: 1},
		header.Field{Name: header.FieldChannel, Offset: 2, Size: 1},
		header.Field{Name: header.FieldTotalLength, Offset: 3, Size: 2},
		header.Field{Name: header.FieldChipAddress, Offset: 5, Size: 1},
		header.Field{Name: header.FieldDataLength, Offset: 6, Size: 2},
		header.Field{Name: header.FieldAddress, Offset: 8, Size: 2},
	)
}

func (ADAU1x01) NewReadRequestHeader() *header.Header {
	return header.MustNew(
		header.Field{Name: header.FieldOperation, Offset: 0, Size: 1, Value: uint64(header.OpReadRequest)},
		header.Field{Name: header.FieldTotalLength, Offset: 1, Size: 2},
		header.Field{Name: header.FieldChipAddress, Offset: 3, Size: 1},
		header.Field{Name: header.FieldDataLength, Offset: 4, Size: 2},
		header.Field{Name: header.FieldAddress, Offset: 6, Size: 2},
	)
}

func (ADAU1x01) NewReadResponseHeader() *header.Header {
	return header.MustNew(
		header.Field{Name: header.FieldOperation, Offset: 0, Size: 1, Value: uint64(header.OpReadResponse)},
		header.Field{Name: header.FieldTotalLength, Offset: 1, Size: 2},
		header.Field{Name: header.FieldChipAddress, Offset: 3, Size: 1},
		header.Field{Name: header.FieldDataLength, Offset: 4, Size: 2},
		header.Field{Name: header.FieldAddress, Offset: 6, Size: 2},
		header.Field{Name: header.FieldSuccess, Offset: 8, Size: 1},
		header.Field{Name: header.FieldReserved, Offset: 9, Size: 1},
	)
}
