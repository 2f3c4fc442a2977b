package variant

import "github.com/danmuck/sigmactl/internal/protocol/header"

// ADAU14xx generates headers for the ADAU145x/146x family (SigmaStudio TCP
// channel, 32-bit length fields).
type ADAU14xx struct{}

func (ADAU14xx) NewWriteHeader() *header.Header {
	return header.MustNew(
		header.Field{Name: header.FieldOperation, Offset: 0, Size: 1, Value: uint64(header.OpWrite)},
		header.Field{Name: header.FieldSafeload, Offset: 1, Size: 1},
		header.Field{Name: header.FieldChannel, Offset: 2, Size: 1},
		header.Field{Name: header.FieldTotalLength, Offset: 3, Size: 4},
		header.Field{Name: header.FieldChipAddress, Offset: 7, Size: 1},
		header.Field{Name: header.FieldDataLength, Offset: 8, Size: 4},
		header.Field{Name: header.FieldAddress, Offset: 12, Size: 2},
	)
}

func (ADAU14xx) NewReadRequestHeader() *header.Header {
	return header.MustNew(
		header.Field{Name: header.FieldOperation, Offset: 0, Size: 1, Value: uint64(header.OpReadRequest)},
		header.Field{Name: header.FieldTotalLength, Offset: 1, Size: 4},
		header.Field{Name: header.FieldChipAddress, Offset: 5, Size: 1},
		header.Field{Name: header.FieldDataLength, Offset: 6, Size: 4},
		header.Field{Name: header.FieldAddress, Offset: 10, Size: 2},
		header.Field{Name: header.FieldReserved, Offset: 12, Size: 2},
	)
}

func (ADAU14xx) NewReadResponseHeader() *header.Header {
	return header.MustNew(
		header.Field{Name: header.FieldOperation, Offset: 0, Size: 1, Value: uint64(header.OpReadResponse)},
		header.Field{Name: header.FieldTotalLength, Offset: 1, Size: 4},
		header.Field{Name: header.FieldChipAddress, Offset: 5, Size: 1},
		header.Field{Name: header.FieldDataLength, Offset: 6, Size: 4},
		header.Field{Name: header.FieldAddress, Offset: 10, Size: 2},
		header.Field{Name: header.FieldSuccess, Offset: 12, Size: 1},
		header.Field{Name: header.FieldReserved, Offset: 13, Size: 1},
	)
}
