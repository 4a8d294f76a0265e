package asc

import (
	"encoding/binary"

	"go.uber.org/zap/zapcore"

	"github.com/wippyai/asc-runtime/errors"
)

// HeaderSize is the length of the runtime header in front of every managed object.
const HeaderSize = 20

// Header is the runtime header of a managed object.
type Header struct {
	MMInfo  uint32
	GCInfo  uint32
	GCInfo2 uint32
	RTID    uint32
	RTSize  uint32
}

// NewHeader returns the header the host writes for a new object: all
// bookkeeping words zero.
func NewHeader(rtID, size uint32) Header {
	return Header{RTID: rtID, RTSize: size}
}

// Bytes returns the 20-byte wire form.
func (h Header) Bytes() []byte {
	b := make([]byte, 0, HeaderSize)
	b = binary.LittleEndian.AppendUint32(b, h.MMInfo)
	b = binary.LittleEndian.AppendUint32(b, h.GCInfo)
	b = binary.LittleEndian.AppendUint32(b, h.GCInfo2)
	b = binary.LittleEndian.AppendUint32(b, h.RTID)
	b = binary.LittleEndian.AppendUint32(b, h.RTSize)
	return b
}

// DecodeHeader parses exactly HeaderSize bytes.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) != HeaderSize {
		return Header{}, errors.Deterministic(errors.SizeMismatch(errors.PhaseDecode, "asc.Header", HeaderSize, len(b)))
	}
	return Header{
		MMInfo:  binary.LittleEndian.Uint32(b[0:4]),
		GCInfo:  binary.LittleEndian.Uint32(b[4:8]),
		GCInfo2: binary.LittleEndian.Uint32(b[8:12]),
		RTID:    binary.LittleEndian.Uint32(b[12:16]),
		RTSize:  binary.LittleEndian.Uint32(b[16:20]),
	}, nil
}

// ReadHeader reads the header preceding the object whose content starts at offset.
func ReadHeader(h Heap, offset uint32) (Header, error) {
	if offset < HeaderSize {
		return Header{}, errors.Deterministic(errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Value(offset).
			Detail("content offset %d leaves no room for a %d-byte header", offset, HeaderSize).
			Build())
	}
	b, err := h.Get(offset-HeaderSize, HeaderSize)
	if err != nil {
		return Header{}, err
	}
	return DecodeHeader(b)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (h Header) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint32("rt_id", h.RTID)
	enc.AddUint32("rt_size", h.RTSize)
	if h.MMInfo != 0 || h.GCInfo != 0 || h.GCInfo2 != 0 {
		enc.AddUint32("mm_info", h.MMInfo)
		enc.AddUint32("gc_info", h.GCInfo)
		enc.AddUint32("gc_info2", h.GCInfo2)
	}
	return nil
}
