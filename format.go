package dawg

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// recordFormat is a compiled RecordMap record layout: a fixed sequence of
// unsigned integer fields, each with a byte width, packed or unpacked as a
// single flat byte slice. The format string mini-language mirrors Python's
// struct module far enough to cover the fixed-width tuple case RecordMap
// needs: an optional leading byte-order marker ('<' little, '>' big, '='
// native — treated as little-endian, since every platform this module
// targets is little-endian in practice) followed by one or more field
// specs, each an optional repeat count and one of:
//
//	B  uint8   (1 byte)
//	H  uint16  (2 bytes)
//	I  uint32  (4 bytes)
//	Q  uint64  (8 bytes)
//
// "<3H" is three little-endian uint16 fields; "=HI" is a native-order
// uint16 followed by a uint32.
type recordFormat struct {
	order  binary.ByteOrder
	widths []int
}

func (f *recordFormat) fieldCount() int { return len(f.widths) }

func (f *recordFormat) size() int {
	n := 0
	for _, w := range f.widths {
		n += w
	}
	return n
}

func parseRecordFormat(spec string) (*recordFormat, error) {
	if spec == "" {
		return nil, newBuildErr(ErrBadFormat, nil, "empty format string")
	}
	var order binary.ByteOrder = binary.LittleEndian
	i := 0
	switch spec[0] {
	case '<', '=':
		order = binary.LittleEndian
		i = 1
	case '>':
		order = binary.BigEndian
		i = 1
	}

	f := &recordFormat{order: order}
	for i < len(spec) {
		start := i
		for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
			i++
		}
		count := 1
		if i > start {
			n, err := strconv.Atoi(spec[start:i])
			if err != nil {
				return nil, newBuildErr(ErrBadFormat, nil, "bad repeat count")
			}
			count = n
		}
		if i >= len(spec) {
			return nil, newBuildErr(ErrBadFormat, nil, "repeat count with no field code")
		}
		width, ok := fieldWidth(spec[i])
		if !ok {
			return nil, newBuildErr(ErrBadFormat, nil, fmt.Sprintf("unknown field code %q", spec[i]))
		}
		i++
		for n := 0; n < count; n++ {
			f.widths = append(f.widths, width)
		}
	}
	if len(f.widths) == 0 {
		return nil, newBuildErr(ErrBadFormat, nil, "format has no fields")
	}
	return f, nil
}

func fieldWidth(code byte) (int, bool) {
	switch code {
	case 'B':
		return 1, true
	case 'H':
		return 2, true
	case 'I':
		return 4, true
	case 'Q':
		return 8, true
	default:
		return 0, false
	}
}

// pack encodes values (one per field, in order) into a flat byte slice.
func (f *recordFormat) pack(values []uint64) ([]byte, error) {
	if len(values) != len(f.widths) {
		return nil, newBuildErr(ErrBadFormat, nil, "value count does not match format field count")
	}
	out := make([]byte, 0, f.size())
	for i, v := range values {
		w := f.widths[i]
		var buf [8]byte
		switch w {
		case 1:
			buf[0] = byte(v)
		case 2:
			f.order.PutUint16(buf[:2], uint16(v))
		case 4:
			f.order.PutUint32(buf[:4], uint32(v))
		case 8:
			f.order.PutUint64(buf[:8], v)
		}
		out = append(out, buf[:w]...)
	}
	return out, nil
}

// unpack decodes a flat byte slice into one value per field, in order.
func (f *recordFormat) unpack(data []byte) ([]uint64, error) {
	if len(data) != f.size() {
		return nil, newFileErr("record payload length does not match format")
	}
	out := make([]uint64, len(f.widths))
	pos := 0
	for i, w := range f.widths {
		chunk := data[pos : pos+w]
		switch w {
		case 1:
			out[i] = uint64(chunk[0])
		case 2:
			out[i] = uint64(f.order.Uint16(chunk))
		case 4:
			out[i] = uint64(f.order.Uint32(chunk))
		case 8:
			out[i] = f.order.Uint64(chunk)
		}
		pos += w
	}
	return out, nil
}
