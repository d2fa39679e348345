package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// FieldKind selects the width and signedness of one encoded field. The robot
// firmware understands exactly these four encodings; there is no
// variable-length field kind.
type FieldKind int

const (
	FieldInt8   FieldKind = iota // signed, 1 byte
	FieldUint8                   // unsigned, 1 byte
	FieldUint16                  // unsigned, 2 bytes big-endian
	FieldInt32                   // signed, 4 bytes big-endian
)

// width returns the encoded size of the field kind in bytes.
func (k FieldKind) width() int {
	switch k {
	case FieldInt8, FieldUint8:
		return 1
	case FieldUint16:
		return 2
	case FieldInt32:
		return 4
	}
	return 0
}

// fits reports whether v is representable by the field kind.
func (k FieldKind) fits(v int64) bool {
	switch k {
	case FieldInt8:
		return v >= math.MinInt8 && v <= math.MaxInt8
	case FieldUint8:
		return v >= 0 && v <= math.MaxUint8
	case FieldUint16:
		return v >= 0 && v <= math.MaxUint16
	case FieldInt32:
		return v >= math.MinInt32 && v <= math.MaxInt32
	}
	return false
}

// String returns a short name for the field kind, used in error messages.
func (k FieldKind) String() string {
	switch k {
	case FieldInt8:
		return "int8"
	case FieldUint8:
		return "uint8"
	case FieldUint16:
		return "uint16"
	case FieldInt32:
		return "int32"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// Encode builds a complete header+payload message buffer for opcode. Each
// value is written big-endian with the width and signedness of the matching
// field kind, in order. With a nil or empty spec and no values the result is
// a header-only message with payload length zero, used for zero-payload
// messages such as SYNCREQ.
//
// The value count is validated against the spec before any byte is written,
// and every value is range-checked against its declared kind: a value that
// does not fit fails with ErrValueOutOfRange rather than being truncated to
// the field width.
func Encode(opcode Opcode, spec []FieldKind, values ...int64) ([]byte, error) {
	if len(values) != len(spec) {
		return nil, fmt.Errorf("%w: %d field kinds, %d values", ErrFieldCountMismatch, len(spec), len(values))
	}

	payloadLen := 0
	for i, kind := range spec {
		if kind.width() == 0 {
			return nil, fmt.Errorf("wire: unknown field kind %d at index %d", int(kind), i)
		}
		if !kind.fits(values[i]) {
			return nil, fmt.Errorf("%w: value %d at index %d does not fit %s", ErrValueOutOfRange, values[i], i, kind)
		}
		payloadLen += kind.width()
	}

	header, err := WriteHeader(int(opcode), payloadLen)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, HeaderSize, HeaderSize+payloadLen)
	copy(buf, header)

	for i, kind := range spec {
		v := values[i]
		switch kind {
		case FieldInt8:
			buf = append(buf, byte(int8(v)))
		case FieldUint8:
			buf = append(buf, byte(v))
		case FieldUint16:
			buf = binary.BigEndian.AppendUint16(buf, uint16(v))
		case FieldInt32:
			buf = binary.BigEndian.AppendUint32(buf, uint32(int32(v)))
		}
	}

	return buf, nil
}
