package wire

import (
	"encoding/binary"
	"fmt"
)

// Frame header structure constants. The header is the only part of a message
// shared by every opcode.
const (
	HeaderSize       = 3     // opcode byte + 2-byte big-endian payload length
	MaxPayloadLength = 65535 // payload length field is an unsigned 16-bit int
)

// WriteHeader encodes a 3-byte frame header. The opcode must fit a single
// unsigned byte and the payload length must fit an unsigned 16-bit integer;
// either violation is reported instead of silently truncated.
func WriteHeader(opcode, payloadLen int) ([]byte, error) {
	if opcode < 0 || opcode > 255 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOpcode, opcode)
	}
	if payloadLen < 0 || payloadLen > MaxPayloadLength {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrPayloadTooLarge, payloadLen, MaxPayloadLength)
	}

	header := make([]byte, HeaderSize)
	header[0] = byte(opcode)
	binary.BigEndian.PutUint16(header[1:3], uint16(payloadLen))
	return header, nil
}

// ReadHeader decodes the 3-byte frame header from the start of buf and
// returns the opcode and declared payload length.
func ReadHeader(buf []byte) (Opcode, int, error) {
	if len(buf) < HeaderSize {
		return 0, 0, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedHeader, HeaderSize, len(buf))
	}
	opcode := Opcode(buf[0])
	payloadLen := int(binary.BigEndian.Uint16(buf[1:3]))
	return opcode, payloadLen, nil
}
