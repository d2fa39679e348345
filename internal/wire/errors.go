package wire

import (
	"errors"
	"fmt"
)

// Structural errors: the frame itself is malformed. These are always
// surfaced to the caller; the codec never fabricates data to cover them.
var (
	// ErrTruncatedHeader means the buffer is shorter than the 3-byte header.
	ErrTruncatedHeader = errors.New("wire: truncated header")

	// ErrTruncatedPayload means the buffer holds fewer payload bytes than the
	// header declares, or a parser needed bytes beyond the declared payload.
	ErrTruncatedPayload = errors.New("wire: truncated payload")

	// ErrInvalidOpcode means an opcode outside 0..255 was passed to the
	// header writer.
	ErrInvalidOpcode = errors.New("wire: opcode out of range")

	// ErrPayloadTooLarge means a payload length outside 0..65535 was passed
	// to the header writer.
	ErrPayloadTooLarge = errors.New("wire: payload too large")

	// ErrFieldCountMismatch means Encode was given a different number of
	// values than field kinds.
	ErrFieldCountMismatch = errors.New("wire: field count mismatch")

	// ErrValueOutOfRange means Encode was given a value that does not fit
	// its declared field kind.
	ErrValueOutOfRange = errors.New("wire: value out of range")
)

// InvalidPayloadError reports a payload that is structurally well-formed but
// semantically outside the message type's valid domain, such as a heightmap
// with impossible dimensions. It is distinct from the structural errors above
// because the frame itself was valid.
type InvalidPayloadError struct {
	Op     Opcode
	Reason string
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("wire: invalid %s payload: %s", e.Op, e.Reason)
}

// invalidPayload builds an InvalidPayloadError for op with the given reason.
func invalidPayload(op Opcode, reason string) error {
	return &InvalidPayloadError{Op: op, Reason: reason}
}

// checkPayloadSize verifies the payload carries at least want bytes before a
// parser reads its fixed fields. Parsers call this once up front so that a
// short payload becomes a typed error instead of an out-of-bounds read.
func checkPayloadSize(op Opcode, payload []byte, want int) error {
	if len(payload) < want {
		return fmt.Errorf("%w: %s needs %d bytes, have %d",
			ErrTruncatedPayload, op, want, len(payload))
	}
	return nil
}
