package wire

import "fmt"

// parserFunc parses one opcode's payload into its message shape. The payload
// slice holds exactly the declared payload bytes; parsers must never read
// outside it.
type parserFunc func(frame Frame, payload []byte) (Message, error)

// parsers is the static schema table mapping each known opcode to its payload
// parser. It is read-only, process-lifetime data; Decode only ever reads it,
// which keeps concurrent decodes safe without synchronisation.
var parsers = map[Opcode]parserFunc{
	OpLidarLowRes:        parseLidarLowRes,
	OpDebug:              parseDebug,
	OpSonar:              parseSonar,
	OpBattery:            parseBattery,
	OpRouteInfo:          parseRouteInfo,
	OpSyncRequest:        parseHeaderOnly,
	OpDebugPoint:         parseDebugPoint,
	OpHeightmap:          parseHeightmap,
	OpInfoState:          parseInfoState,
	OpRobotInfo:          parseRobotInfo,
	OpPicture:            parseHeaderOnly,
	OpLidarHighRes:       parseLidarHighRes,
	OpMovementStatus:     parseMovementStatus,
	OpRouteStatus:        parseRouteStatus,
	OpStateVector:        parseStateVector,
	OpLocalizationResult: parseHeaderOnly,
}

// Decode parses one complete message buffer into its typed message shape.
//
// The buffer must contain the 3-byte header plus the payload bytes the
// header declares; anything after header+payload is ignored, and a buffer
// shorter than that fails with ErrTruncatedPayload rather than under-reading.
// An unrecognised opcode is not an error: it decodes to a header-only
// RawMessage so that newer firmware never breaks an older station.
func Decode(buf []byte) (Message, error) {
	opcode, payloadLen, err := ReadHeader(buf)
	if err != nil {
		return nil, err
	}

	if len(buf) < HeaderSize+payloadLen {
		return nil, fmt.Errorf("%w: header declares %d bytes, buffer holds %d",
			ErrTruncatedPayload, payloadLen, len(buf)-HeaderSize)
	}
	payload := buf[HeaderSize : HeaderSize+payloadLen]

	frame := Frame{Type: opcode, Length: payloadLen}
	parse, ok := parsers[opcode]
	if !ok {
		return &RawMessage{Frame: frame}, nil
	}
	return parse(frame, payload)
}

// parseHeaderOnly handles opcodes that carry no parsed payload fields:
// SYNCREQ (always empty) and the reserved PICTURE and LOCALIZATION_RESULT
// opcodes, whose upstream layouts are undocumented. Guessing a layout for the
// reserved ones would silently corrupt data, so their payloads are left
// untouched.
func parseHeaderOnly(frame Frame, _ []byte) (Message, error) {
	return &RawMessage{Frame: frame}, nil
}
