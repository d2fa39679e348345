package wire

import "encoding/binary"

// Debug value block layout: a fixed run of signed 16-bit raw values.
const (
	debugValueCount = 10
	debugValueSize  = 2
)

// Debug carries raw firmware debug values. No scaling is applied; the
// meaning of each slot is a firmware-side convention.
type Debug struct {
	Frame
	Values [debugValueCount]int16 `json:"values"`
}

func parseDebug(frame Frame, payload []byte) (Message, error) {
	if err := checkPayloadSize(frame.Type, payload, debugValueCount*debugValueSize); err != nil {
		return nil, err
	}
	msg := &Debug{Frame: frame}
	for i := 0; i < debugValueCount; i++ {
		msg.Values[i] = int16(binary.BigEndian.Uint16(payload[i*debugValueSize : i*debugValueSize+debugValueSize]))
	}
	return msg, nil
}

// Debug point layout: x(4) + y(4) signed, r/g/b bytes, selector byte. A
// zero selector marks a transient point; anything else makes it persistent.
const (
	debugPointSize           = 12
	debugPointSelectorOffset = 11
)

// DebugPoint is a coloured marker the firmware asks the station to draw at a
// world position, either for the current frame only or persistently.
type DebugPoint struct {
	Frame
	X          int32 `json:"x"`
	Y          int32 `json:"y"`
	R          uint8 `json:"r"`
	G          uint8 `json:"g"`
	B          uint8 `json:"b"`
	Persistent bool  `json:"persistent"`
}

func parseDebugPoint(frame Frame, payload []byte) (Message, error) {
	if err := checkPayloadSize(frame.Type, payload, debugPointSize); err != nil {
		return nil, err
	}
	return &DebugPoint{
		Frame:      frame,
		X:          int32(binary.BigEndian.Uint32(payload[0:4])),
		Y:          int32(binary.BigEndian.Uint32(payload[4:8])),
		R:          payload[8],
		G:          payload[9],
		B:          payload[10],
		Persistent: payload[debugPointSelectorOffset] != 0,
	}, nil
}
