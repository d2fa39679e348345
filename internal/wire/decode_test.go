package wire

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// buildMessage assembles a raw header+payload buffer for decoder tests,
// bypassing Encode so malformed framings can be constructed freely.
func buildMessage(t *testing.T, op Opcode, payload []byte) []byte {
	t.Helper()
	buf := make([]byte, HeaderSize+len(payload))
	buf[0] = byte(op)
	binary.BigEndian.PutUint16(buf[1:3], uint16(len(payload)))
	copy(buf[HeaderSize:], payload)
	return buf
}

func TestDecode_TruncatedHeader(t *testing.T) {
	if _, err := Decode([]byte{131, 0x00}); !errors.Is(err, ErrTruncatedHeader) {
		t.Errorf("error = %v, want ErrTruncatedHeader", err)
	}
}

// TestDecode_TruncatedPayload verifies the decoder never under-reads: a
// buffer with fewer bytes than the header declares is rejected instead of
// being parsed as "the rest of the buffer".
func TestDecode_TruncatedPayload(t *testing.T) {
	buf := buildMessage(t, OpBattery, make([]byte, 6))
	for cut := 1; cut <= 6; cut++ {
		if _, err := Decode(buf[:len(buf)-cut]); !errors.Is(err, ErrTruncatedPayload) {
			t.Errorf("buffer short by %d bytes: error = %v, want ErrTruncatedPayload", cut, err)
		}
	}
}

func TestDecode_ExcessBytesIgnored(t *testing.T) {
	payload := []byte{0x00, 0x0B, 0xB8, 0x32, 0x0B, 0xB8} // battery message
	buf := append(buildMessage(t, OpBattery, payload), 0xDE, 0xAD, 0xBE, 0xEF)

	msg, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode unexpected error: %v", err)
	}
	if msg.Header().Length != len(payload) {
		t.Errorf("Length = %d, want %d", msg.Header().Length, len(payload))
	}
}

func TestDecode_UnknownOpcode(t *testing.T) {
	buf := buildMessage(t, Opcode(200), []byte{0x01, 0x02, 0x03})
	msg, err := Decode(buf)
	if err != nil {
		t.Fatalf("unknown opcode should decode header-only, got error: %v", err)
	}
	raw, ok := msg.(*RawMessage)
	if !ok {
		t.Fatalf("message type = %T, want *RawMessage", msg)
	}
	if raw.Type != 200 || raw.Length != 3 {
		t.Errorf("frame = %+v, want type 200 length 3", raw.Frame)
	}
}

func TestDecode_ReservedOpcodes(t *testing.T) {
	for _, op := range []Opcode{OpSyncRequest, OpPicture, OpLocalizationResult} {
		t.Run(op.String(), func(t *testing.T) {
			msg, err := Decode(buildMessage(t, op, nil))
			if err != nil {
				t.Fatalf("Decode(%v) unexpected error: %v", op, err)
			}
			if _, ok := msg.(*RawMessage); !ok {
				t.Errorf("message type = %T, want *RawMessage", msg)
			}
		})
	}
}

// TestDecode_LengthMatchesHeader checks the invariant that every successful
// decode reports exactly the payload length the header declared.
func TestDecode_LengthMatchesHeader(t *testing.T) {
	buffers := [][]byte{
		buildMessage(t, OpLidarLowRes, make([]byte, 10)),
		buildMessage(t, OpDebug, make([]byte, 20)),
		buildMessage(t, OpSonar, make([]byte, 13)),
		buildMessage(t, OpBattery, make([]byte, 6)),
		buildMessage(t, OpRouteInfo, make([]byte, 8+9)),
		buildMessage(t, OpSyncRequest, nil),
		buildMessage(t, OpDebugPoint, make([]byte, 12)),
		buildMessage(t, OpInfoState, []byte{0x00}),
		buildMessage(t, OpHeightmap, append([]byte{0x00, 0x02, 0x00, 0x02, 0x00, 0x00, 0, 0, 0, 0, 0, 0, 0, 0, 50}, make([]byte, 4)...)),
		buildMessage(t, OpRobotInfo, make([]byte, 8)),
		buildMessage(t, OpPicture, nil),
		buildMessage(t, OpLidarHighRes, make([]byte, 10+8)),
		buildMessage(t, OpMovementStatus, make([]byte, 34)),
		buildMessage(t, OpRouteStatus, make([]byte, 31)),
		buildMessage(t, OpStateVector, make([]byte, 16)),
		buildMessage(t, OpLocalizationResult, nil),
		buildMessage(t, Opcode(250), make([]byte, 5)),
	}

	for _, buf := range buffers {
		op, declared, err := ReadHeader(buf)
		if err != nil {
			t.Fatalf("ReadHeader failed: %v", err)
		}
		msg, err := Decode(buf)
		if err != nil {
			t.Fatalf("Decode(%v) failed: %v", op, err)
		}
		if msg.Header().Length != declared {
			t.Errorf("%v: decoded length %d != declared %d", op, msg.Header().Length, declared)
		}
	}
}

// Round-trip tests: messages built with Encode decode back to the original
// values (scaled fields within their wire precision).

func TestRoundTrip_Battery(t *testing.T) {
	// flags: charging set, finished clear; 11.982 V, 73%, 13.005 V charger
	buf, err := Encode(OpBattery,
		[]FieldKind{FieldUint8, FieldUint16, FieldUint8, FieldUint16},
		1, 11982, 73, 13005)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	msg, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got, ok := msg.(*Battery)
	if !ok {
		t.Fatalf("message type = %T, want *Battery", msg)
	}

	want := &Battery{
		Frame:          Frame{Type: OpBattery, Length: 6},
		Charging:       true,
		ChargeFinished: false,
		Voltage:        11.982,
		Percentage:     73,
		ChargeVoltage:  13.005,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("battery round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_Sonar(t *testing.T) {
	buf, err := Encode(OpSonar,
		[]FieldKind{FieldInt32, FieldInt32, FieldInt32, FieldInt8},
		-1200, 560, 75, 3)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	msg, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got, ok := msg.(*Sonar)
	if !ok {
		t.Fatalf("message type = %T, want *Sonar", msg)
	}

	want := &Sonar{
		Frame:   Frame{Type: OpSonar, Length: 13},
		X:       -1200,
		Y:       560,
		Z:       75,
		Channel: 3,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sonar round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_RobotInfo(t *testing.T) {
	buf, err := Encode(OpRobotInfo,
		[]FieldKind{FieldUint16, FieldUint16, FieldUint16, FieldUint16},
		450, 380, 120, 0)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	msg, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got, ok := msg.(*RobotInfo)
	if !ok {
		t.Fatalf("message type = %T, want *RobotInfo", msg)
	}

	want := &RobotInfo{
		Frame:        Frame{Type: OpRobotInfo, Length: 8},
		SizeX:        450,
		SizeY:        380,
		LidarOffsetX: 120,
		LidarOffsetY: 0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("robot info round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_MovementStatus(t *testing.T) {
	spec := []FieldKind{
		FieldUint16, FieldInt32, FieldInt32, // start angle, start x, start y
		FieldInt32, FieldInt32, FieldUint8, // requested x, y, backmode
		FieldUint16, FieldInt32, FieldInt32, // current angle, x, y
		FieldUint8, FieldInt32, // statuscode, obstacle flags
	}
	buf, err := Encode(OpMovementStatus, spec,
		900, -500, 200,
		1500, 1800, 1,
		905, 1490, 1795,
		0, 0)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	msg, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got, ok := msg.(*MovementStatus)
	if !ok {
		t.Fatalf("message type = %T, want *MovementStatus", msg)
	}

	want := &MovementStatus{
		Frame:             Frame{Type: OpMovementStatus, Length: 34},
		StartAngle:        900,
		StartX:            -500,
		StartY:            200,
		RequestedX:        1500,
		RequestedY:        1800,
		RequestedBackmode: 1,
		CurrentAngle:      905,
		CurrentX:          1490,
		CurrentY:          1795,
		StatusCode:        0,
		Success:           true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("movement status round trip mismatch (-want +got):\n%s", diff)
	}
}
