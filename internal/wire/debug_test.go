package wire

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestDebug_Values(t *testing.T) {
	payload := make([]byte, debugValueCount*debugValueSize)
	for i := 0; i < debugValueCount; i++ {
		binary.BigEndian.PutUint16(payload[i*2:], uint16(int16(i-5)))
	}

	msg, err := Decode(buildMessage(t, OpDebug, payload))
	if err != nil {
		t.Fatalf("Decode unexpected error: %v", err)
	}
	dbg := msg.(*Debug)
	for i, v := range dbg.Values {
		if want := int16(i - 5); v != want {
			t.Errorf("value[%d] = %d, want %d", i, v, want)
		}
	}
}

func TestDebug_Truncated(t *testing.T) {
	if _, err := Decode(buildMessage(t, OpDebug, make([]byte, 19))); !errors.Is(err, ErrTruncatedPayload) {
		t.Errorf("error = %v, want ErrTruncatedPayload", err)
	}
}

func TestDebugPoint(t *testing.T) {
	testCases := []struct {
		name           string
		selector       byte
		wantPersistent bool
	}{
		{"transient", 0x00, false},
		{"persistent", 0x01, true},
		{"persistent_any_nonzero", 0x7F, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := make([]byte, debugPointSize)
			x := int32(-40)
			binary.BigEndian.PutUint32(payload[0:4], uint32(x))
			binary.BigEndian.PutUint32(payload[4:8], 90)
			payload[8], payload[9], payload[10] = 255, 128, 0
			payload[debugPointSelectorOffset] = tc.selector

			msg, err := Decode(buildMessage(t, OpDebugPoint, payload))
			if err != nil {
				t.Fatalf("Decode unexpected error: %v", err)
			}
			pt := msg.(*DebugPoint)
			if pt.X != -40 || pt.Y != 90 {
				t.Errorf("position = (%d, %d), want (-40, 90)", pt.X, pt.Y)
			}
			if pt.R != 255 || pt.G != 128 || pt.B != 0 {
				t.Errorf("colour = (%d, %d, %d), want (255, 128, 0)", pt.R, pt.G, pt.B)
			}
			if pt.Persistent != tc.wantPersistent {
				t.Errorf("persistent = %v, want %v", pt.Persistent, tc.wantPersistent)
			}
		})
	}
}

func TestDebugPoint_Truncated(t *testing.T) {
	if _, err := Decode(buildMessage(t, OpDebugPoint, make([]byte, 11))); !errors.Is(err, ErrTruncatedPayload) {
		t.Errorf("error = %v, want ErrTruncatedPayload", err)
	}
}
