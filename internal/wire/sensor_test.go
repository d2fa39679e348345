package wire

import (
	"errors"
	"testing"
)

func TestBattery_Flags(t *testing.T) {
	testCases := []struct {
		name         string
		flags        byte
		wantCharging bool
		wantFinished bool
	}{
		{"discharging", 0x00, false, false},
		{"charging", 0x01, true, false},
		{"finished", 0x02, false, true},
		{"charging_and_finished", 0x03, true, true},
		{"unrelated_bits_ignored", 0xFC, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := []byte{tc.flags, 0x2E, 0xCE, 50, 0x32, 0xCD} // 11.982 V, 13.005 V
			msg, err := Decode(buildMessage(t, OpBattery, payload))
			if err != nil {
				t.Fatalf("Decode unexpected error: %v", err)
			}
			bat := msg.(*Battery)
			if bat.Charging != tc.wantCharging || bat.ChargeFinished != tc.wantFinished {
				t.Errorf("flags %#x = (charging %v, finished %v), want (%v, %v)",
					tc.flags, bat.Charging, bat.ChargeFinished, tc.wantCharging, tc.wantFinished)
			}
			if bat.Voltage != 11.982 {
				t.Errorf("voltage = %v, want 11.982", bat.Voltage)
			}
			if bat.ChargeVoltage != 13.005 {
				t.Errorf("charge voltage = %v, want 13.005", bat.ChargeVoltage)
			}
			if bat.Percentage != 50 {
				t.Errorf("percentage = %d, want 50", bat.Percentage)
			}
		})
	}
}

func TestBattery_Truncated(t *testing.T) {
	if _, err := Decode(buildMessage(t, OpBattery, make([]byte, 5))); !errors.Is(err, ErrTruncatedPayload) {
		t.Errorf("error = %v, want ErrTruncatedPayload", err)
	}
}

func TestSonar_Truncated(t *testing.T) {
	if _, err := Decode(buildMessage(t, OpSonar, make([]byte, sonarSize-1))); !errors.Is(err, ErrTruncatedPayload) {
		t.Errorf("error = %v, want ErrTruncatedPayload", err)
	}
}
