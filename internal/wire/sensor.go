package wire

import "encoding/binary"

// Sonar payload layout: x(4) + y(4) + z(4) signed, channel(1) signed.
const sonarSize = 13

// Sonar is a single sonar echo in robot-frame world units. Channel
// identifies which transducer produced the echo.
type Sonar struct {
	Frame
	X       int32 `json:"x"`
	Y       int32 `json:"y"`
	Z       int32 `json:"z"`
	Channel int8  `json:"channel"`
}

func parseSonar(frame Frame, payload []byte) (Message, error) {
	if err := checkPayloadSize(frame.Type, payload, sonarSize); err != nil {
		return nil, err
	}
	return &Sonar{
		Frame:   frame,
		X:       int32(binary.BigEndian.Uint32(payload[0:4])),
		Y:       int32(binary.BigEndian.Uint32(payload[4:8])),
		Z:       int32(binary.BigEndian.Uint32(payload[8:12])),
		Channel: int8(payload[12]),
	}, nil
}

// Battery payload layout: flags(1) + voltage(2) + percentage(1) +
// charge voltage(2). Voltages are transmitted in millivolts.
const (
	batterySize = 6

	batteryFlagCharging       = 1 << 0
	batteryFlagChargeFinished = 1 << 1

	millivoltsPerVolt = 1000.0
)

// Battery is the robot's battery and charger state. Voltage fields are in
// volts with millivolt precision.
type Battery struct {
	Frame
	Charging       bool    `json:"charging"`
	ChargeFinished bool    `json:"charge_finished"`
	Voltage        float64 `json:"voltage"`
	Percentage     uint8   `json:"percentage"`
	ChargeVoltage  float64 `json:"charge_voltage"`
}

func parseBattery(frame Frame, payload []byte) (Message, error) {
	if err := checkPayloadSize(frame.Type, payload, batterySize); err != nil {
		return nil, err
	}
	flags := payload[0]
	return &Battery{
		Frame:          frame,
		Charging:       flags&batteryFlagCharging != 0,
		ChargeFinished: flags&batteryFlagChargeFinished != 0,
		Voltage:        float64(binary.BigEndian.Uint16(payload[1:3])) / millivoltsPerVolt,
		Percentage:     payload[3],
		ChargeVoltage:  float64(binary.BigEndian.Uint16(payload[4:6])) / millivoltsPerVolt,
	}, nil
}
