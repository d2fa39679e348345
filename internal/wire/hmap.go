package wire

import (
	"encoding/binary"
	"fmt"
)

// Heightmap payload layout: xsamples(2) + ysamples(2) unsigned,
// angle(2) signed, x(4) + y(4) signed, unit size(1), then the raster of
// xsamples*ysamples height bytes.
const (
	hmapFixedSize    = 15
	hmapRasterOffset = 15

	// Sample dimensions outside this range cannot come from the robot's
	// mapper; they indicate a corrupt or hostile payload. The cap also
	// bounds the raster allocation before it happens.
	hmapMinSamples = 1
	hmapMaxSamples = 256
)

// Heightmap is a decoded terrain height raster. The raster is row-major,
// XSamples*YSamples bytes, one height sample per byte, with UnitSize giving
// the world size of one cell edge.
type Heightmap struct {
	Frame
	XSamples int     `json:"xsamples"`
	YSamples int     `json:"ysamples"`
	Angle    float64 `json:"angle"`
	X        int32   `json:"x"`
	Y        int32   `json:"y"`
	UnitSize uint8   `json:"unit_size"`
	Raster   []byte  `json:"-"`
}

func parseHeightmap(frame Frame, payload []byte) (Message, error) {
	if err := checkPayloadSize(frame.Type, payload, hmapFixedSize); err != nil {
		return nil, err
	}

	xs := int(binary.BigEndian.Uint16(payload[0:2]))
	ys := int(binary.BigEndian.Uint16(payload[2:4]))
	if xs < hmapMinSamples || xs > hmapMaxSamples || ys < hmapMinSamples || ys > hmapMaxSamples {
		return nil, invalidPayload(frame.Type, "hmap dimensions out of range")
	}

	rasterSize := xs * ys
	if hmapRasterOffset+rasterSize > len(payload) {
		return nil, fmt.Errorf("%w: %s raster needs %d bytes, payload holds %d",
			ErrTruncatedPayload, frame.Type, rasterSize, len(payload)-hmapRasterOffset)
	}

	// The raster is copied out so the message does not alias the caller's
	// buffer after Decode returns.
	raster := make([]byte, rasterSize)
	copy(raster, payload[hmapRasterOffset:hmapRasterOffset+rasterSize])

	return &Heightmap{
		Frame:    frame,
		XSamples: xs,
		YSamples: ys,
		Angle:    scaleAngle(int16(binary.BigEndian.Uint16(payload[4:6]))),
		X:        int32(binary.BigEndian.Uint32(payload[6:10])),
		Y:        int32(binary.BigEndian.Uint32(payload[10:14])),
		UnitSize: payload[14],
		Raster:   raster,
	}, nil
}
