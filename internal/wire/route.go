package wire

import "encoding/binary"

// RouteInfo payload layout: start x(4) + start y(4), then waypoints packed
// at a 9-byte stride: backmode(1) + x(4) + y(4).
const (
	routeInfoFixedSize = 8
	routePointSize     = 9
	routePointsOffset  = 8
	statusSuccessCode  = 0
	movementStatusSize = 34
	routeStatusSize    = 31
)

// RoutePoint is one waypoint of a planned route. Backmode is non-zero when
// the robot approaches the point in reverse.
type RoutePoint struct {
	Backmode uint8 `json:"backmode"`
	X        int32 `json:"x"`
	Y        int32 `json:"y"`
}

// RouteInfo is a planned route: the start position and the ordered waypoint
// list the robot intends to drive.
type RouteInfo struct {
	Frame
	StartX int32        `json:"start_x"`
	StartY int32        `json:"start_y"`
	Points []RoutePoint `json:"points"`
}

func parseRouteInfo(frame Frame, payload []byte) (Message, error) {
	if err := checkPayloadSize(frame.Type, payload, routeInfoFixedSize); err != nil {
		return nil, err
	}
	info := &RouteInfo{
		Frame:  frame,
		StartX: int32(binary.BigEndian.Uint32(payload[0:4])),
		StartY: int32(binary.BigEndian.Uint32(payload[4:8])),
	}

	// The waypoint count comes from the declared length at the 9-byte
	// stride; the 8 fixed bytes are absorbed by the integer division.
	count := frame.Length / routePointSize
	info.Points = make([]RoutePoint, 0, count)
	for i := 0; i < count; i++ {
		off := routePointsOffset + i*routePointSize
		if off+routePointSize > len(payload) {
			break
		}
		info.Points = append(info.Points, RoutePoint{
			Backmode: payload[off],
			X:        int32(binary.BigEndian.Uint32(payload[off+1 : off+5])),
			Y:        int32(binary.BigEndian.Uint32(payload[off+5 : off+9])),
		})
	}

	return info, nil
}

// MovementStatus reports the outcome of a single movement command: where the
// robot started, where it was asked to go, and where it ended up.
type MovementStatus struct {
	Frame
	StartAngle            int16  `json:"start_angle"`
	StartX                int32  `json:"start_x"`
	StartY                int32  `json:"start_y"`
	RequestedX            int32  `json:"requested_x"`
	RequestedY            int32  `json:"requested_y"`
	RequestedBackmode     uint8  `json:"requested_backmode"`
	CurrentAngle          int16  `json:"current_angle"`
	CurrentX              int32  `json:"current_x"`
	CurrentY              int32  `json:"current_y"`
	StatusCode            uint8  `json:"statuscode"`
	HardwareObstacleFlags uint32 `json:"hardware_obstacle_flags"`
	Success               bool   `json:"success"`
}

func parseMovementStatus(frame Frame, payload []byte) (Message, error) {
	if err := checkPayloadSize(frame.Type, payload, movementStatusSize); err != nil {
		return nil, err
	}
	return &MovementStatus{
		Frame:                 frame,
		StartAngle:            int16(binary.BigEndian.Uint16(payload[0:2])),
		StartX:                int32(binary.BigEndian.Uint32(payload[2:6])),
		StartY:                int32(binary.BigEndian.Uint32(payload[6:10])),
		RequestedX:            int32(binary.BigEndian.Uint32(payload[10:14])),
		RequestedY:            int32(binary.BigEndian.Uint32(payload[14:18])),
		RequestedBackmode:     payload[18],
		CurrentAngle:          int16(binary.BigEndian.Uint16(payload[19:21])),
		CurrentX:              int32(binary.BigEndian.Uint32(payload[21:25])),
		CurrentY:              int32(binary.BigEndian.Uint32(payload[25:29])),
		StatusCode:            payload[29],
		HardwareObstacleFlags: binary.BigEndian.Uint32(payload[30:34]),
		Success:               payload[29] == statusSuccessCode,
	}, nil
}

// RouteStatus reports the outcome of driving a planned route. Status code
// meanings beyond "0 is success" are a caller concern; the codec does not
// expand them into text.
type RouteStatus struct {
	Frame
	StartAngle   int16  `json:"start_angle"`
	StartX       int32  `json:"start_x"`
	StartY       int32  `json:"start_y"`
	RequestedX   int32  `json:"requested_x"`
	RequestedY   int32  `json:"requested_y"`
	CurrentAngle int16  `json:"current_angle"`
	CurrentX     int32  `json:"current_x"`
	CurrentY     int32  `json:"current_y"`
	StatusCode   uint8  `json:"statuscode"`
	RerouteCount uint16 `json:"reroute_count"`
	Success      bool   `json:"success"`
}

func parseRouteStatus(frame Frame, payload []byte) (Message, error) {
	if err := checkPayloadSize(frame.Type, payload, routeStatusSize); err != nil {
		return nil, err
	}
	return &RouteStatus{
		Frame:        frame,
		StartAngle:   int16(binary.BigEndian.Uint16(payload[0:2])),
		StartX:       int32(binary.BigEndian.Uint32(payload[2:6])),
		StartY:       int32(binary.BigEndian.Uint32(payload[6:10])),
		RequestedX:   int32(binary.BigEndian.Uint32(payload[10:14])),
		RequestedY:   int32(binary.BigEndian.Uint32(payload[14:18])),
		CurrentAngle: int16(binary.BigEndian.Uint16(payload[18:20])),
		CurrentX:     int32(binary.BigEndian.Uint32(payload[20:24])),
		CurrentY:     int32(binary.BigEndian.Uint32(payload[24:28])),
		StatusCode:   payload[28],
		RerouteCount: binary.BigEndian.Uint16(payload[29:31]),
		Success:      payload[28] == statusSuccessCode,
	}, nil
}
