package wire

import "encoding/binary"

// infoStateNames is the static mapping from the wire state code to its name.
// The robot sends -1 for "undefined"; anything outside the table is a
// semantic error, not a new state to be guessed at.
var infoStateNames = map[int8]string{
	-1: "undefined",
	0:  "idle",
	1:  "think",
	2:  "forward",
	3:  "reverse",
	4:  "left",
	5:  "right",
	6:  "charging",
	7:  "daijuing",
}

// InfoState is the robot's coarse activity state.
type InfoState struct {
	Frame
	Code  int8   `json:"code"`
	State string `json:"state"`
}

func parseInfoState(frame Frame, payload []byte) (Message, error) {
	if err := checkPayloadSize(frame.Type, payload, 1); err != nil {
		return nil, err
	}
	code := int8(payload[0])
	name, ok := infoStateNames[code]
	if !ok {
		return nil, invalidPayload(frame.Type, "unknown info state")
	}
	return &InfoState{Frame: frame, Code: code, State: name}, nil
}

// robotInfoSize covers four signed 16-bit dimensions.
const robotInfoSize = 8

// RobotInfo describes the robot's physical footprint and where the lidar is
// mounted relative to its centre.
type RobotInfo struct {
	Frame
	SizeX        int16 `json:"size_x"`
	SizeY        int16 `json:"size_y"`
	LidarOffsetX int16 `json:"lidar_offset_x"`
	LidarOffsetY int16 `json:"lidar_offset_y"`
}

func parseRobotInfo(frame Frame, payload []byte) (Message, error) {
	if err := checkPayloadSize(frame.Type, payload, robotInfoSize); err != nil {
		return nil, err
	}
	return &RobotInfo{
		Frame:        frame,
		SizeX:        int16(binary.BigEndian.Uint16(payload[0:2])),
		SizeY:        int16(binary.BigEndian.Uint16(payload[2:4])),
		LidarOffsetX: int16(binary.BigEndian.Uint16(payload[4:6])),
		LidarOffsetY: int16(binary.BigEndian.Uint16(payload[6:8])),
	}, nil
}

// stateVectorSize is the fixed flag count: one byte per flag, non-zero means
// the flag is set.
const stateVectorSize = 16

// StateVector is the robot's subsystem flag vector. The flag order is fixed
// by the wire format; the trailing reserved slots are carried so that a
// future firmware can light them up without a format change.
type StateVector struct {
	Frame
	Localization2D        bool `json:"localization_2d"`
	Localization3D        bool `json:"localization_3d"`
	Mapping2D             bool `json:"mapping_2d"`
	Mapping3D             bool `json:"mapping_3d"`
	CollisionMapping      bool `json:"collision_mapping"`
	MotorsOn              bool `json:"motors_on"`
	AutonomousExploration bool `json:"autonomous_exploration"`
	BigLocalizationArea   bool `json:"big_localization_area"`
	Reserved2             bool `json:"reserved2"`
	Reserved3             bool `json:"reserved3"`
	Reserved4             bool `json:"reserved4"`
	Reserved5             bool `json:"reserved5"`
	Reserved6             bool `json:"reserved6"`
	Reserved7             bool `json:"reserved7"`
	Reserved8             bool `json:"reserved8"`
	Reserved9             bool `json:"reserved9"`
}

func parseStateVector(frame Frame, payload []byte) (Message, error) {
	if err := checkPayloadSize(frame.Type, payload, stateVectorSize); err != nil {
		return nil, err
	}
	flag := func(i int) bool { return payload[i] != 0 }
	return &StateVector{
		Frame:                 frame,
		Localization2D:        flag(0),
		Localization3D:        flag(1),
		Mapping2D:             flag(2),
		Mapping3D:             flag(3),
		CollisionMapping:      flag(4),
		MotorsOn:              flag(5),
		AutonomousExploration: flag(6),
		BigLocalizationArea:   flag(7),
		Reserved2:             flag(8),
		Reserved3:             flag(9),
		Reserved4:             flag(10),
		Reserved5:             flag(11),
		Reserved6:             flag(12),
		Reserved7:             flag(13),
		Reserved8:             flag(14),
		Reserved9:             flag(15),
	}, nil
}
