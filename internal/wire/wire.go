// Package wire implements the binary message format spoken between the robot
// and the operator station.
//
// Every message is a 3-byte header followed by a payload:
//
//	[opcode: 1 byte][payload length: 2 bytes big-endian][payload...]
//
// The payload layout is fixed per opcode; all multi-byte integers are
// big-endian. Encode and Decode are pure functions over their arguments and
// are safe for concurrent use. The codec owns no state: the per-opcode parser
// table is static, read-only data.
package wire

import "fmt"

// Opcode identifies a message's wire layout. The numeric values are part of
// the compatibility contract with the robot firmware and must not change.
type Opcode uint8

const (
	OpLidarLowRes        Opcode = 131 // low resolution lidar scan
	OpDebug              Opcode = 132 // raw debug value block
	OpSonar              Opcode = 133 // single sonar echo
	OpBattery            Opcode = 134 // battery and charger state
	OpRouteInfo          Opcode = 135 // planned route with waypoints
	OpSyncRequest        Opcode = 136 // zero-payload sync request
	OpDebugPoint         Opcode = 137 // coloured debug marker
	OpHeightmap          Opcode = 138 // terrain heightmap raster
	OpInfoState          Opcode = 139 // coarse activity state
	OpRobotInfo          Opcode = 140 // robot physical dimensions
	OpPicture            Opcode = 141 // reserved for future use
	OpLidarHighRes       Opcode = 142 // high resolution lidar scan
	OpMovementStatus     Opcode = 143 // result of a movement command
	OpRouteStatus        Opcode = 144 // result of a route drive
	OpStateVector        Opcode = 145 // subsystem flag vector
	OpLocalizationResult Opcode = 146 // reserved, layout undocumented
)

// opcodeNames maps known opcodes to their wire-protocol names.
var opcodeNames = map[Opcode]string{
	OpLidarLowRes:        "LIDAR_LOWRES",
	OpDebug:              "DBG",
	OpSonar:              "SONAR",
	OpBattery:            "BATTERY",
	OpRouteInfo:          "ROUTEINFO",
	OpSyncRequest:        "SYNCREQ",
	OpDebugPoint:         "DBGPOINT",
	OpHeightmap:          "HMAP",
	OpInfoState:          "INFOSTATE",
	OpRobotInfo:          "ROBOTINFO",
	OpPicture:            "PICTURE",
	OpLidarHighRes:       "LIDAR_HIGHRES",
	OpMovementStatus:     "MOVEMENT_STATUS",
	OpRouteStatus:        "ROUTE_STATUS",
	OpStateVector:        "STATEVECT",
	OpLocalizationResult: "LOCALIZATION_RESULT",
}

// String returns the protocol name of the opcode, or a numeric form for
// opcodes this build does not know about.
func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("OPCODE(%d)", uint8(o))
}

// Frame is the decoded message header shared by every message shape.
type Frame struct {
	Type   Opcode `json:"type"`
	Length int    `json:"length"` // declared payload length in bytes
}

// Header returns the frame itself so that embedding Frame satisfies Message.
func (f Frame) Header() Frame { return f }

// Message is a decoded wire message. The concrete type is selected by the
// frame's opcode; callers type-switch on it to consume type-specific fields.
type Message interface {
	Header() Frame
}

// RawMessage is the header-only message shape. It is produced for opcodes
// with no payload fields (SYNCREQ), for opcodes whose payload layout is
// reserved or undocumented (PICTURE, LOCALIZATION_RESULT), and for opcodes
// this build does not recognise at all.
type RawMessage struct {
	Frame
}
