package wire

import (
	"encoding/binary"

	"github.com/banshee-data/groundlink/internal/monitoring"
)

// Lidar scan payload structure constants. Both scan resolutions share the
// same 10-byte fixed prefix (angle + robot position) followed by a packed
// point array; they differ in per-point width and coordinate scale.
const (
	lidarFixedSize = 10 // angle(2) + robot x(4) + robot y(4)

	lidarLowResPointSize  = 2 // dx(1) + dy(1), signed bytes
	lidarHighResPointSize = 4 // x(2) + y(2), signed 16-bit

	// Low resolution points are stored as signed bytes in 160-unit cells
	// around the robot position.
	lidarLowResScale = 160

	// Angle fields pack degrees into a signed 16-bit fraction of a turn.
	angleScale = 360.0 / 65536.0
)

// Point is a single lidar return in robot-frame world units.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// LidarScan is a decoded lidar point cloud, produced by both the low and
// high resolution opcodes. Frame.Type records which encoding it came from.
type LidarScan struct {
	Frame
	Angle  float64 `json:"angle"`   // heading in degrees at scan time
	RobotX int     `json:"robot_x"` // robot position when the scan was taken
	RobotY int     `json:"robot_y"`
	Points []Point `json:"points"`
}

// scaleAngle converts a packed signed 16-bit angle fraction to degrees.
func scaleAngle(raw int16) float64 {
	return float64(raw) * angleScale
}

// parseLidarPrefix reads the 10-byte fixed prefix shared by both lidar
// encodings and returns the scan with an empty point list.
func parseLidarPrefix(frame Frame, payload []byte) (*LidarScan, error) {
	if err := checkPayloadSize(frame.Type, payload, lidarFixedSize); err != nil {
		return nil, err
	}
	return &LidarScan{
		Frame:  frame,
		Angle:  scaleAngle(int16(binary.BigEndian.Uint16(payload[0:2]))),
		RobotX: int(int32(binary.BigEndian.Uint32(payload[2:6]))),
		RobotY: int(int32(binary.BigEndian.Uint32(payload[6:10]))),
	}, nil
}

// parseLidarLowRes decodes a LIDAR_LOWRES scan. Each point is a signed byte
// pair scaled by 160 and offset by the robot position.
//
// A trailing point that is too short to parse is dropped and the points
// already parsed are kept: one corrupt return should not discard a whole
// scan. The drop is logged so it stays observable.
func parseLidarLowRes(frame Frame, payload []byte) (Message, error) {
	scan, err := parseLidarPrefix(frame, payload)
	if err != nil {
		return nil, err
	}

	tail := payload[lidarFixedSize:]
	count := len(tail) / lidarLowResPointSize
	scan.Points = make([]Point, 0, count)
	for i := 0; i < count; i++ {
		off := i * lidarLowResPointSize
		scan.Points = append(scan.Points, Point{
			X: int(int8(tail[off]))*lidarLowResScale + scan.RobotX,
			Y: int(int8(tail[off+1]))*lidarLowResScale + scan.RobotY,
		})
	}
	if rem := len(tail) % lidarLowResPointSize; rem != 0 {
		monitoring.Logf("wire: LIDAR_LOWRES payload has %d trailing bytes after %d points; dropped", rem, count)
	}

	return scan, nil
}

// parseLidarHighRes decodes a LIDAR_HIGHRES scan. Points are signed 16-bit
// offsets added directly to the robot position, with no cell scaling. The
// same keep-the-parsed-prefix policy applies to a short trailing point.
func parseLidarHighRes(frame Frame, payload []byte) (Message, error) {
	scan, err := parseLidarPrefix(frame, payload)
	if err != nil {
		return nil, err
	}

	tail := payload[lidarFixedSize:]
	count := len(tail) / lidarHighResPointSize
	scan.Points = make([]Point, 0, count)
	for i := 0; i < count; i++ {
		off := i * lidarHighResPointSize
		scan.Points = append(scan.Points, Point{
			X: int(int16(binary.BigEndian.Uint16(tail[off:off+2]))) + scan.RobotX,
			Y: int(int16(binary.BigEndian.Uint16(tail[off+2:off+4]))) + scan.RobotY,
		})
	}
	if rem := len(tail) % lidarHighResPointSize; rem != 0 {
		monitoring.Logf("wire: LIDAR_HIGHRES payload has %d trailing bytes after %d points; dropped", rem, count)
	}

	return scan, nil
}
