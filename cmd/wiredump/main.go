// wiredump decodes a capture file of robot messages and prints one summary
// line per message. With -sync it instead writes an encoded SYNCREQ to
// stdout, which is handy for priming a robot link by hand:
//
//	wiredump -sync > /dev/udp/robot/port
//	wiredump capture.bin
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/groundlink/internal/wire"
)

func main() {
	var emitSync bool
	var asJSON bool

	flag.BoolVar(&emitSync, "sync", false, "write an encoded SYNCREQ message to stdout and exit")
	flag.BoolVar(&asJSON, "json", false, "print each decoded message as JSON instead of a summary line")
	flag.Parse()

	if emitSync {
		msg, err := wire.Encode(wire.OpSyncRequest, nil)
		if err != nil {
			log.Fatalf("encode SYNCREQ: %v", err)
		}
		if _, err := os.Stdout.Write(msg); err != nil {
			log.Fatalf("write: %v", err)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-json] <capture-file>\n", os.Args[0])
		os.Exit(2)
	}

	buf, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("read capture: %v", err)
	}

	var count, failed int
	for len(buf) > 0 {
		opcode, payloadLen, err := wire.ReadHeader(buf)
		if err != nil {
			log.Fatalf("message %d: %v", count+1, err)
		}
		total := wire.HeaderSize + payloadLen

		msg, err := wire.Decode(buf[:min(total, len(buf))])
		if err != nil {
			fmt.Printf("%4d  %-20s  %5d bytes  DECODE FAILED: %v\n",
				count+1, opcode, payloadLen, err)
			failed++
		} else if asJSON {
			out, err := json.Marshal(msg)
			if err != nil {
				log.Fatalf("message %d: marshal: %v", count+1, err)
			}
			fmt.Printf("%s\n", out)
		} else {
			fmt.Printf("%4d  %-20s  %5d bytes  %s\n",
				count+1, opcode, payloadLen, summarise(msg))
		}

		count++
		if total > len(buf) {
			break
		}
		buf = buf[total:]
	}

	if !asJSON {
		fmt.Printf("%d messages, %d failed\n", count, failed)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// summarise picks the one or two fields an operator scanning a dump actually
// wants to see for each message type.
func summarise(msg wire.Message) string {
	switch m := msg.(type) {
	case *wire.LidarScan:
		return fmt.Sprintf("%d points, robot (%d, %d), angle %.1f", len(m.Points), m.RobotX, m.RobotY, m.Angle)
	case *wire.Battery:
		return fmt.Sprintf("%.3fV %d%% charging=%v", m.Voltage, m.Percentage, m.Charging)
	case *wire.Sonar:
		return fmt.Sprintf("ch %d at (%d, %d, %d)", m.Channel, m.X, m.Y, m.Z)
	case *wire.InfoState:
		return m.State
	case *wire.RobotInfo:
		return fmt.Sprintf("size %dx%d lidar offset (%d, %d)", m.SizeX, m.SizeY, m.LidarOffsetX, m.LidarOffsetY)
	case *wire.RouteInfo:
		return fmt.Sprintf("%d route points", len(m.Points))
	case *wire.MovementStatus:
		return fmt.Sprintf("success=%v at (%d, %d)", m.Success, m.CurrentX, m.CurrentY)
	case *wire.RouteStatus:
		return fmt.Sprintf("success=%v reroutes=%d", m.Success, m.RerouteCount)
	case *wire.Heightmap:
		return fmt.Sprintf("%dx%d raster, unit %d", m.XSamples, m.YSamples, m.UnitSize)
	case *wire.StateVector:
		return fmt.Sprintf("motors=%v loc2d=%v map2d=%v", m.MotorsOn, m.Localization2D, m.Mapping2D)
	case *wire.Debug:
		return fmt.Sprintf("%v", m.Values)
	case *wire.DebugPoint:
		return fmt.Sprintf("(%d, %d) rgb(%d, %d, %d) persistent=%v", m.X, m.Y, m.R, m.G, m.B, m.Persistent)
	default:
		return "(no payload fields)"
	}
}
