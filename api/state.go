package api

import (
	"sync"
	"time"

	"github.com/banshee-data/groundlink/internal/render"
	"github.com/banshee-data/groundlink/internal/wire"
)

// RobotState is the station's latest view of the robot, assembled from the
// most recent message of each interesting type. Fields are nil until the
// first message of that type arrives.
type RobotState struct {
	Battery     *wire.Battery        `json:"battery,omitempty"`
	InfoState   *wire.InfoState      `json:"info_state,omitempty"`
	StateVector *wire.StateVector    `json:"state_vector,omitempty"`
	RobotInfo   *wire.RobotInfo      `json:"robot_info,omitempty"`
	Movement    *wire.MovementStatus `json:"movement,omitempty"`
	Route       *wire.RouteStatus    `json:"route,omitempty"`
	MapStats    *render.RasterStats  `json:"map_stats,omitempty"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// StateTracker folds decoded messages into the latest robot state snapshot.
type StateTracker struct {
	mu    sync.RWMutex
	state RobotState
}

// NewStateTracker creates an empty tracker.
func NewStateTracker() *StateTracker {
	return &StateTracker{}
}

// Observe folds one decoded message into the snapshot. Message types with
// no snapshot slot (scans, debug markers) are ignored.
func (t *StateTracker) Observe(msg wire.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch m := msg.(type) {
	case *wire.Battery:
		t.state.Battery = m
	case *wire.InfoState:
		t.state.InfoState = m
	case *wire.StateVector:
		t.state.StateVector = m
	case *wire.RobotInfo:
		t.state.RobotInfo = m
	case *wire.MovementStatus:
		t.state.Movement = m
	case *wire.RouteStatus:
		t.state.Route = m
	case *wire.Heightmap:
		stats := render.Stats(m)
		t.state.MapStats = &stats
	default:
		return
	}
	t.state.UpdatedAt = time.Now()
}

// Snapshot returns a copy of the current state.
func (t *StateTracker) Snapshot() RobotState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}
