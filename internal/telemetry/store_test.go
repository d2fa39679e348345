package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/groundlink/internal/wire"
)

// setupTestStore opens an in-memory store with the schema applied.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:")
	require.NoError(t, err, "failed to open test store")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordBattery_History(t *testing.T) {
	store := setupTestStore(t)

	readings := []*wire.Battery{
		{Charging: true, Voltage: 11.900, Percentage: 70, ChargeVoltage: 13.0},
		{Charging: true, Voltage: 11.950, Percentage: 71, ChargeVoltage: 13.0},
		{Charging: false, ChargeFinished: true, Voltage: 12.600, Percentage: 100},
	}
	for _, b := range readings {
		require.NoError(t, store.RecordBattery(b))
	}

	history, err := store.BatteryHistory(10)
	require.NoError(t, err)
	require.Len(t, history, 3)

	// Newest first.
	assert.Equal(t, 12.6, history[0].Voltage)
	assert.True(t, history[0].ChargeFinished)
	assert.Equal(t, uint8(70), history[2].Percentage)
}

func TestBatteryHistory_Limit(t *testing.T) {
	store := setupTestStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.RecordBattery(&wire.Battery{Voltage: float64(i)}))
	}

	history, err := store.BatteryHistory(2)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestRecord_DispatchesByType(t *testing.T) {
	store := setupTestStore(t)

	messages := []wire.Message{
		&wire.Battery{Frame: wire.Frame{Type: wire.OpBattery}, Voltage: 12.0},
		&wire.InfoState{Frame: wire.Frame{Type: wire.OpInfoState}, Code: 2, State: "forward"},
		&wire.MovementStatus{Frame: wire.Frame{Type: wire.OpMovementStatus}, StatusCode: 2},
		&wire.RouteStatus{Frame: wire.Frame{Type: wire.OpRouteStatus}, Success: true, RerouteCount: 3},
		// Types without history are ignored, not errors.
		&wire.RawMessage{Frame: wire.Frame{Type: wire.OpSyncRequest}},
		&wire.LidarScan{Frame: wire.Frame{Type: wire.OpLidarLowRes}},
	}
	for _, msg := range messages {
		require.NoError(t, store.Record(msg), "Record(%v)", msg.Header().Type)
	}

	states, err := store.StateHistory(10)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "forward", states[0].State)

	stats, err := store.DriveHistory()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Movements)
	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, 3, stats.Reroutes)
}

func TestMigrateDown_RemovesSchema(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.MigrateDown())
	assert.Error(t, store.RecordBattery(&wire.Battery{}), "recording after rollback should fail: battery_log is gone")
}
