// Package telemetry persists decoded robot messages so operators can look
// back at battery, state, and drive history. It consumes messages from the
// decode pipeline; it never touches wire bytes.
package telemetry

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/groundlink/internal/wire"
)

// Store wraps the station's sqlite database.
type Store struct {
	*sql.DB
}

// NewStore opens (or creates) the sqlite database at path and applies any
// pending schema migrations.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: cannot open %s: %w", path, err)
	}

	store := &Store{db}
	if err := store.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Record persists the message types the station keeps history for. Other
// message types are ignored: scans and rasters are large, transient, and
// served live instead.
func (s *Store) Record(msg wire.Message) error {
	switch m := msg.(type) {
	case *wire.Battery:
		return s.RecordBattery(m)
	case *wire.InfoState:
		return s.RecordInfoState(m)
	case *wire.MovementStatus:
		return s.RecordMovement(m)
	case *wire.RouteStatus:
		return s.RecordRoute(m)
	}
	return nil
}

// RecordBattery appends one battery reading.
func (s *Store) RecordBattery(m *wire.Battery) error {
	_, err := s.Exec(
		`INSERT INTO battery_log (charging, charge_finished, voltage, percentage, charge_voltage)
		 VALUES (?, ?, ?, ?, ?)`,
		m.Charging, m.ChargeFinished, m.Voltage, m.Percentage, m.ChargeVoltage)
	return err
}

// RecordInfoState appends one activity-state transition.
func (s *Store) RecordInfoState(m *wire.InfoState) error {
	_, err := s.Exec(
		`INSERT INTO state_log (code, state) VALUES (?, ?)`,
		m.Code, m.State)
	return err
}

// RecordMovement appends one movement command result.
func (s *Store) RecordMovement(m *wire.MovementStatus) error {
	_, err := s.Exec(
		`INSERT INTO movement_log (requested_x, requested_y, current_x, current_y, statuscode, success)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.RequestedX, m.RequestedY, m.CurrentX, m.CurrentY, m.StatusCode, m.Success)
	return err
}

// RecordRoute appends one route drive result.
func (s *Store) RecordRoute(m *wire.RouteStatus) error {
	_, err := s.Exec(
		`INSERT INTO route_log (requested_x, requested_y, current_x, current_y, statuscode, reroute_count, success)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.RequestedX, m.RequestedY, m.CurrentX, m.CurrentY, m.StatusCode, m.RerouteCount, m.Success)
	return err
}

// BatterySample is one row of battery history.
type BatterySample struct {
	Charging       bool      `json:"charging"`
	ChargeFinished bool      `json:"charge_finished"`
	Voltage        float64   `json:"voltage"`
	Percentage     int       `json:"percentage"`
	ChargeVoltage  float64   `json:"charge_voltage"`
	ReceivedAt     time.Time `json:"received_at"`
}

// BatteryHistory returns up to limit battery readings, newest first.
func (s *Store) BatteryHistory(limit int) ([]BatterySample, error) {
	rows, err := s.Query(
		`SELECT charging, charge_finished, voltage, percentage, charge_voltage, received_at
		 FROM battery_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []BatterySample
	for rows.Next() {
		var b BatterySample
		if err := rows.Scan(&b.Charging, &b.ChargeFinished, &b.Voltage, &b.Percentage, &b.ChargeVoltage, &b.ReceivedAt); err != nil {
			return nil, err
		}
		samples = append(samples, b)
	}
	return samples, rows.Err()
}

// StateTransition is one row of activity-state history.
type StateTransition struct {
	Code       int       `json:"code"`
	State      string    `json:"state"`
	ReceivedAt time.Time `json:"received_at"`
}

// StateHistory returns up to limit state transitions, newest first.
func (s *Store) StateHistory(limit int) ([]StateTransition, error) {
	rows, err := s.Query(
		`SELECT code, state, received_at FROM state_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transitions []StateTransition
	for rows.Next() {
		var t StateTransition
		if err := rows.Scan(&t.Code, &t.State, &t.ReceivedAt); err != nil {
			return nil, err
		}
		transitions = append(transitions, t)
	}
	return transitions, rows.Err()
}

// DriveStats summarises movement outcomes for the state endpoint.
type DriveStats struct {
	Movements int `json:"movements"`
	Failures  int `json:"failures"`
	Reroutes  int `json:"reroutes"`
}

// DriveHistory aggregates movement and route results.
func (s *Store) DriveHistory() (DriveStats, error) {
	var stats DriveStats
	err := s.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN success THEN 0 ELSE 1 END), 0)
		 FROM movement_log`).Scan(&stats.Movements, &stats.Failures)
	if err != nil {
		return stats, err
	}
	err = s.QueryRow(
		`SELECT COALESCE(SUM(reroute_count), 0) FROM route_log`).Scan(&stats.Reroutes)
	return stats, err
}
