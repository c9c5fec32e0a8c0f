package domain

import (
	"time"

	"github.com/google/uuid"
)

// FarmerQualityResult is the farmer-facing projection of an inspected batch.
type FarmerQualityResult struct {
	ReportID  uuid.UUID `db:"report_id" json:"report_id"`
	BatchCode string    `db:"batch_code" json:"batch_code"`
	WoolType  WoolType  `db:"wool_type" json:"wool_type"`
	Grade     Decision  `db:"grade" json:"grade"`
	Notes     string    `db:"notes" json:"notes"`
	Date      time.Time `db:"date" json:"date"`
}

// WeatherReading is the ambient-conditions part of the mill sensor snapshot.
type WeatherReading struct {
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
	Condition   string  `json:"condition"`
	Location    string  `json:"location"`
}

// MachineStatus reports the health of one mill machine.
type MachineStatus struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Health int    `json:"health"`
}

// SensorSnapshot is the monitoring dashboard payload.
type SensorSnapshot struct {
	Weather   *WeatherReading `json:"weather"`
	Machines  []MachineStatus `json:"machines"`
	Timestamp time.Time       `json:"timestamp"`
}
