package service

import (
	"context"
	"log"
	"time"

	"wooltrace/internal/domain"
	"wooltrace/internal/port"
)

// MonitoringService serves the mill monitoring dashboard.
type MonitoringService interface {
	Snapshot(ctx context.Context) (*domain.SensorSnapshot, error)
}

type monitoringService struct {
	weather port.WeatherProvider
}

// NewMonitoringService creates a new MonitoringService implementation.
func NewMonitoringService(weather port.WeatherProvider) MonitoringService {
	return &monitoringService{weather: weather}
}

func (s *monitoringService) Snapshot(ctx context.Context) (*domain.SensorSnapshot, error) {
	reading, err := s.weather.Current(ctx)
	if err != nil {
		// The dashboard degrades rather than failing when the weather
		// provider is unreachable.
		log.Printf("monitoring: weather provider unavailable: %v", err)
		reading = nil
	}

	return &domain.SensorSnapshot{
		Weather:   reading,
		Machines:  machineStatuses(),
		Timestamp: time.Now().UTC(),
	}, nil
}

// machineStatuses returns the fixed mill floor inventory. Machine telemetry
// is not wired to live sensors yet, so health is reported nominal.
func machineStatuses() []domain.MachineStatus {
	return []domain.MachineStatus{
		{ID: "M-001", Name: "Scouring Line A", Status: "Operational", Health: 98},
		{ID: "M-002", Name: "Carding Machine 1", Status: "Operational", Health: 95},
		{ID: "M-003", Name: "Carding Machine 2", Status: "Maintenance", Health: 72},
		{ID: "M-004", Name: "Spinning Frame", Status: "Operational", Health: 91},
	}
}
