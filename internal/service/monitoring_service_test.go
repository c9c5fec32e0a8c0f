package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wooltrace/internal/domain"
	"wooltrace/internal/service"
	"wooltrace/mocks"
)

func TestMonitoringService_Snapshot(t *testing.T) {
	weather := new(mocks.MockWeatherProvider)
	svc := service.NewMonitoringService(weather)

	reading := &domain.WeatherReading{Temperature: 18.5, Humidity: 62, Condition: "Clouds"}
	weather.On("Current", mock.Anything).Return(reading, nil)

	snap, err := svc.Snapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, reading, snap.Weather)
	assert.Len(t, snap.Machines, 4)
	assert.False(t, snap.Timestamp.IsZero())
}

func TestMonitoringService_Snapshot_DegradesWithoutWeather(t *testing.T) {
	weather := new(mocks.MockWeatherProvider)
	svc := service.NewMonitoringService(weather)

	weather.On("Current", mock.Anything).Return(nil, errors.New("upstream timeout"))

	snap, err := svc.Snapshot(context.Background())

	require.NoError(t, err)
	assert.Nil(t, snap.Weather)
	assert.Len(t, snap.Machines, 4)
}
