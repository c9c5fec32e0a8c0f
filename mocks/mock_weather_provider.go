package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wooltrace/internal/domain"
)

// MockWeatherProvider is a mock implementation of port.WeatherProvider.
type MockWeatherProvider struct {
	mock.Mock
}

func (m *MockWeatherProvider) Current(ctx context.Context) (*domain.WeatherReading, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeatherReading), args.Error(1)
}
