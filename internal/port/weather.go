package port

import (
	"context"

	"wooltrace/internal/domain"
)

// WeatherProvider supplies current ambient conditions for the mill
// monitoring dashboard.
type WeatherProvider interface {
	Current(ctx context.Context) (*domain.WeatherReading, error)
}
