package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wooltrace/internal/domain"
)

// MockQualityReportRepo is a mock implementation of port.QualityReportRepository.
type MockQualityReportRepo struct {
	mock.Mock
}

func (m *MockQualityReportRepo) Create(ctx context.Context, report *domain.QualityReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockQualityReportRepo) GetByBatch(ctx context.Context, batchID uuid.UUID) (*domain.QualityReport, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QualityReport), args.Error(1)
}

func (m *MockQualityReportRepo) ListRecent(ctx context.Context, limit int) ([]domain.QualityReport, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QualityReport), args.Error(1)
}

func (m *MockQualityReportRepo) ListForFarmer(ctx context.Context, farmerID uuid.UUID) ([]domain.FarmerQualityResult, error) {
	args := m.Called(ctx, farmerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FarmerQualityResult), args.Error(1)
}

func (m *MockQualityReportRepo) Stats(ctx context.Context) (*domain.QualityStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QualityStats), args.Error(1)
}
