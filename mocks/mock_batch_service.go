package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wooltrace/internal/domain"
	"wooltrace/internal/service"
)

// MockBatchService is a mock implementation of service.BatchService.
type MockBatchService struct {
	mock.Mock
}

func (m *MockBatchService) Create(ctx context.Context, actorID uuid.UUID, actorRole domain.Role, input service.CreateBatchInput) (*domain.Batch, error) {
	args := m.Called(ctx, actorID, actorRole, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockBatchService) List(ctx context.Context, actorID uuid.UUID, actorRole domain.Role, offset, limit int) ([]domain.Batch, int, error) {
	args := m.Called(ctx, actorID, actorRole, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Batch), args.Int(1), args.Error(2)
}

func (m *MockBatchService) GetByID(ctx context.Context, batchID uuid.UUID) (*domain.Batch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockBatchService) UpdateStage(ctx context.Context, batchID, operatorID uuid.UUID, input service.UpdateStageInput) (*domain.Batch, error) {
	args := m.Called(ctx, batchID, operatorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockBatchService) AddLog(ctx context.Context, batchID, operatorID uuid.UUID, input service.AddLogInput) (*domain.Batch, error) {
	args := m.Called(ctx, batchID, operatorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockBatchService) UpdateDetails(ctx context.Context, batchID uuid.UUID, input service.UpdateBatchInput) (*domain.Batch, error) {
	args := m.Called(ctx, batchID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockBatchService) UploadImage(ctx context.Context, batchID uuid.UUID, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, batchID, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *MockBatchService) RemoveImage(ctx context.Context, batchID uuid.UUID, key string) error {
	args := m.Called(ctx, batchID, key)
	return args.Error(0)
}

func (m *MockBatchService) Label(ctx context.Context, batchID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
