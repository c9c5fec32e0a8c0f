package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wooltrace/internal/domain"
	"wooltrace/internal/service"
	"wooltrace/mocks"
)

func newQualityService() (service.QualityService, *mocks.MockBatchRepo, *mocks.MockQualityReportRepo) {
	batchRepo := new(mocks.MockBatchRepo)
	reportRepo := new(mocks.MockQualityReportRepo)
	svc := service.NewQualityService(batchRepo, reportRepo)
	return svc, batchRepo, reportRepo
}

func TestQualityService_RecordInspection_ApprovedComputesFinancials(t *testing.T) {
	svc, batchRepo, reportRepo := newQualityService()

	batchID := uuid.New()
	inspectorID := uuid.New()
	batch := &domain.Batch{
		ID:            batchID,
		WoolType:      domain.WoolMerino,
		Weight:        500,
		QualityStatus: domain.QualityPending,
	}

	batchRepo.On("GetByID", mock.Anything, batchID).Return(batch, nil)
	reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.QualityReport")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.QualityReport).ID = uuid.New()
		}).
		Return(nil)

	var updatedBatch *domain.Batch
	batchRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Batch")).
		Run(func(args mock.Arguments) {
			updatedBatch = args.Get(1).(*domain.Batch)
		}).
		Return(nil)

	yield, diameter := 75.0, 18.0
	report, err := svc.RecordInspection(context.Background(), inspectorID, service.InspectionInput{
		BatchID:        batchID,
		CleanWoolYield: &yield,
		FiberDiameter:  &diameter,
		ColorGrade:     "A",
		Decision:       domain.DecisionApproved,
	})

	require.NoError(t, err)
	assert.Equal(t, inspectorID, report.InspectorID)

	require.NotNil(t, updatedBatch)
	assert.Equal(t, domain.QualityApproved, updatedBatch.QualityStatus)
	require.NotNil(t, updatedBatch.QualityReportID)
	assert.Equal(t, report.ID, *updatedBatch.QualityReportID)
	require.NotNil(t, updatedBatch.Financials)
	assert.Equal(t, 20.0, updatedBatch.Financials.BasePricePerKg)
	assert.Equal(t, 6.0, updatedBatch.Financials.QualityBonus)
	assert.Equal(t, 13000.0, updatedBatch.Financials.GrossRevenue)
	assert.Equal(t, 11300.0, updatedBatch.Financials.NetFarmerEarnings)
}

func TestQualityService_RecordInspection_RejectedLeavesFinancialsEmpty(t *testing.T) {
	svc, batchRepo, reportRepo := newQualityService()

	batchID := uuid.New()
	batch := &domain.Batch{ID: batchID, WoolType: domain.WoolCrossbred, Weight: 100}

	batchRepo.On("GetByID", mock.Anything, batchID).Return(batch, nil)
	reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.QualityReport")).Return(nil)

	var updatedBatch *domain.Batch
	batchRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Batch")).
		Run(func(args mock.Arguments) {
			updatedBatch = args.Get(1).(*domain.Batch)
		}).
		Return(nil)

	_, err := svc.RecordInspection(context.Background(), uuid.New(), service.InspectionInput{
		BatchID:  batchID,
		Decision: domain.DecisionRejected,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.QualityRejected, updatedBatch.QualityStatus)
	assert.Nil(t, updatedBatch.Financials)
}

func TestQualityService_RecordInspection_SecondReportConflicts(t *testing.T) {
	svc, batchRepo, reportRepo := newQualityService()

	batchID := uuid.New()
	batchRepo.On("GetByID", mock.Anything, batchID).Return(&domain.Batch{ID: batchID, Weight: 100}, nil)
	reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.QualityReport")).
		Return(domain.ErrReportExists)

	_, err := svc.RecordInspection(context.Background(), uuid.New(), service.InspectionInput{
		BatchID:  batchID,
		Decision: domain.DecisionApproved,
	})

	assert.ErrorIs(t, err, domain.ErrReportExists)
	batchRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestQualityService_Approve_WithoutReportUsesBasePricing(t *testing.T) {
	svc, batchRepo, reportRepo := newQualityService()

	batchID := uuid.New()
	batch := &domain.Batch{
		ID:            batchID,
		WoolType:      domain.WoolLincoln,
		Weight:        200,
		QualityStatus: domain.QualityPending,
	}
	batchRepo.On("GetByID", mock.Anything, batchID).Return(batch, nil)
	reportRepo.On("GetByBatch", mock.Anything, batchID).Return(nil, domain.ErrReportNotFound)
	batchRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Batch")).Return(nil)

	approved, err := svc.Approve(context.Background(), batchID)

	require.NoError(t, err)
	assert.Equal(t, domain.QualityApproved, approved.QualityStatus)
	require.NotNil(t, approved.Financials)
	assert.Equal(t, 10.0, approved.Financials.BasePricePerKg)
	assert.Equal(t, 0.0, approved.Financials.QualityBonus)
	// 200kg at base 10: gross 2000, fees 50 + 400 + 100.
	assert.Equal(t, 2000.0, approved.Financials.GrossRevenue)
	assert.Equal(t, 1450.0, approved.Financials.NetFarmerEarnings)
}

func TestQualityService_Approve_IsLastWriteWins(t *testing.T) {
	svc, batchRepo, reportRepo := newQualityService()

	batchID := uuid.New()
	batch := &domain.Batch{
		ID:            batchID,
		WoolType:      domain.WoolMerino,
		Weight:        100,
		QualityStatus: domain.QualityRejected,
	}
	batchRepo.On("GetByID", mock.Anything, batchID).Return(batch, nil)
	reportRepo.On("GetByBatch", mock.Anything, batchID).Return(nil, domain.ErrReportNotFound)
	batchRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Batch")).Return(nil)

	approved, err := svc.Approve(context.Background(), batchID)

	require.NoError(t, err)
	assert.Equal(t, domain.QualityApproved, approved.QualityStatus)
}

func TestQualityService_Reject_KeepsExistingFinancials(t *testing.T) {
	svc, batchRepo, _ := newQualityService()

	batchID := uuid.New()
	fin := &domain.Financials{GrossRevenue: 1000}
	batch := &domain.Batch{
		ID:            batchID,
		QualityStatus: domain.QualityApproved,
		Financials:    fin,
	}
	batchRepo.On("GetByID", mock.Anything, batchID).Return(batch, nil)
	batchRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Batch")).Return(nil)

	rejected, err := svc.Reject(context.Background(), batchID)

	require.NoError(t, err)
	assert.Equal(t, domain.QualityRejected, rejected.QualityStatus)
	assert.Equal(t, fin, rejected.Financials)
}

func TestQualityService_Analytics_PassesThrough(t *testing.T) {
	svc, _, reportRepo := newQualityService()

	stats := &domain.QualityStats{TotalInspections: 10, ApprovedCount: 8, RejectedCount: 2, PassRate: 80}
	reportRepo.On("Stats", mock.Anything).Return(stats, nil)

	got, err := svc.Analytics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, stats, got)
}
