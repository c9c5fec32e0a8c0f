package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"wooltrace/internal/domain"
	"wooltrace/internal/port"
	"wooltrace/internal/pricing"
)

const qualityLogLimit = 50

// InspectionInput is the DTO for submitting a quality inspection.
type InspectionInput struct {
	BatchID         uuid.UUID       `json:"batch_id" binding:"required"`
	FiberDiameter   *float64        `json:"fiber_diameter"`
	TensileStrength *float64        `json:"tensile_strength"`
	ColorGrade      string          `json:"color_grade"`
	CleanWoolYield  *float64        `json:"clean_wool_yield"`
	Notes           string          `json:"notes"`
	Decision        domain.Decision `json:"decision" binding:"required"`
}

// QualityService defines the inspection workflow contract.
type QualityService interface {
	RecordInspection(ctx context.Context, inspectorID uuid.UUID, input InspectionInput) (*domain.QualityReport, error)
	Approve(ctx context.Context, batchID uuid.UUID) (*domain.Batch, error)
	Reject(ctx context.Context, batchID uuid.UUID) (*domain.Batch, error)
	MyReports(ctx context.Context, farmerID uuid.UUID) ([]domain.FarmerQualityResult, error)
	Analytics(ctx context.Context) (*domain.QualityStats, error)
	Logs(ctx context.Context) ([]domain.QualityReport, error)
}

type qualityService struct {
	batches port.BatchRepository
	reports port.QualityReportRepository
}

// NewQualityService creates a new QualityService implementation.
func NewQualityService(batches port.BatchRepository, reports port.QualityReportRepository) QualityService {
	return &qualityService{batches: batches, reports: reports}
}

func (s *qualityService) RecordInspection(ctx context.Context, inspectorID uuid.UUID, input InspectionInput) (*domain.QualityReport, error) {
	batch, err := s.batches.GetByID(ctx, input.BatchID)
	if err != nil {
		return nil, err
	}

	report := &domain.QualityReport{
		BatchID:         batch.ID,
		InspectorID:     inspectorID,
		FiberDiameter:   input.FiberDiameter,
		TensileStrength: input.TensileStrength,
		ColorGrade:      input.ColorGrade,
		CleanWoolYield:  input.CleanWoolYield,
		Notes:           input.Notes,
		Decision:        input.Decision,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	batch.QualityReportID = &report.ID
	batch.QualityStatus = domain.QualityStatus(input.Decision)

	// Marketplace pricing reads the stored financials, so every transition
	// into Approved recomputes them from the fresh report.
	if input.Decision == domain.DecisionApproved {
		fin, err := pricing.ComputeFinancials(batch.Weight, batch.WoolType, report)
		if err != nil {
			return nil, err
		}
		batch.Financials = fin
	}

	if err := s.batches.Update(ctx, batch); err != nil {
		return nil, err
	}
	return report, nil
}

// Approve overwrites the batch's quality status with Approved. The decision
// is last-write-wins; re-approving is allowed and recomputes financials from
// whatever report is attached (possibly none).
func (s *qualityService) Approve(ctx context.Context, batchID uuid.UUID) (*domain.Batch, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	report, err := s.reports.GetByBatch(ctx, batchID)
	if err != nil && !errors.Is(err, domain.ErrReportNotFound) {
		return nil, err
	}

	fin, err := pricing.ComputeFinancials(batch.Weight, batch.WoolType, report)
	if err != nil {
		return nil, err
	}

	batch.QualityStatus = domain.QualityApproved
	batch.Financials = fin
	if err := s.batches.Update(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Reject overwrites the batch's quality status with Rejected. Existing
// financials are left untouched.
func (s *qualityService) Reject(ctx context.Context, batchID uuid.UUID) (*domain.Batch, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	batch.QualityStatus = domain.QualityRejected
	if err := s.batches.Update(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *qualityService) MyReports(ctx context.Context, farmerID uuid.UUID) ([]domain.FarmerQualityResult, error) {
	return s.reports.ListForFarmer(ctx, farmerID)
}

func (s *qualityService) Analytics(ctx context.Context) (*domain.QualityStats, error) {
	return s.reports.Stats(ctx)
}

func (s *qualityService) Logs(ctx context.Context) ([]domain.QualityReport, error) {
	return s.reports.ListRecent(ctx, qualityLogLimit)
}
