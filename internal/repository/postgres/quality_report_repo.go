package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wooltrace/internal/domain"
	"wooltrace/internal/port"
)

type qualityReportRepo struct {
	db *sqlx.DB
}

// NewQualityReportRepo creates a new PostgreSQL-backed QualityReportRepository.
func NewQualityReportRepo(db *sqlx.DB) port.QualityReportRepository {
	return &qualityReportRepo{db: db}
}

func (r *qualityReportRepo) Create(ctx context.Context, report *domain.QualityReport) error {
	report.ID = uuid.New()
	now := time.Now().UTC()
	report.CreatedAt = now
	if report.InspectedAt.IsZero() {
		report.InspectedAt = now
	}

	query := `INSERT INTO quality_reports
		(id, batch_id, inspector_id, fiber_diameter, tensile_strength, color_grade,
		 clean_wool_yield, notes, decision, inspected_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.BatchID, report.InspectorID,
		report.FiberDiameter, report.TensileStrength, report.ColorGrade,
		report.CleanWoolYield, report.Notes, report.Decision,
		report.InspectedAt, report.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrReportExists
		}
		return fmt.Errorf("qualityReportRepo.Create: %w", err)
	}
	return nil
}

func (r *qualityReportRepo) GetByBatch(ctx context.Context, batchID uuid.UUID) (*domain.QualityReport, error) {
	var report domain.QualityReport
	err := r.db.GetContext(ctx, &report,
		"SELECT * FROM quality_reports WHERE batch_id = $1", batchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("qualityReportRepo.GetByBatch: %w", err)
	}
	return &report, nil
}

func (r *qualityReportRepo) ListRecent(ctx context.Context, limit int) ([]domain.QualityReport, error) {
	var reports []domain.QualityReport
	err := r.db.SelectContext(ctx, &reports,
		"SELECT * FROM quality_reports ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("qualityReportRepo.ListRecent: %w", err)
	}
	return reports, nil
}

func (r *qualityReportRepo) ListForFarmer(ctx context.Context, farmerID uuid.UUID) ([]domain.FarmerQualityResult, error) {
	var results []domain.FarmerQualityResult
	err := r.db.SelectContext(ctx, &results,
		`SELECT qr.id AS report_id, b.batch_code, b.wool_type,
		        qr.decision AS grade, qr.notes, qr.inspected_at AS date
		 FROM quality_reports qr
		 JOIN wool_batches b ON b.id = qr.batch_id
		 WHERE b.farmer_id = $1 OR b.creator_id = $1
		 ORDER BY qr.inspected_at DESC`,
		farmerID)
	if err != nil {
		return nil, fmt.Errorf("qualityReportRepo.ListForFarmer: %w", err)
	}
	return results, nil
}

func (r *qualityReportRepo) Stats(ctx context.Context) (*domain.QualityStats, error) {
	var stats domain.QualityStats
	err := r.db.GetContext(ctx, &stats,
		`SELECT COUNT(*) AS total_inspections,
		        COUNT(*) FILTER (WHERE decision = 'Approved') AS approved_count,
		        COUNT(*) FILTER (WHERE decision = 'Rejected') AS rejected_count,
		        COALESCE(AVG(fiber_diameter), 0) AS avg_fiber_diameter
		 FROM quality_reports`)
	if err != nil {
		return nil, fmt.Errorf("qualityReportRepo.Stats: %w", err)
	}
	if stats.TotalInspections > 0 {
		stats.PassRate = float64(stats.ApprovedCount) / float64(stats.TotalInspections) * 100
	}
	return &stats, nil
}
