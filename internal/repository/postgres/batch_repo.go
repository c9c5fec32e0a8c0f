package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wooltrace/internal/domain"
	"wooltrace/internal/port"
)

type batchRepo struct {
	db *sqlx.DB
}

// NewBatchRepo creates a new PostgreSQL-backed BatchRepository.
func NewBatchRepo(db *sqlx.DB) port.BatchRepository {
	return &batchRepo{db: db}
}

func (r *batchRepo) Create(ctx context.Context, batch *domain.Batch) error {
	batch.ID = uuid.New()
	now := time.Now().UTC()
	batch.CreatedAt = now
	batch.UpdatedAt = now

	query := `INSERT INTO wool_batches
		(id, batch_code, creator_id, farmer_id, wool_type, weight, moisture, source, images,
		 current_stage, quality_status, quality_report_id, financials, processing_logs, is_sold,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.db.ExecContext(ctx, query,
		batch.ID, batch.BatchCode, batch.CreatorID, batch.FarmerID,
		batch.WoolType, batch.Weight, batch.Moisture, batch.Source, batch.Images,
		batch.CurrentStage, batch.QualityStatus, batch.QualityReportID,
		batch.Financials, batch.ProcessingLogs, batch.IsSold,
		batch.CreatedAt, batch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("batchRepo.Create: %w", err)
	}
	return nil
}

func (r *batchRepo) GetByID(ctx context.Context, batchID uuid.UUID) (*domain.Batch, error) {
	var batch domain.Batch
	err := r.db.GetContext(ctx, &batch, "SELECT * FROM wool_batches WHERE id = $1", batchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBatchNotFound
		}
		return nil, fmt.Errorf("batchRepo.GetByID: %w", err)
	}
	return &batch, nil
}

func (r *batchRepo) List(ctx context.Context, offset, limit int) ([]domain.Batch, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM wool_batches"); err != nil {
		return nil, 0, fmt.Errorf("batchRepo.List count: %w", err)
	}

	var batches []domain.Batch
	err := r.db.SelectContext(ctx, &batches,
		"SELECT * FROM wool_batches ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("batchRepo.List: %w", err)
	}
	return batches, total, nil
}

func (r *batchRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID, offset, limit int) ([]domain.Batch, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM wool_batches WHERE creator_id = $1 OR farmer_id = $1", creatorID)
	if err != nil {
		return nil, 0, fmt.Errorf("batchRepo.ListByCreator count: %w", err)
	}

	var batches []domain.Batch
	err = r.db.SelectContext(ctx, &batches,
		`SELECT * FROM wool_batches WHERE creator_id = $1 OR farmer_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		creatorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("batchRepo.ListByCreator: %w", err)
	}
	return batches, total, nil
}

func (r *batchRepo) ListSellable(ctx context.Context, offset, limit int) ([]domain.Batch, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM wool_batches
		 WHERE current_stage = $1 AND quality_status = $2 AND is_sold = false`,
		domain.StageFinished, domain.QualityApproved)
	if err != nil {
		return nil, 0, fmt.Errorf("batchRepo.ListSellable count: %w", err)
	}

	var batches []domain.Batch
	err = r.db.SelectContext(ctx, &batches,
		`SELECT * FROM wool_batches
		 WHERE current_stage = $1 AND quality_status = $2 AND is_sold = false
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		domain.StageFinished, domain.QualityApproved, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("batchRepo.ListSellable: %w", err)
	}
	return batches, total, nil
}

func (r *batchRepo) Update(ctx context.Context, batch *domain.Batch) error {
	batch.UpdatedAt = time.Now().UTC()
	query := `UPDATE wool_batches SET
		wool_type = $1, weight = $2, moisture = $3, source = $4,
		current_stage = $5, quality_status = $6, quality_report_id = $7,
		financials = $8, processing_logs = $9, updated_at = $10
		WHERE id = $11`

	result, err := r.db.ExecContext(ctx, query,
		batch.WoolType, batch.Weight, batch.Moisture, batch.Source,
		batch.CurrentStage, batch.QualityStatus, batch.QualityReportID,
		batch.Financials, batch.ProcessingLogs, batch.UpdatedAt, batch.ID)
	if err != nil {
		return fmt.Errorf("batchRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBatchNotFound
	}
	return nil
}

func (r *batchRepo) RemoveImage(ctx context.Context, batchID uuid.UUID, key string) error {
	// jsonb minus text removes the matching string element from the array.
	result, err := r.db.ExecContext(ctx,
		"UPDATE wool_batches SET images = images - $1, updated_at = $2 WHERE id = $3",
		key, time.Now().UTC(), batchID)
	if err != nil {
		return fmt.Errorf("batchRepo.RemoveImage: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBatchNotFound
	}
	return nil
}

func (r *batchRepo) AppendImages(ctx context.Context, batchID uuid.UUID, images []string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE wool_batches SET images = images || $1::jsonb, updated_at = $2 WHERE id = $3",
		domain.StringList(images), time.Now().UTC(), batchID)
	if err != nil {
		return fmt.Errorf("batchRepo.AppendImages: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBatchNotFound
	}
	return nil
}
