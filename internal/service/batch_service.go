package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"wooltrace/internal/config"
	"wooltrace/internal/domain"
	"wooltrace/internal/port"
	"wooltrace/internal/pricing"
)

// CreateBatchInput is the DTO for batch intake.
type CreateBatchInput struct {
	WoolType domain.WoolType `json:"wool_type" binding:"required"`
	Weight   float64         `json:"weight" binding:"required"`
	Moisture *float64        `json:"moisture"`
	Source   string          `json:"source"`
}

// UpdateStageInput is the DTO for a stage transition.
type UpdateStageInput struct {
	Stage domain.Stage `json:"stage" binding:"required"`
	Note  string       `json:"note"`
}

// AddLogInput is the DTO for appending a processing log entry.
type AddLogInput struct {
	Note string `json:"note" binding:"required"`
}

// UpdateBatchInput is the DTO for correcting batch details after intake.
type UpdateBatchInput struct {
	WoolType *domain.WoolType `json:"wool_type"`
	Weight   *float64         `json:"weight"`
	Moisture *float64         `json:"moisture"`
	Source   *string          `json:"source"`
}

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
}

// BatchService defines the wool batch lifecycle contract.
type BatchService interface {
	Create(ctx context.Context, actorID uuid.UUID, actorRole domain.Role, input CreateBatchInput) (*domain.Batch, error)
	List(ctx context.Context, actorID uuid.UUID, actorRole domain.Role, offset, limit int) ([]domain.Batch, int, error)
	GetByID(ctx context.Context, batchID uuid.UUID) (*domain.Batch, error)
	UpdateStage(ctx context.Context, batchID, operatorID uuid.UUID, input UpdateStageInput) (*domain.Batch, error)
	AddLog(ctx context.Context, batchID, operatorID uuid.UUID, input AddLogInput) (*domain.Batch, error)
	UpdateDetails(ctx context.Context, batchID uuid.UUID, input UpdateBatchInput) (*domain.Batch, error)
	UploadImage(ctx context.Context, batchID uuid.UUID, contentType string, body io.Reader) (string, error)
	RemoveImage(ctx context.Context, batchID uuid.UUID, key string) error
	Label(ctx context.Context, batchID uuid.UUID) ([]byte, error)
}

type batchService struct {
	batches port.BatchRepository
	reports port.QualityReportRepository
	storage port.ObjectStorage
	s3cfg   *config.S3Config
}

// NewBatchService creates a new BatchService implementation.
func NewBatchService(
	batches port.BatchRepository,
	reports port.QualityReportRepository,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
) BatchService {
	return &batchService{batches: batches, reports: reports, storage: storage, s3cfg: s3cfg}
}

func (s *batchService) Create(ctx context.Context, actorID uuid.UUID, actorRole domain.Role, input CreateBatchInput) (*domain.Batch, error) {
	if input.Weight <= 0 {
		return nil, domain.ErrInvalidWeight
	}

	batch := &domain.Batch{
		BatchCode:     newBatchCode(),
		CreatorID:     actorID,
		WoolType:      input.WoolType,
		Weight:        input.Weight,
		Moisture:      input.Moisture,
		Source:        input.Source,
		CurrentStage:  domain.StageReceived,
		QualityStatus: domain.QualityPending,
		ProcessingLogs: domain.ProcessingLogs{{
			Stage:      domain.StageReceived,
			Note:       "Batch initialized",
			OperatorID: actorID,
			Timestamp:  time.Now().UTC(),
		}},
	}
	if actorRole == domain.RoleFarmer {
		batch.FarmerID = &actorID
	}

	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *batchService) List(ctx context.Context, actorID uuid.UUID, actorRole domain.Role, offset, limit int) ([]domain.Batch, int, error) {
	// Farmers see only their own batches; every other role sees all.
	if actorRole == domain.RoleFarmer {
		return s.batches.ListByCreator(ctx, actorID, offset, limit)
	}
	return s.batches.List(ctx, offset, limit)
}

func (s *batchService) GetByID(ctx context.Context, batchID uuid.UUID) (*domain.Batch, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	// The image bucket is private; detail responses carry presigned GET URLs
	// alongside the stored keys.
	batch.ImageURLs, err = SignImageURLs(ctx, s.storage, s.s3cfg, batch.Images)
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// SignImageURLs presigns a GET URL for every stored image key using the
// configured expiry.
func SignImageURLs(ctx context.Context, storage port.ObjectStorage, s3cfg *config.S3Config, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		url, err := storage.GetPresignedURL(ctx, s3cfg.Bucket, key, s3cfg.PresignExpiry)
		if err != nil {
			return nil, fmt.Errorf("signing image url: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *batchService) UpdateStage(ctx context.Context, batchID, operatorID uuid.UUID, input UpdateStageInput) (*domain.Batch, error) {
	if !domain.ValidStages[input.Stage] {
		return nil, domain.ErrInvalidStage
	}

	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	// Any target stage is accepted; adjacency is deliberately not enforced.
	// Every transition leaves a log entry.
	batch.CurrentStage = input.Stage
	batch.ProcessingLogs = append(batch.ProcessingLogs, domain.ProcessingLog{
		Stage:      input.Stage,
		Note:       input.Note,
		OperatorID: operatorID,
		Timestamp:  time.Now().UTC(),
	})

	if err := s.batches.Update(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *batchService) AddLog(ctx context.Context, batchID, operatorID uuid.UUID, input AddLogInput) (*domain.Batch, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	batch.ProcessingLogs = append(batch.ProcessingLogs, domain.ProcessingLog{
		Stage:      batch.CurrentStage,
		Note:       input.Note,
		OperatorID: operatorID,
		Timestamp:  time.Now().UTC(),
	})

	if err := s.batches.Update(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *batchService) UpdateDetails(ctx context.Context, batchID uuid.UUID, input UpdateBatchInput) (*domain.Batch, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	if input.Weight != nil {
		if *input.Weight <= 0 {
			return nil, domain.ErrInvalidWeight
		}
		batch.Weight = *input.Weight
	}
	if input.WoolType != nil {
		batch.WoolType = *input.WoolType
	}
	if input.Moisture != nil {
		batch.Moisture = input.Moisture
	}
	if input.Source != nil {
		batch.Source = *input.Source
	}

	// Financials are a projection of weight, wool type and the quality
	// report; changing the inputs after an inspection invalidates them.
	if (input.Weight != nil || input.WoolType != nil) && batch.QualityReportID != nil {
		report, err := s.reports.GetByBatch(ctx, batch.ID)
		if err != nil && !errors.Is(err, domain.ErrReportNotFound) {
			return nil, err
		}
		fin, err := pricing.ComputeFinancials(batch.Weight, batch.WoolType, report)
		if err != nil {
			return nil, err
		}
		batch.Financials = fin
	}

	if err := s.batches.Update(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *batchService) UploadImage(ctx context.Context, batchID uuid.UUID, contentType string, body io.Reader) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", domain.ErrUploadFailed
	}

	if _, err := s.batches.GetByID(ctx, batchID); err != nil {
		return "", err
	}

	key := path.Join("batches", batchID.String(), uuid.New().String()+"."+ext)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        body,
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("batchService.UploadImage: %w", domain.ErrUploadFailed)
	}

	if err := s.batches.AppendImages(ctx, batchID, []string{key}); err != nil {
		return "", err
	}
	return key, nil
}

func (s *batchService) RemoveImage(ctx context.Context, batchID uuid.UUID, key string) error {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return err
	}
	if !slices.Contains(batch.Images, key) {
		return domain.ErrNotFound
	}

	if err := s.storage.Delete(ctx, s.s3cfg.Bucket, key); err != nil {
		return fmt.Errorf("batchService.RemoveImage: %w", err)
	}
	return s.batches.RemoveImage(ctx, batchID, key)
}

func (s *batchService) Label(ctx context.Context, batchID uuid.UUID) ([]byte, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(batch.BatchCode, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("batchService.Label: %w", err)
	}
	return png, nil
}

func newBatchCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return "BATCH-" + suffix
}
