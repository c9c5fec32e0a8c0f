package port

import (
	"context"

	"github.com/google/uuid"

	"wooltrace/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	// UpdateRole writes the new role together with its materialized
	// permission snapshot; the role→permission table itself is never mutated.
	UpdateRole(ctx context.Context, userID uuid.UUID, role domain.Role, permissions domain.CapabilityList) (*domain.User, error)
}

// BatchRepository defines the contract for wool batch persistence.
type BatchRepository interface {
	Create(ctx context.Context, batch *domain.Batch) error
	GetByID(ctx context.Context, batchID uuid.UUID) (*domain.Batch, error)
	List(ctx context.Context, offset, limit int) ([]domain.Batch, int, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, offset, limit int) ([]domain.Batch, int, error)
	// ListSellable returns Finished, Approved, unsold batches for the marketplace.
	ListSellable(ctx context.Context, offset, limit int) ([]domain.Batch, int, error)
	Update(ctx context.Context, batch *domain.Batch) error
	AppendImages(ctx context.Context, batchID uuid.UUID, images []string) error
	RemoveImage(ctx context.Context, batchID uuid.UUID, key string) error
}

// QualityReportRepository defines the contract for quality report persistence.
// Reports are immutable once created.
type QualityReportRepository interface {
	Create(ctx context.Context, report *domain.QualityReport) error
	GetByBatch(ctx context.Context, batchID uuid.UUID) (*domain.QualityReport, error)
	ListRecent(ctx context.Context, limit int) ([]domain.QualityReport, error)
	ListForFarmer(ctx context.Context, farmerID uuid.UUID) ([]domain.FarmerQualityResult, error)
	Stats(ctx context.Context) (*domain.QualityStats, error)
}

// OrderRepository defines the contract for marketplace order persistence.
type OrderRepository interface {
	// CreateWithItems inserts the order and its items and marks every batch
	// sold in one transaction. Marking sold is a conditional update; any batch
	// already sold fails the whole transaction with ErrBatchAlreadySold.
	CreateWithItems(ctx context.Context, order *domain.Order, items []uuid.UUID) error
	GetByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]domain.Order, error)
	// DeletePending removes a Pending order and reverts is_sold on its items.
	// Non-pending orders fail with ErrOrderNotPending.
	DeletePending(ctx context.Context, orderID uuid.UUID) error
	UpdatePayment(ctx context.Context, order *domain.Order) error
}
