package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"wooltrace/internal/config"
	"wooltrace/internal/domain"
	"wooltrace/internal/port"
	"wooltrace/internal/pricing"
)

// PlaceOrderInput is the DTO for order placement.
type PlaceOrderInput struct {
	BatchIDs []uuid.UUID `json:"batch_ids" binding:"required"`
}

// PayOrderInput is the DTO for order payment.
type PayOrderInput struct {
	PaymentMethod string `json:"payment_method"`
}

// ShopService defines the marketplace contract.
type ShopService interface {
	Products(ctx context.Context, offset, limit int) ([]domain.Batch, int, error)
	Product(ctx context.Context, batchID uuid.UUID) (*domain.Batch, error)
	PlaceOrder(ctx context.Context, buyer *domain.User, input PlaceOrderInput) (*domain.Order, error)
	MyOrders(ctx context.Context, buyerID uuid.UUID) ([]domain.Order, error)
	DeleteOrder(ctx context.Context, orderID, buyerID uuid.UUID) error
	PayOrder(ctx context.Context, orderID, buyerID uuid.UUID, input PayOrderInput) (*domain.Order, error)
}

type shopService struct {
	batches port.BatchRepository
	orders  port.OrderRepository
	email   port.EmailSender
	storage port.ObjectStorage
	s3cfg   *config.S3Config
}

// NewShopService creates a new ShopService implementation.
func NewShopService(
	batches port.BatchRepository,
	orders port.OrderRepository,
	email port.EmailSender,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
) ShopService {
	return &shopService{batches: batches, orders: orders, email: email, storage: storage, s3cfg: s3cfg}
}

func (s *shopService) Products(ctx context.Context, offset, limit int) ([]domain.Batch, int, error) {
	return s.batches.ListSellable(ctx, offset, limit)
}

func (s *shopService) Product(ctx context.Context, batchID uuid.UUID) (*domain.Batch, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	// Buyers browse photos from the private bucket through presigned URLs.
	batch.ImageURLs, err = SignImageURLs(ctx, s.storage, s.s3cfg, batch.Images)
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *shopService) PlaceOrder(ctx context.Context, buyer *domain.User, input PlaceOrderInput) (*domain.Order, error) {
	if len(input.BatchIDs) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	var total float64
	for _, batchID := range input.BatchIDs {
		batch, err := s.batches.GetByID(ctx, batchID)
		if err != nil {
			return nil, err
		}
		if batch.IsSold {
			return nil, domain.ErrBatchAlreadySold
		}
		if batch.CurrentStage != domain.StageFinished || batch.QualityStatus != domain.QualityApproved {
			return nil, domain.ErrBatchNotSellable
		}
		total += listingPrice(batch)
	}

	order := &domain.Order{
		BuyerID:       buyer.ID,
		TotalAmount:   total,
		Status:        domain.OrderPending,
		PaymentStatus: domain.PaymentPending,
	}

	// The repository marks every batch sold with a conditional update inside
	// one transaction; a concurrent sale fails the whole order.
	if err := s.orders.CreateWithItems(ctx, order, input.BatchIDs); err != nil {
		return nil, err
	}

	if err := s.email.SendOrderConfirmation(ctx, buyer.Email, buyer.Name, order); err != nil {
		// Confirmation email is best-effort; the order stands.
		log.Printf("order %s: confirmation email failed: %v", order.ID, err)
	}

	return order, nil
}

func (s *shopService) MyOrders(ctx context.Context, buyerID uuid.UUID) ([]domain.Order, error) {
	return s.orders.ListByBuyer(ctx, buyerID)
}

func (s *shopService) DeleteOrder(ctx context.Context, orderID, buyerID uuid.UUID) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.BuyerID != buyerID {
		return domain.ErrForbidden
	}
	return s.orders.DeletePending(ctx, orderID)
}

func (s *shopService) PayOrder(ctx context.Context, orderID, buyerID uuid.UUID, input PayOrderInput) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, domain.ErrForbidden
	}
	if order.Status != domain.OrderPending {
		return nil, domain.ErrOrderNotPending
	}

	method := input.PaymentMethod
	if method == "" {
		method = "Online"
	}

	order.PaymentStatus = domain.PaymentPaid
	order.PaymentMethod = method
	order.TransactionID = fmt.Sprintf("TXN-%d", time.Now().UnixMilli())
	order.Status = domain.OrderCompleted

	if err := s.orders.UpdatePayment(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// listingPrice is what the buyer pays for a batch: its computed gross revenue
// when financials exist, otherwise the default base price by weight.
func listingPrice(batch *domain.Batch) float64 {
	if batch.Financials != nil && batch.Financials.GrossRevenue > 0 {
		return batch.Financials.GrossRevenue
	}
	return batch.Weight * pricing.DefaultBasePricePerKg
}
