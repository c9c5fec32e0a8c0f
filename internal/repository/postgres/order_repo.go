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

type orderRepo struct {
	db *sqlx.DB
}

// NewOrderRepo creates a new PostgreSQL-backed OrderRepository.
func NewOrderRepo(db *sqlx.DB) port.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateWithItems(ctx context.Context, order *domain.Order, items []uuid.UUID) error {
	order.ID = uuid.New()
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("orderRepo.CreateWithItems begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, buyer_id, total_amount, status, payment_status,
		 transaction_id, payment_method, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.ID, order.BuyerID, order.TotalAmount, order.Status, order.PaymentStatus,
		order.TransactionID, order.PaymentMethod, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("orderRepo.CreateWithItems insert order: %w", err)
	}

	for _, batchID := range items {
		// Conditional update is the sold guard: a concurrent buyer who got
		// here first leaves zero rows and fails this whole transaction.
		result, err := tx.ExecContext(ctx,
			"UPDATE wool_batches SET is_sold = true, updated_at = $1 WHERE id = $2 AND is_sold = false",
			now, batchID)
		if err != nil {
			return fmt.Errorf("orderRepo.CreateWithItems mark sold: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return domain.ErrBatchAlreadySold
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, batch_id) VALUES ($1, $2)",
			order.ID, batchID)
		if err != nil {
			return fmt.Errorf("orderRepo.CreateWithItems insert item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("orderRepo.CreateWithItems commit: %w", err)
	}
	order.Items = items
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("orderRepo.GetByID: %w", err)
	}
	if err := r.loadItems(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE buyer_id = $1 ORDER BY created_at DESC", buyerID)
	if err != nil {
		return nil, fmt.Errorf("orderRepo.ListByBuyer: %w", err)
	}
	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepo) DeletePending(ctx context.Context, orderID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("orderRepo.DeletePending begin: %w", err)
	}
	defer tx.Rollback()

	var status domain.OrderStatus
	err = tx.GetContext(ctx, &status, "SELECT status FROM orders WHERE id = $1 FOR UPDATE", orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrOrderNotFound
		}
		return fmt.Errorf("orderRepo.DeletePending lock: %w", err)
	}
	if status != domain.OrderPending {
		return domain.ErrOrderNotPending
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE wool_batches SET is_sold = false, updated_at = $1
		 WHERE id IN (SELECT batch_id FROM order_items WHERE order_id = $2)`,
		time.Now().UTC(), orderID)
	if err != nil {
		return fmt.Errorf("orderRepo.DeletePending revert sold: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = $1", orderID); err != nil {
		return fmt.Errorf("orderRepo.DeletePending delete items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", orderID); err != nil {
		return fmt.Errorf("orderRepo.DeletePending delete order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("orderRepo.DeletePending commit: %w", err)
	}
	return nil
}

func (r *orderRepo) UpdatePayment(ctx context.Context, order *domain.Order) error {
	order.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, payment_status = $2, transaction_id = $3,
		 payment_method = $4, updated_at = $5 WHERE id = $6`,
		order.Status, order.PaymentStatus, order.TransactionID,
		order.PaymentMethod, order.UpdatedAt, order.ID)
	if err != nil {
		return fmt.Errorf("orderRepo.UpdatePayment: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepo) loadItems(ctx context.Context, order *domain.Order) error {
	var items []uuid.UUID
	err := r.db.SelectContext(ctx, &items,
		"SELECT batch_id FROM order_items WHERE order_id = $1", order.ID)
	if err != nil {
		return fmt.Errorf("orderRepo.loadItems: %w", err)
	}
	order.Items = items
	return nil
}
