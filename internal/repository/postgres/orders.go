package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/domain"
	"github.com/beyondslim/checkout-api/pkg/errors"
)

const uniqueViolation = "23505"

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order confirmation repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.OrderConfirmation) error {
	query := `
		INSERT INTO order_confirmations (
			id, order_number, order_date, product_name, quantity,
			total_amount, currency, discount_applied, payment_method,
			transaction_id, customer_name, customer_email, customer_phone,
			shipping_address, estimated_delivery, order_source, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.OrderNumber,
		order.OrderDate,
		order.ProductName,
		order.Quantity,
		order.TotalAmount,
		order.Currency,
		order.DiscountApplied,
		order.PaymentMethod,
		order.TransactionID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.ShippingAddress,
		order.EstimatedDelivery,
		order.OrderSource,
		order.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return &errors.ErrDuplicateOrderNumber{OrderNumber: order.OrderNumber}
		}
		r.logger.Error("Failed to insert order confirmation",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
		return err
	}
	return nil
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.OrderConfirmation, error) {
	query := `
		SELECT id, order_number, order_date, product_name, quantity,
			total_amount, currency, discount_applied, payment_method,
			transaction_id, customer_name, customer_email, customer_phone,
			shipping_address, estimated_delivery, order_source, created_at
		FROM order_confirmations
		WHERE order_number = $1
	`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, orderNumber))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: orderNumber}
	}
	if err != nil {
		r.logger.Error("Failed to query order confirmation",
			zap.String("order_number", orderNumber),
			zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]*domain.OrderConfirmation, error) {
	query := `
		SELECT id, order_number, order_date, product_name, quantity,
			total_amount, currency, discount_applied, payment_method,
			transaction_id, customer_name, customer_email, customer_phone,
			shipping_address, estimated_delivery, order_source, created_at
		FROM order_confirmations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list order confirmations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.OrderConfirmation
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepository) NextDisplaySequence(ctx context.Context) (int64, error) {
	var seq int64
	err := r.db.QueryRowContext(ctx, `SELECT nextval('order_display_seq')`).Scan(&seq)
	if err != nil {
		r.logger.Error("Failed to advance display sequence", zap.Error(err))
		return 0, err
	}
	return seq, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.OrderConfirmation, error) {
	var order domain.OrderConfirmation
	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.OrderDate,
		&order.ProductName,
		&order.Quantity,
		&order.TotalAmount,
		&order.Currency,
		&order.DiscountApplied,
		&order.PaymentMethod,
		&order.TransactionID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.ShippingAddress,
		&order.EstimatedDelivery,
		&order.OrderSource,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
