package repository

import (
	"context"

	"github.com/beyondslim/checkout-api/internal/domain"
)

// OrderRepository persists finalized order confirmations. Records are
// write-once: there is no update operation.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.OrderConfirmation) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.OrderConfirmation, error)
	List(ctx context.Context, limit, offset int) ([]*domain.OrderConfirmation, error)
	// NextDisplaySequence returns the advisory process-wide order counter
	// used only to pad display numbers. Not relied on for uniqueness.
	NextDisplaySequence(ctx context.Context) (int64, error)
}

// APIKeyRepository manages back-office API keys
type APIKeyRepository interface {
	Create(ctx context.Context, key *domain.APIKey) error
	ListActive(ctx context.Context) ([]*domain.APIKey, error)
}

// IdempotencyRepository stores idempotency keys for admin submissions
type IdempotencyRepository interface {
	Create(ctx context.Context, key *domain.IdempotencyKey) error
	Get(ctx context.Context, key string) (*domain.IdempotencyKey, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Orders      OrderRepository
	APIKeys     APIKeyRepository
	Idempotency IdempotencyRepository
}
