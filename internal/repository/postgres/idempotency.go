package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/domain"
	"github.com/beyondslim/checkout-api/pkg/errors"
)

type idempotencyRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewIdempotencyRepository creates a new idempotency key repository
func NewIdempotencyRepository(db *sql.DB, logger *zap.Logger) *idempotencyRepository {
	return &idempotencyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *idempotencyRepository) Create(ctx context.Context, key *domain.IdempotencyKey) error {
	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO idempotency_keys (key, order_number, request_hash, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		key.Key, key.OrderNumber, key.RequestHash, key.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert idempotency key", zap.Error(err))
		return err
	}
	return nil
}

func (r *idempotencyRepository) Get(ctx context.Context, key string) (*domain.IdempotencyKey, error) {
	query := `
		SELECT key, order_number, request_hash, created_at
		FROM idempotency_keys
		WHERE key = $1
	`

	var record domain.IdempotencyKey
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&record.Key, &record.OrderNumber, &record.RequestHash, &record.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "idempotency key", ID: key}
	}
	if err != nil {
		r.logger.Error("Failed to query idempotency key", zap.Error(err))
		return nil, err
	}
	return &record, nil
}
