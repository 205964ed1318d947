package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/domain"
)

type apiKeyRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAPIKeyRepository creates a new API key repository
func NewAPIKeyRepository(db *sql.DB, logger *zap.Logger) *apiKeyRepository {
	return &apiKeyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *apiKeyRepository) Create(ctx context.Context, key *domain.APIKey) error {
	if key.ID == uuid.Nil {
		key.ID = uuid.New()
	}
	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO api_keys (id, name, key_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		key.ID, key.Name, key.KeyHash, key.IsActive, key.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert API key", zap.String("name", key.Name), zap.Error(err))
		return err
	}
	return nil
}

func (r *apiKeyRepository) ListActive(ctx context.Context) ([]*domain.APIKey, error) {
	// bcrypt hashes are salted, so lookup by hash is impossible; callers
	// verify the presented key against each active hash.
	query := `
		SELECT id, name, key_hash, is_active, created_at
		FROM api_keys
		WHERE is_active = true
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query API keys", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var keys []*domain.APIKey
	for rows.Next() {
		var key domain.APIKey
		if err := rows.Scan(&key.ID, &key.Name, &key.KeyHash, &key.IsActive, &key.CreatedAt); err != nil {
			return nil, err
		}
		keys = append(keys, &key)
	}
	return keys, rows.Err()
}
