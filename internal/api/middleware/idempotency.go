package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/repository"
	apperrors "github.com/beyondslim/checkout-api/pkg/errors"
)

const (
	idempotencyKeyContextKey  = "idempotency_key"
	idempotencyHashContextKey = "idempotency_hash"
	existingOrderContextKey   = "idempotency_existing_order"
)

// IdempotencyMiddleware makes order-producing endpoints safe to retry. A
// caller sends an Idempotency-Key header; a replay with the same key and
// body is answered from the stored order instead of producing a second one.
// A replay with the same key but a different body is rejected.
func IdempotencyMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		hash := sha256.Sum256(body)
		requestHash := hex.EncodeToString(hash[:])

		existing, err := repos.Idempotency.Get(c.Request.Context(), key)
		if err != nil {
			if _, ok := err.(*apperrors.ErrNotFound); !ok {
				logger.Error("Failed to look up idempotency key", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			// First time we see this key.
			c.Set(idempotencyKeyContextKey, key)
			c.Set(idempotencyHashContextKey, requestHash)
			c.Next()
			return
		}

		if existing.RequestHash != requestHash {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "idempotency key reused with a different request body",
			})
			return
		}

		c.Set(idempotencyKeyContextKey, key)
		c.Set(idempotencyHashContextKey, requestHash)
		c.Set(existingOrderContextKey, existing.OrderNumber)
		c.Next()
	}
}

// GetIdempotencyInfo returns the idempotency key, the request hash, the
// order number of a previous identical request, and whether such a request
// exists.
func GetIdempotencyInfo(c *gin.Context) (key, requestHash, existingOrderNumber string, isExisting bool) {
	key = c.GetString(idempotencyKeyContextKey)
	requestHash = c.GetString(idempotencyHashContextKey)
	existingOrderNumber = c.GetString(existingOrderContextKey)
	return key, requestHash, existingOrderNumber, existingOrderNumber != ""
}
