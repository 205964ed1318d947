package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/beyondslim/checkout-api/internal/domain"
	"github.com/beyondslim/checkout-api/internal/repository"
)

const apiKeyContextKey = "api_key"

// AuthMiddleware authenticates back-office callers via a bearer API key
// checked against the active bcrypt hashes.
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		presented := strings.TrimPrefix(header, "Bearer ")

		keys, err := repos.APIKeys.ListActive(c.Request.Context())
		if err != nil {
			logger.Error("Failed to load API keys", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		for _, key := range keys {
			if bcrypt.CompareHashAndPassword([]byte(key.KeyHash), []byte(presented)) == nil {
				c.Set(apiKeyContextKey, key)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

// GetAPIKeyFromContext returns the authenticated API key, if any.
func GetAPIKeyFromContext(c *gin.Context) (*domain.APIKey, bool) {
	value, ok := c.Get(apiKeyContextKey)
	if !ok {
		return nil, false
	}
	key, ok := value.(*domain.APIKey)
	return key, ok
}
