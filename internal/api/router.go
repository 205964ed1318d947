package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/api/handlers"
	"github.com/beyondslim/checkout-api/internal/api/middleware"
)

// NewRouter creates and configures the Gin router
func NewRouter(d handlers.Deps) *gin.Engine {
	if d.Cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(d.Logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Checkout session routes (public-facing storefront surface)
		sessions := v1.Group("/checkout/sessions")
		{
			sessions.POST("", handlers.HandleOpenSession(d))
			sessions.PATCH("/:id/fields", handlers.HandleUpdateFields(d))
			sessions.GET("/:id/quote", handlers.HandleQuote(d))
			sessions.POST("/:id/submit", handlers.HandleSubmit(d))
			sessions.POST("/:id/dispatch",
				middleware.IdempotencyMiddleware(d.Repos, d.Logger),
				handlers.HandleDispatch(d))
			sessions.POST("/:id/cancel", handlers.HandleCancel(d))
		}

		// Gateway callback verification
		v1.POST("/payments/verify",
			middleware.IdempotencyMiddleware(d.Repos, d.Logger),
			handlers.HandleVerifyPayment(d))

		// Confirmation display surface
		v1.GET("/orders/:orderNumber", handlers.HandleGetOrder(d))

		// Admin routes (back-office, API-key authenticated)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(d.Repos, d.Logger))
		{
			admin.GET("/orders", handlers.HandleListOrders(d))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
