package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/checkout"
	"github.com/beyondslim/checkout-api/internal/order"
	apperrors "github.com/beyondslim/checkout-api/pkg/errors"
)

// HandleGetOrder handles GET /v1/orders/:orderNumber. Serves the
// confirmation display surface, so the response carries the masked contact
// fields alongside the record.
func HandleGetOrder(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Param("orderNumber")

		confirmation, err := d.Repos.Orders.GetByOrderNumber(c.Request.Context(), orderNumber)
		if err != nil {
			if _, ok := err.(*apperrors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			d.Logger.Error("Failed to get order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		display := order.FormatForDisplay(*confirmation, checkout.SymbolForCurrency(confirmation.Currency))
		c.JSON(http.StatusOK, gin.H{
			"order":            newOrderResponse(*confirmation),
			"formatted_amount": display.FormattedAmount,
			"formatted_date":   display.FormattedDate,
			"masked_email":     display.MaskedEmail,
			"masked_phone":     display.MaskedPhone,
		})
	}
}

// HandleListOrders handles GET /v1/admin/orders
func HandleListOrders(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || limit < 1 || limit > 100 {
			limit = 20
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		orders, err := d.Repos.Orders.List(c.Request.Context(), limit, offset)
		if err != nil {
			d.Logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]OrderResponse, len(orders))
		for i, o := range orders {
			responses[i] = newOrderResponse(*o)
		}
		c.JSON(http.StatusOK, gin.H{
			"orders": responses,
			"limit":  limit,
			"offset": offset,
		})
	}
}
