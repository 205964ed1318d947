package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/payment"
	apperrors "github.com/beyondslim/checkout-api/pkg/errors"
)

// VerifyPaymentRequest is the gateway callback relayed by the checkout
// page. Field names follow the gateway's callback payload.
type VerifyPaymentRequest struct {
	SessionID        string `json:"session_id" binding:"required"`
	GatewayOrderID   string `json:"razorpay_order_id" binding:"required"`
	GatewayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	GatewaySignature string `json:"razorpay_signature" binding:"required"`
}

// HandleVerifyPayment handles POST /v1/payments/verify. The signature is
// verified before anything is trusted; a verified payment finalizes the
// order. The three failure modes get deliberately distinct responses:
// verification failure tells the user to contact support, gateway
// unavailability invites a retry, and neither is collapsed into a generic
// error.
func HandleVerifyPayment(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if existing, done := replayIdempotentOrder(c, d); done {
			c.JSON(http.StatusOK, existing)
			return
		}

		var req VerifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		sess, ok := lookupSessionByID(c, d, req.SessionID)
		if !ok {
			return
		}

		sess.Lock()
		defer sess.Unlock()

		if sess.Draft == nil || sess.Pricing == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "checkout form has not been submitted"})
			return
		}

		outcome, err := sess.Dispatcher.CompleteOnline(c.Request.Context(), payment.Callback{
			GatewayOrderID:   req.GatewayOrderID,
			GatewayPaymentID: req.GatewayPaymentID,
			Signature:        req.GatewaySignature,
		})
		if err != nil {
			switch err.(type) {
			case *apperrors.ErrVerificationFailed:
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "Payment successful but verification failed. Please contact support.",
					"support_required": true,
				})
			case *apperrors.ErrGatewayUnavailable:
				c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to verify payment. Please try again."})
			case *apperrors.ErrInvalidStateTransition:
				c.JSON(http.StatusConflict, gin.H{"error": "no payment awaiting verification for this session"})
			default:
				d.Logger.Error("Payment verification failed", zap.Error(err))
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid verification request"})
			}
			return
		}

		confirmation, err := d.Finalizer.Finalize(c.Request.Context(), *sess.Draft, *sess.Pricing, outcome)
		if err != nil {
			d.Logger.Error("Failed to finalize verified order",
				zap.String("transaction_id", outcome.TransactionID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to finalize order"})
			return
		}

		storeIdempotencyKey(c, d, confirmation.OrderNumber)
		d.Sessions.Remove(sess.ID)
		c.JSON(http.StatusCreated, newOrderResponse(confirmation))
	}
}
