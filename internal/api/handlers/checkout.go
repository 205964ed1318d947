package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/api/middleware"
	"github.com/beyondslim/checkout-api/internal/checkout"
	"github.com/beyondslim/checkout-api/internal/domain"
	"github.com/beyondslim/checkout-api/internal/session"
	apperrors "github.com/beyondslim/checkout-api/pkg/errors"
)

// OpenSessionRequest starts a checkout for the catalog product.
type OpenSessionRequest struct {
	Quantity int `json:"quantity"`
}

// OpenSessionResponse returns the new session and its initial quote.
type OpenSessionResponse struct {
	SessionID   string        `json:"session_id"`
	ProductName string        `json:"product_name"`
	UnitPrice   string        `json:"unit_price"`
	Quantity    int           `json:"quantity"`
	Quote       QuoteResponse `json:"quote"`
}

// HandleOpenSession handles POST /v1/checkout/sessions
func HandleOpenSession(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OpenSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		item := domain.LineItem{
			ProductName: d.Cfg.Catalog.ProductName,
			UnitPrice:   decimal.NewFromFloat(d.Cfg.Catalog.UnitPrice),
			Quantity:    req.Quantity,
		}
		variant := checkout.Variant{
			RequirePostalCode: d.Cfg.Pricing.RequirePostalCode,
			RequireState:      d.Cfg.Pricing.RequireState,
		}

		sess := d.Sessions.Open(item, variant, d.Gateway)

		sess.Lock()
		quote := d.Resolver.Resolve(sess.Collector.Item(), sess.Collector.PaymentMethod(), sess.Collector.Field(checkout.FieldCountry))
		resp := OpenSessionResponse{
			SessionID:   sess.ID.String(),
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.String(),
			Quantity:    sess.Collector.Quantity(),
			Quote:       newQuoteResponse(quote),
		}
		sess.Unlock()

		c.JSON(http.StatusCreated, resp)
	}
}

// UpdateFieldsRequest carries field edits, and optionally a new quantity or
// payment method selection.
type UpdateFieldsRequest struct {
	Fields        map[string]string `json:"fields"`
	Quantity      *int              `json:"quantity,omitempty"`
	PaymentMethod *string           `json:"payment_method,omitempty"`
}

// HandleUpdateFields handles PATCH /v1/checkout/sessions/:id/fields
func HandleUpdateFields(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := lookupSession(c, d)
		if !ok {
			return
		}

		var req UpdateFieldsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		sess.Lock()
		defer sess.Unlock()

		for name, value := range req.Fields {
			sess.Collector.UpdateField(name, value)
		}
		if req.Quantity != nil {
			sess.Collector.SetQuantity(*req.Quantity)
		}
		if req.PaymentMethod != nil {
			method := domain.PaymentMethod(*req.PaymentMethod)
			if !method.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method"})
				return
			}
			sess.Collector.ChoosePaymentMethod(method)
		}

		quote := d.Resolver.Resolve(sess.Collector.Item(), sess.Collector.PaymentMethod(), sess.Collector.Field(checkout.FieldCountry))
		c.JSON(http.StatusOK, gin.H{
			"quantity": sess.Collector.Quantity(),
			"quote":    newQuoteResponse(quote),
		})
	}
}

// HandleQuote handles GET /v1/checkout/sessions/:id/quote
func HandleQuote(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := lookupSession(c, d)
		if !ok {
			return
		}

		sess.Lock()
		quote := d.Resolver.Resolve(sess.Collector.Item(), sess.Collector.PaymentMethod(), sess.Collector.Field(checkout.FieldCountry))
		sess.Unlock()

		c.JSON(http.StatusOK, newQuoteResponse(quote))
	}
}

// HandleSubmit handles POST /v1/checkout/sessions/:id/submit
func HandleSubmit(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := lookupSession(c, d)
		if !ok {
			return
		}

		sess.Lock()
		defer sess.Unlock()

		draft, errs := sess.Collector.Submit()
		if len(errs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "validation failed",
				"errors": errs,
			})
			return
		}

		pricing := d.Resolver.Resolve(draft.Item, draft.PaymentMethod, draft.Shipping.Country)
		sess.Draft = &draft
		sess.Pricing = &pricing

		c.JSON(http.StatusOK, gin.H{
			"ready":          true,
			"payment_method": draft.PaymentMethod,
			"quote":          newQuoteResponse(pricing),
		})
	}
}

// DispatchResponse is returned when an online payment session is opened.
type DispatchResponse struct {
	GatewayOrderID string `json:"gateway_order_id"`
	GatewayKeyID   string `json:"gateway_key_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
}

// HandleDispatch handles POST /v1/checkout/sessions/:id/dispatch. For an
// online draft it opens a gateway session for the hosted UI; for COD it
// records the outcome and finalizes the order immediately.
func HandleDispatch(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if existing, done := replayIdempotentOrder(c, d); done {
			c.JSON(http.StatusOK, existing)
			return
		}

		sess, ok := lookupSession(c, d)
		if !ok {
			return
		}

		sess.Lock()
		defer sess.Unlock()

		if sess.Draft == nil || sess.Pricing == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "checkout form has not been submitted"})
			return
		}
		draft, pricing := *sess.Draft, *sess.Pricing

		switch draft.PaymentMethod {
		case domain.PaymentMethodOnline:
			receipt := d.nextReceipt(c)
			gwSession, err := sess.Dispatcher.StartOnline(
				c.Request.Context(), draft, pricing, checkout.MinorUnits(pricing.Total), receipt)
			if err != nil {
				respondDispatchError(c, d, err)
				return
			}
			c.JSON(http.StatusOK, DispatchResponse{
				GatewayOrderID: gwSession.GatewayOrderID,
				GatewayKeyID:   gwSession.KeyID,
				Amount:         gwSession.Amount,
				Currency:       gwSession.Currency,
				Receipt:        gwSession.Receipt,
			})

		case domain.PaymentMethodCashOnDelivery:
			outcome, err := sess.Dispatcher.RecordCOD()
			if err != nil {
				respondDispatchError(c, d, err)
				return
			}
			confirmation, err := d.Finalizer.Finalize(c.Request.Context(), draft, pricing, outcome)
			if err != nil {
				d.Logger.Error("Failed to finalize COD order", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to finalize order"})
				return
			}
			storeIdempotencyKey(c, d, confirmation.OrderNumber)
			d.Sessions.Remove(sess.ID)
			c.JSON(http.StatusCreated, newOrderResponse(confirmation))

		default:
			c.JSON(http.StatusConflict, gin.H{"error": "no payment method selected"})
		}
	}
}

// HandleCancel handles POST /v1/checkout/sessions/:id/cancel: the user
// dismissed the hosted gateway UI. Benign; the form stays intact and the
// attempt can be retried.
func HandleCancel(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := lookupSession(c, d)
		if !ok {
			return
		}

		sess.Lock()
		defer sess.Unlock()

		if err := sess.Dispatcher.Cancel(); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "nothing to cancel"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"state": sess.Dispatcher.State(),
		})
	}
}

func lookupSession(c *gin.Context, d Deps) (*session.Session, bool) {
	return lookupSessionByID(c, d, c.Param("id"))
}

func lookupSessionByID(c *gin.Context, d Deps, idStr string) (*session.Session, bool) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return nil, false
	}
	sess, err := d.Sessions.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "checkout session not found"})
		return nil, false
	}
	return sess, true
}

func respondDispatchError(c *gin.Context, d Deps, err error) {
	switch err.(type) {
	case *apperrors.ErrDispatchInFlight:
		c.JSON(http.StatusConflict, gin.H{"error": "a payment attempt is already in progress"})
	case *apperrors.ErrGatewayUnavailable:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to initialize payment. Please try again."})
	case *apperrors.ErrInvalidStateTransition:
		c.JSON(http.StatusConflict, gin.H{"error": "payment already completed for this session"})
	default:
		d.Logger.Error("Dispatch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// nextReceipt builds the gateway receipt reference. The display sequence is
// advisory; a database hiccup falls back to the clock.
func (d Deps) nextReceipt(c *gin.Context) string {
	prefix := strings.ToLower(d.Cfg.Pricing.OrderNumberPrefix)
	seq, err := d.Repos.Orders.NextDisplaySequence(c.Request.Context())
	if err != nil {
		return fmt.Sprintf("%s_order_%d", prefix, time.Now().UnixMilli())
	}
	return fmt.Sprintf("%s_order_%06d", prefix, seq)
}

func replayIdempotentOrder(c *gin.Context, d Deps) (OrderResponse, bool) {
	_, _, existingOrderNumber, isExisting := middleware.GetIdempotencyInfo(c)
	if !isExisting {
		return OrderResponse{}, false
	}
	existing, err := d.Repos.Orders.GetByOrderNumber(c.Request.Context(), existingOrderNumber)
	if err != nil {
		d.Logger.Error("Failed to load order for idempotent replay",
			zap.String("order_number", existingOrderNumber),
			zap.Error(err))
		return OrderResponse{}, false
	}
	return newOrderResponse(*existing), true
}

func storeIdempotencyKey(c *gin.Context, d Deps, orderNumber string) {
	key, requestHash, _, _ := middleware.GetIdempotencyInfo(c)
	if key == "" {
		return
	}
	record := &domain.IdempotencyKey{
		Key:         key,
		OrderNumber: orderNumber,
		RequestHash: requestHash,
	}
	if err := d.Repos.Idempotency.Create(c.Request.Context(), record); err != nil {
		// Don't fail the request if idempotency storage fails
		d.Logger.Warn("Failed to store idempotency key", zap.Error(err))
	}
}
