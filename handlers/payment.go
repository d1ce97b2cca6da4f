package handlers

import (
	"errors"
	"io"
	"net/http"

	"decorhub/services/payment"
	"decorhub/services/tasks"
	"decorhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxWebhookBody = 64 << 10

// PaymentHandler exposes checkout creation and reconciliation.
type PaymentHandler struct {
	Svc      *payment.Service
	Enqueuer tasks.Enqueuer
}

func NewPaymentHandler(svc *payment.Service, enqueuer tasks.Enqueuer) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Enqueuer: enqueuer}
}

// CreateCheckoutSession handles POST /create-checkout-session.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var in struct {
		BookingID string `json:"bookingId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid input", err)
		return
	}
	sess, err := h.Svc.CreateCheckout(c.Request.Context(), in.BookingID, currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": sess.URL, "sessionId": sess.ID})
}

// PaymentSuccess handles PATCH/POST /payment-success. The session id is the
// capability, so no bearer token is required.
func (h *PaymentHandler) PaymentSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		var in struct {
			SessionID string `json:"sessionId"`
		}
		_ = c.ShouldBindJSON(&in)
		sessionID = in.SessionID
	}

	res, err := h.Svc.Reconcile(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrUpstream) && h.Enqueuer != nil {
			if qErr := h.Enqueuer.EnqueueReconcile(c.Request.Context(), sessionID); qErr != nil {
				getLogger(c).Error("failed to queue reconcile retry", zap.String("sessionId", sessionID), zap.Error(qErr))
			} else {
				c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
					"success": false,
					"queued":  true,
					"error":   "payment processor unavailable; confirmation will be retried",
				})
				return
			}
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"transactionId": res.TransactionID,
		"paymentId":     res.PaymentID,
		"bookingId":     res.BookingID,
		"duplicate":     res.Duplicate,
	})
}

// StripeWebhook handles POST /webhooks/stripe.
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		badRequest(c, "failed to read body", err)
		return
	}
	res, err := h.Svc.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		respondError(c, err)
		return
	}
	if res == nil {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true, "paymentId": res.PaymentID, "duplicate": res.Duplicate})
}

// ListUserPayments handles GET /payments/user/:email.
func (h *PaymentHandler) ListUserPayments(c *gin.Context) {
	items, err := h.Svc.ListPayments(c.Request.Context(), c.Param("email"), currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
