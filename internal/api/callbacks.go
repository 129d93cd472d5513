package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
	"github.com/hoyoenuno/hoyo-payments/internal/core/service"
)

// outcomeFromQuery extracts the processor metadata from a redirect callback.
func outcomeFromQuery(c *gin.Context) domain.PaymentDetails {
	return domain.PaymentDetails{
		PaymentID:       c.Query("payment_id"),
		PaymentType:     c.Query("payment_type"),
		Status:          c.Query("status"),
		MerchantOrderID: c.Query("merchant_order_id"),
	}
}

// The redirect callbacks are followed by the customer's browser. Whatever
// happens during reconciliation, the customer gets a terminal page and a 200;
// failures are logged, never surfaced.

// PaymentSuccess handles GET /payment/success.
func (h *Handler) PaymentSuccess(c *gin.Context) {
	h.reconcileFromRedirect(c, service.EventSuccess)
	renderPage(c, pageSuccess, outcomeFromQuery(c), c.Query("external_reference"))
}

// PaymentFailure handles GET /payment/failure.
func (h *Handler) PaymentFailure(c *gin.Context) {
	h.reconcileFromRedirect(c, service.EventFailure)
	renderPage(c, pageFailure, outcomeFromQuery(c), c.Query("external_reference"))
}

// PaymentPending handles GET /payment/pending.
func (h *Handler) PaymentPending(c *gin.Context) {
	h.reconcileFromRedirect(c, service.EventPending)
	renderPage(c, pagePending, outcomeFromQuery(c), c.Query("external_reference"))
}

func (h *Handler) reconcileFromRedirect(c *gin.Context, event service.Event) {
	token := c.Query("external_reference")
	if token == "" {
		h.logger.Error("redirect callback without external_reference",
			"event", string(event), "query", c.Request.URL.RawQuery)
		return
	}
	if err := h.reconcile.Apply(c.Request.Context(), token, outcomeFromQuery(c), event); err != nil {
		h.logger.Error("redirect reconciliation failed",
			"event", string(event), "reference", token, "error", err)
	}
}

// WebhookRequest is the notification body sent by Mercado Pago.
type WebhookRequest struct {
	ID     int64  `json:"id"`
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
	LiveMode    bool   `json:"live_mode"`
	DateCreated string `json:"date_created"`
}

// HandleWebhook handles POST /payment/webhook. The notification only carries
// a payment id, so the payment is fetched back from Mercado Pago and its
// status mapped onto the same reconciliation transitions as the redirects.
// Always answers 200 so the processor stops retrying.
func (h *Handler) HandleWebhook(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Mercado Pago sends several notification formats; log and accept.
		h.logger.Warn("webhook parsing error", "error", err)
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return
	}

	if req.Type != "payment" || req.Data.ID == "" {
		h.logger.Info("ignoring webhook", "type", req.Type, "action", req.Action)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	info, err := h.gateway.GetPayment(c.Request.Context(), req.Data.ID)
	if err != nil {
		h.logger.Error("failed to fetch payment for webhook",
			"payment_id", req.Data.ID, "error", err)
		c.JSON(http.StatusOK, gin.H{"status": "processed_with_error"})
		return
	}

	event, ok := eventForPaymentStatus(info.Status)
	if !ok {
		h.logger.Info("webhook payment status not actionable",
			"payment_id", info.PaymentID, "status", info.Status)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	pay := domain.PaymentDetails{
		PaymentID:   info.PaymentID,
		PaymentType: info.PaymentType,
		Status:      info.Status,
	}
	if err := h.reconcile.Apply(c.Request.Context(), info.ExternalReference, pay, event); err != nil {
		h.logger.Error("webhook reconciliation failed",
			"payment_id", info.PaymentID, "reference", info.ExternalReference, "error", err)
		c.JSON(http.StatusOK, gin.H{"status": "processed_with_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}

// eventForPaymentStatus maps a Mercado Pago payment status onto a
// reconciliation event.
func eventForPaymentStatus(status string) (service.Event, bool) {
	switch status {
	case "approved":
		return service.EventSuccess, true
	case "rejected", "cancelled":
		return service.EventFailure, true
	case "pending", "in_process":
		return service.EventPending, true
	}
	return "", false
}
