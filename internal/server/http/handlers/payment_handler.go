package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/server/http/dto"
)

// PaymentHandler runs checkout and accepts gateway notifications.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// MobileMoney handles POST /api/orders/:id/payments/mpesa.
func (h *PaymentHandler) MobileMoney(c *gin.Context) {
	var req dto.MobileMoneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	out, err := h.facade.InitiateMobileMoney(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.Model())
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	paymentResult(c, out)
}

// Widget handles POST /api/orders/:id/payments/widget.
func (h *PaymentHandler) Widget(c *gin.Context) {
	var req dto.WidgetEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	out, err := h.facade.RecordWidgetEvent(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.Event, req.InvoiceID)
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	paymentResult(c, out)
}

// Webhook handles POST /api/payments/webhook. It is unauthenticated and
// verified by the shared challenge.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if err := h.facade.HandleWebhook(c.Request.Context(), req.Model()); err != nil {
		fail(c, err)
		return
	}
	success(c, "webhook_accepted", "Webhook accepted", nil)
}

func paymentResult(c *gin.Context, out *model.PaymentOutcome) {
	if out.Completed {
		success(c, "payment_successful", "Payment Successful", dto.NewPaymentResponse(out))
		return
	}
	success(c, "payment_initiated", "Payment initiated", dto.NewPaymentResponse(out))
}
