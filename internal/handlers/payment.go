// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shaivyah/storefront-backend/internal/i18n"
	"github.com/shaivyah/storefront-backend/internal/models"
	"github.com/shaivyah/storefront-backend/internal/services"
	"github.com/shaivyah/storefront-backend/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// POST /payment/create
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.PaymentOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.paymentService.CreateIntent(c.Request.Context(), userID, req.OrderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, response)
}

// POST /payment/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.PaymentOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.paymentService.Verify(c.Request.Context(), userID, isAdmin(c), req.OrderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	key := i18n.KeyPaymentPending
	switch order.PaymentStatus {
	case models.PaymentStatusPaid:
		key = i18n.KeyPaymentSuccess
	case models.PaymentStatusFailed:
		key = i18n.KeyPaymentFailed
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, key),
		"order":   order,
	})
}

// POST /payment/refund
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.PaymentOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.paymentService.Refund(c.Request.Context(), req.OrderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPaymentRefunded),
		"order":   order,
	})
}
