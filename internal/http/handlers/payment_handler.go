package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/collabhub-backend/internal/dto"
	"github.com/ignatzorin/collabhub-backend/internal/http/handlers/common"
	"github.com/ignatzorin/collabhub-backend/internal/service"
)

// PaymentHandler обслуживает платежи по договорам.
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler создаёт хэндлер платежей.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// ListPayments обрабатывает GET /payments?status=.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	payments, err := h.payments.ListPayments(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

// MarkPaid обрабатывает PATCH /payments/:id/mark-paid.
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}
	id, ok := common.RequireUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.payments.MarkPaid(c.Request.Context(), userID, id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreatePaymentIntent обрабатывает POST /create-payment-intent.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentIntentRequest
	if !common.BindJSON(c, &req) {
		return
	}

	intent, err := h.payments.CreatePaymentIntent(c.Request.Context(), userID, service.CreateIntentInput{
		PaymentID: req.PaymentID,
		Amount:    req.Amount,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	})
}
