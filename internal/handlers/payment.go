// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/secondnest/secondhand-backend/internal/services"
	"github.com/secondnest/secondhand-backend/internal/utils"
)

type PaymentHandler struct {
	checkoutService *services.CheckoutService
}

func NewPaymentHandler(checkoutService *services.CheckoutService) *PaymentHandler {
	return &PaymentHandler{checkoutService: checkoutService}
}

// POST /payments/create-intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req services.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	intent, err := h.checkoutService.CreateIntent(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, intent)
}

// POST /payments — records a confirmed payment and finalizes the sale.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req services.FinalizeSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.checkoutService.FinalizeSale(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"result": result})
}
