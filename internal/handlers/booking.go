// internal/handlers/booking.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/secondnest/secondhand-backend/internal/services"
	"github.com/secondnest/secondhand-backend/internal/utils"
)

type BookingHandler struct {
	bookingService *services.BookingService
}

func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// POST /bookings
func (h *BookingHandler) Reserve(c *gin.Context) {
	email, exists := utils.GetUserEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	booking, err := h.bookingService.Reserve(c.Request.Context(), email, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"booking": booking})
}

// GET /bookings — the caller's reservations, own entries only.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	email, exists := utils.GetUserEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	bookings, err := h.bookingService.ListForBuyer(c.Request.Context(), email)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"bookings": bookings})
}

// GET /bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"booking": booking})
}

// DELETE /bookings/:productId — removes only the caller's own entry.
func (h *BookingHandler) Unreserve(c *gin.Context) {
	email, exists := utils.GetUserEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	result, err := h.bookingService.Unreserve(c.Request.Context(), c.Param("productId"), email)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"result": result})
}
