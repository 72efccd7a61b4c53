// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/secondnest/secondhand-backend/internal/models"
	"github.com/secondnest/secondhand-backend/internal/services"
	"github.com/secondnest/secondhand-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GET /admin/sellers
func (h *AdminHandler) GetSellers(c *gin.Context) {
	sellers, err := h.adminService.ListUsersByRole(c.Request.Context(), models.RoleSeller)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"sellers": sellers})
}

// GET /admin/buyers
func (h *AdminHandler) GetBuyers(c *gin.Context) {
	buyers, err := h.adminService.ListUsersByRole(c.Request.Context(), models.RoleBuyer)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"buyers": buyers})
}

// PUT /admin/sellers/:id/verify
func (h *AdminHandler) VerifySeller(c *gin.Context) {
	result, err := h.adminService.VerifySeller(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"result": result})
}

// DELETE /admin/buyers/:id
func (h *AdminHandler) RemoveBuyer(c *gin.Context) {
	result, err := h.adminService.RemoveBuyer(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"result": result})
}

// DELETE /admin/sellers/:email
func (h *AdminHandler) RemoveSeller(c *gin.Context) {
	result, err := h.adminService.RemoveSeller(c.Request.Context(), c.Param("email"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"result": result})
}

// GET /admin/reported-products
func (h *AdminHandler) GetReportedProducts(c *gin.Context) {
	items, err := h.adminService.ListReported(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"reported": items})
}
