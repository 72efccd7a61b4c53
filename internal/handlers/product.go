// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/secondnest/secondhand-backend/internal/services"
	"github.com/secondnest/secondhand-backend/internal/utils"
)

type ProductHandler struct {
	catalogService *services.CatalogService
	adminService   *services.AdminService
	storageService *services.StorageService
}

func NewProductHandler(catalogService *services.CatalogService, adminService *services.AdminService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		adminService:   adminService,
		storageService: storageService,
	}
}

// GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"categories": categories})
}

// GET /categories/:id/products?joined=true
func (h *ProductHandler) GetCategoryProducts(c *gin.Context) {
	categoryID := c.Param("id")

	if joined, _ := strconv.ParseBool(c.Query("joined")); joined {
		items, err := h.catalogService.ListByCategoryJoined(c.Request.Context(), categoryID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		utils.SuccessResponse(c, gin.H{"products": items})
		return
	}

	products, err := h.catalogService.ListByCategory(c.Request.Context(), categoryID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"products": products})
}

// GET /products/advertised?joined=true
func (h *ProductHandler) GetAdvertisedProducts(c *gin.Context) {
	if joined, _ := strconv.ParseBool(c.Query("joined")); joined {
		items, err := h.catalogService.ListAdvertisedJoined(c.Request.Context())
		if err != nil {
			handleServiceError(c, err)
			return
		}
		utils.SuccessResponse(c, gin.H{"products": items})
		return
	}

	products, err := h.catalogService.ListAdvertised(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"products": products})
}

// GET /products — the caller's own listings.
func (h *ProductHandler) GetMyProducts(c *gin.Context) {
	email, exists := utils.GetUserEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	products, err := h.catalogService.ListBySeller(c.Request.Context(), email)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"products": products})
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	email, exists := utils.GetUserEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.catalogService.CreateProduct(c.Request.Context(), email, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"result": result})
}

// PUT /products/:id/advertise
func (h *ProductHandler) AdvertiseProduct(c *gin.Context) {
	result, err := h.catalogService.SetAdvertised(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"result": result})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	email, exists := utils.GetUserEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	result, err := h.catalogService.DeleteProduct(c.Request.Context(), c.Param("id"), email)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"result": result})
}

// POST /products/:id/report
func (h *ProductHandler) ReportProduct(c *gin.Context) {
	email, _ := utils.GetUserEmailFromContext(c)

	result, err := h.adminService.ReportProduct(c.Request.Context(), c.Param("id"), email)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"result": result})
}

// POST /products/upload-image
func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "image file is required", err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadProductImage(file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"upload": result})
}
