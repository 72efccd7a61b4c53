// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/secondnest/secondhand-backend/internal/services"
	"github.com/secondnest/secondhand-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// PUT /users/:email
// Upserts the user record and returns a fresh credential alongside the
// store's outcome descriptor.
func (h *AuthHandler) UpsertUser(c *gin.Context) {
	email := c.Param("email")

	var req services.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.authService.UpsertUser(c.Request.Context(), email, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), email)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"result": result,
		"token":  token,
	})
}

// GET /jwt?email=
// Mints a credential for an existing user; unknown emails get 403 and
// an empty token.
func (h *AuthHandler) GetToken(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.BadRequestResponse(c, "email query parameter is required", nil)
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"accessToken": ""})
			return
		}
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"accessToken": token})
}
