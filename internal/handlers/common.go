// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/secondnest/secondhand-backend/internal/services"
	"github.com/secondnest/secondhand-backend/internal/utils"
)

// handleServiceError maps the services' sentinel errors onto the error
// taxonomy: NotFound 404, Forbidden 403, Conflict 409, Upstream 502,
// everything else 500.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrUpstream):
		utils.UpstreamErrorResponse(c, err.Error())
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
