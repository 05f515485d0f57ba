// internal/handlers/helpers.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookhaven/bookmarket-backend/internal/models"
	"github.com/bookhaven/bookmarket-backend/internal/utils"
)

// currentUserID pulls the authenticated user out of the gin context. It
// writes the 401 itself so callers just return on !ok.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}
	return userID, true
}

// itemRefParam decodes the :ref path segment; writes the 400 on failure.
func itemRefParam(c *gin.Context) (models.ItemRef, bool) {
	ref, err := models.ParseItemRef(c.Param("ref"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return models.ItemRef{}, false
	}
	return ref, true
}

// uintParam decodes a positive integer path segment; writes the 400 on
// failure.
func uintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return 0, false
	}
	return uint(value), true
}
