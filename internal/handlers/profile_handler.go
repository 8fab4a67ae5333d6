package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alumbridge/scholarship-service/internal/models"
	"github.com/alumbridge/scholarship-service/internal/utils"
)

type ProfileHandler struct {
	BaseHandler
}

func NewProfileHandler(logger utils.Logger) *ProfileHandler {
	return &ProfileHandler{BaseHandler: NewBaseHandler(logger)}
}

// GetProfile returns the authenticated caller's own profile, already loaded
// by the auth middleware.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	h.LogRequest(c, "Fetching profile")

	profile, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}
