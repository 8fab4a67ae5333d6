package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alumbridge/scholarship-service/internal/models"
	"github.com/alumbridge/scholarship-service/internal/services"
	"github.com/alumbridge/scholarship-service/internal/utils"
	"github.com/alumbridge/scholarship-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	service services.DirectoryService
}

func NewAuthHandler(service services.DirectoryService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Signup registers a new student or alumni identity.
func (h *AuthHandler) Signup(c *gin.Context) {
	h.LogRequest(c, "Registering identity")

	var req validator.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_failed",
			Message: "Invalid request body",
		})
		return
	}

	profile, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, UserID: profile.ID})
}

// Login exchanges credentials for a bearer token and the caller's profile.
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Authenticating identity")

	var req validator.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_failed",
			Message: "Invalid request body",
		})
		return
	}

	token, profile, err := h.service.Authenticate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"accessToken": token,
		"user":        profile,
	})
}

func (h *AuthHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_failed",
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrDuplicateIdentity):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "duplicate_identity",
			Message: "An account already exists for this identifier",
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Invalid credentials",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "Internal server error",
		})
	}
}
