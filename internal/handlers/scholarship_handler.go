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

type ScholarshipHandler struct {
	BaseHandler
	service services.ScholarshipService
}

func NewScholarshipHandler(service services.ScholarshipService, logger utils.Logger) *ScholarshipHandler {
	return &ScholarshipHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Submit creates or replaces the caller's scholarship request.
func (h *ScholarshipHandler) Submit(c *gin.Context) {
	h.LogRequest(c, "Submitting scholarship request")

	callerID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
		return
	}

	var req validator.SubmitScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_failed",
			Message: "Invalid request body",
		})
		return
	}

	if _, err := h.service.Submit(c.Request.Context(), callerID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// List returns every scholarship request enriched with student display
// fields, for the alumni browsing view.
func (h *ScholarshipHandler) List(c *gin.Context) {
	h.LogRequest(c, "Listing scholarship requests")

	scholarships, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scholarships": scholarships})
}

// GetByStudent returns one student's request together with their profile.
func (h *ScholarshipHandler) GetByStudent(c *gin.Context) {
	h.LogRequest(c, "Fetching scholarship request")

	studentID := c.Param("studentId")
	request, profile, err := h.service.Get(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scholarship": request,
		"student":     profile,
	})
}

func (h *ScholarshipHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_failed",
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "forbidden",
			Message: "Scholarship requests are self-submitted",
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Scholarship not found",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "Internal server error",
		})
	}
}
