package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alumbridge/scholarship-service/internal/models"
	"github.com/alumbridge/scholarship-service/internal/reports"
	"github.com/alumbridge/scholarship-service/internal/services"
	"github.com/alumbridge/scholarship-service/internal/utils"
	"github.com/alumbridge/scholarship-service/internal/validator"
)

type ContributionHandler struct {
	BaseHandler
	service  services.ContributionService
	exporter *reports.LedgerExporter
}

func NewContributionHandler(service services.ContributionService, exporter *reports.LedgerExporter, logger utils.Logger) *ContributionHandler {
	return &ContributionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		exporter:    exporter,
	}
}

// Contribute records a funding event from the caller to a student.
func (h *ContributionHandler) Contribute(c *gin.Context) {
	h.LogRequest(c, "Recording contribution")

	alumniID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
		return
	}

	var req validator.ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_failed",
			Message: "Invalid request body",
		})
		return
	}

	if _, err := h.service.Record(c.Request.Context(), alumniID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// ListMine returns the caller's own ledger entries.
func (h *ContributionHandler) ListMine(c *gin.Context) {
	h.LogRequest(c, "Listing caller contributions")

	alumniID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
		return
	}

	contributions, err := h.service.ListByAlumni(c.Request.Context(), alumniID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contributions": contributions})
}

// Export streams the full ledger as an .xlsx workbook.
func (h *ContributionHandler) Export(c *gin.Context) {
	h.LogRequest(c, "Exporting contribution ledger")

	workbook, err := h.exporter.Workbook(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Ledger export failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "Internal server error",
		})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="contributions.xlsx"`)
	if err := workbook.Write(c.Writer); err != nil {
		h.LogError(c, err, "Ledger export write failed")
	}
}

func (h *ContributionHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_failed",
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrAmountExceedsRemaining):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "amount_exceeds_remaining",
			Message: "Contribution exceeds the remaining requirement",
		})
	case errors.Is(err, services.ErrScholarshipNotFound):
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
