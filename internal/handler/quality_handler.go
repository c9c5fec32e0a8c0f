package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wooltrace/internal/service"
)

// QualityHandler handles quality inspection endpoints.
type QualityHandler struct {
	qualityService service.QualityService
}

// NewQualityHandler creates a new QualityHandler.
func NewQualityHandler(qualityService service.QualityService) *QualityHandler {
	return &QualityHandler{qualityService: qualityService}
}

// RecordInspection handles POST /api/v1/quality/inspect
func (h *QualityHandler) RecordInspection(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.InspectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	report, err := h.qualityService.RecordInspection(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, report)
}

// Approve handles PATCH /api/v1/quality/approve/:id
func (h *QualityHandler) Approve(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	batch, err := h.qualityService.Approve(c.Request.Context(), batchID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, batch)
}

// Reject handles PATCH /api/v1/quality/reject/:id
func (h *QualityHandler) Reject(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	batch, err := h.qualityService.Reject(c.Request.Context(), batchID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, batch)
}

// MyResults handles GET /api/v1/quality/my
func (h *QualityHandler) MyResults(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	results, err := h.qualityService.MyReports(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, results)
}

// Analytics handles GET /api/v1/quality/analytics
func (h *QualityHandler) Analytics(c *gin.Context) {
	stats, err := h.qualityService.Analytics(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

// Logs handles GET /api/v1/quality/logs
func (h *QualityHandler) Logs(c *gin.Context) {
	reports, err := h.qualityService.Logs(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, reports)
}
