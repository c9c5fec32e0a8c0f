package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wooltrace/internal/service"
)

// BatchHandler handles wool batch lifecycle endpoints.
type BatchHandler struct {
	batchService   service.BatchService
	maxUploadBytes int64
}

// NewBatchHandler creates a new BatchHandler. maxFileSizeMB caps image uploads.
func NewBatchHandler(batchService service.BatchService, maxFileSizeMB int64) *BatchHandler {
	return &BatchHandler{
		batchService:   batchService,
		maxUploadBytes: maxFileSizeMB << 20,
	}
}

// Create handles POST /api/v1/batches
func (h *BatchHandler) Create(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateBatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	batch, err := h.batchService.Create(c.Request.Context(), userID, role, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, batch)
}

// List handles GET /api/v1/batches
func (h *BatchHandler) List(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := pagination(c)
	batches, total, err := h.batchService.List(c.Request.Context(), userID, role, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, batches, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/batches/:id
func (h *BatchHandler) GetByID(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	batch, err := h.batchService.GetByID(c.Request.Context(), batchID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, batch)
}

// UpdateStage handles PATCH /api/v1/batches/:id/status
func (h *BatchHandler) UpdateStage(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	var input service.UpdateStageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	batch, err := h.batchService.UpdateStage(c.Request.Context(), batchID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, batch)
}

// AddLog handles POST /api/v1/batches/:id/logs
func (h *BatchHandler) AddLog(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	var input service.AddLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	batch, err := h.batchService.AddLog(c.Request.Context(), batchID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, batch)
}

// Update handles PATCH /api/v1/batches/:id
func (h *BatchHandler) Update(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	var input service.UpdateBatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	batch, err := h.batchService.UpdateDetails(c.Request.Context(), batchID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, batch)
}

// UploadImage handles POST /api/v1/batches/:id/images
func (h *BatchHandler) UploadImage(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "image file is required")
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		RespondError(c, http.StatusBadRequest, "FILE_TOO_LARGE",
			fmt.Sprintf("image exceeds the %dMB upload limit", h.maxUploadBytes>>20))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "could not read uploaded file")
		return
	}
	defer file.Close()

	key, err := h.batchService.UploadImage(c.Request.Context(), batchID, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"key": key})
}

// RemoveImage handles DELETE /api/v1/batches/:id/images
func (h *BatchHandler) RemoveImage(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	key := c.Query("key")
	if key == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "key query parameter is required")
		return
	}

	if err := h.batchService.RemoveImage(c.Request.Context(), batchID, key); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "image removed"})
}

// Label handles GET /api/v1/batches/:id/label
func (h *BatchHandler) Label(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	png, err := h.batchService.Label(c.Request.Context(), batchID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
