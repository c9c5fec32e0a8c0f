package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wooltrace/internal/domain"
	"wooltrace/internal/export"
	"wooltrace/internal/service"
)

// exportPageSize is how many batches are fetched per page while exporting.
const exportPageSize = 200

// AdminHandler handles user management and reporting endpoints.
type AdminHandler struct {
	userService  service.UserService
	batchService service.BatchService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService service.UserService, batchService service.BatchService) *AdminHandler {
	return &AdminHandler{userService: userService, batchService: batchService}
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	offset, limit := pagination(c)
	users, total, err := h.userService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, users, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetUser handles GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid user ID")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// AssignRole handles PATCH /api/v1/admin/assign-role/:id
func (h *AdminHandler) AssignRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid user ID")
		return
	}

	var input service.AssignRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.userService.AssignRole(c.Request.Context(), userID, input.Role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// ExportBatchesCSV handles GET /api/v1/admin/export/batches.csv
func (h *AdminHandler) ExportBatchesCSV(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	batches, err := h.collectBatches(c, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("batches_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(export.BOM); err != nil {
		return
	}

	w := export.NewCSVWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteBatches(batches); err != nil {
		return
	}
	w.Flush()
}

// ExportBatchesXLSX handles GET /api/v1/admin/export/batches.xlsx
func (h *AdminHandler) ExportBatchesXLSX(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	batches, err := h.collectBatches(c, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	f, filename, err := export.BatchWorkbook(batches)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)
	_ = f.Write(c.Writer)
}

// collectBatches pages through the full batch list for export.
func (h *AdminHandler) collectBatches(c *gin.Context, userID uuid.UUID, role domain.Role) ([]domain.Batch, error) {
	var all []domain.Batch
	offset := 0
	for {
		page, total, err := h.batchService.List(c.Request.Context(), userID, role, offset, exportPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		offset += len(page)
		if len(page) == 0 || offset >= total {
			return all, nil
		}
	}
}
