package handler

import (
	"github.com/gin-gonic/gin"

	"wooltrace/internal/service"
)

// MonitoringHandler handles the mill monitoring dashboard endpoint.
type MonitoringHandler struct {
	monitoringService service.MonitoringService
}

// NewMonitoringHandler creates a new MonitoringHandler.
func NewMonitoringHandler(monitoringService service.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{monitoringService: monitoringService}
}

// Snapshot handles GET /api/v1/monitoring/sensors
func (h *MonitoringHandler) Snapshot(c *gin.Context) {
	snapshot, err := h.monitoringService.Snapshot(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, snapshot)
}
