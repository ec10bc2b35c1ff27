package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studybridge/crm-backend/internal/services"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles GET /dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "", "Failed to fetch dashboard stats")
		return
	}

	respondData(c, http.StatusOK, stats)
}
