package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"immigration-crm/internal/middleware"
	"immigration-crm/internal/service"
	"immigration-crm/pkg/response"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// RegisterRoutes binds the dashboard endpoint to the gin RouterGroup
func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/dashboard/stats", middleware.RequireAuth(), h.GetDashboardStats)
}

// GetDashboardStats handles GET /api/dashboard/stats
// @Summary      Dashboard statistics
// @Description  Returns total clients and cases plus active case, pending task and pending document counts
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=model.DashboardStats}
// @Failure      401  {object}  response.Response
// @Router       /api/dashboard/stats [get]
func (h *StatisticsHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.statisticsService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
