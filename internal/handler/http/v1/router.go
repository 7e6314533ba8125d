package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	adminOnly := AdminAuthMiddleware(h.authService, h.logger)

	// Аутентификация администратора
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.login)
	}

	// Маршруты жалоб: публичная отправка и отслеживание плюс админские операции
	reports := api.Group("/reports")
	{
		reports.POST("", h.createReport)
		reports.GET("/public/recent/list", h.listRecentPublic)
		reports.GET("/:id", h.getReport)

		reports.GET("", adminOnly, h.listReports)
		reports.GET("/stats/summary", adminOnly, h.getStatsSummary)
		reports.PUT("/:id", adminOnly, h.updateReportStatus)
		reports.DELETE("/:id", adminOnly, h.deleteReport)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
