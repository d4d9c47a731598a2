package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты жизненного цикла инцидентов
	incidents := api.Group("/incidents")
	{
		incidents.POST("", h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/stats", h.getStats)
		incidents.GET("/:id", h.getIncident)
		incidents.POST("/:id/status", h.advanceStatus)
		incidents.GET("/:id/history", h.listHistory)
		incidents.GET("/:id/dispatches", h.listIncidentDispatches)
	}

	// Маршруты суб-жизненного цикла назначений служб
	dispatches := api.Group("/dispatches")
	{
		dispatches.POST("", h.createDispatch)
		dispatches.GET("/:id", h.getDispatch)
		dispatches.POST("/:id/arrival", h.recordArrival)
		dispatches.POST("/:id/complete", h.completeDispatch)
		dispatches.POST("/:id/cancel", h.cancelDispatch)
	}

	// Справочники (только чтение)
	catalog := api.Group("/catalog")
	{
		catalog.GET("/emergency-types", h.listEmergencyTypes)
		catalog.GET("/emergency-types/:id", h.getEmergencyType)
		catalog.GET("/services", h.listServices)
		catalog.GET("/services/:id", h.getService)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
