package routes

import (
	"github.com/SimpleYM/SimpleYM-Backend/src/controllers"
	"github.com/SimpleYM/SimpleYM-Backend/src/middleware"
	"github.com/SimpleYM/SimpleYM-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupDashboardRoutes(router *gin.Engine, service *services.DashboardService) {
	controller := controllers.NewDashboardController(service)

	dashboard := router.Group("")
	dashboard.Use(middleware.AuthMiddleware(), middleware.RequireCapability(middleware.CapDashboard))
	{
		dashboard.GET("/last-known-locations", controller.LastKnownLocations)
		dashboard.GET("/trailer-statistics", controller.TrailerStatistics)
		dashboard.GET("/dashboard-data", controller.DashboardData)

		// Filtered views
		dashboard.GET("/dashboard/:view", controller.View)
		dashboard.GET("/dashboard/:view/export", controller.Export)
	}
}
