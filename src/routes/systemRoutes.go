package routes

import (
	"github.com/SimpleYM/SimpleYM-Backend/src/controllers"
	"github.com/SimpleYM/SimpleYM-Backend/src/metrics"
	"github.com/SimpleYM/SimpleYM-Backend/src/middleware"
	"github.com/gin-gonic/gin"
)

func SetupSystemRoutes(router *gin.Engine, controller *controllers.SystemController, exposeMetrics bool) {
	// Public routes
	router.GET("/", controller.Root)
	router.GET("/health", controller.Health)
	router.GET("/locations", controller.Locations)
	router.GET("/current-time", controller.CurrentTime)
	if exposeMetrics {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// Protected routes
	trailers := router.Group("")
	trailers.Use(middleware.AuthMiddleware(), middleware.RequireCapability(middleware.CapNotifyReady))
	{
		trailers.GET("/validate-trailer", controller.ValidateTrailer)
	}
}
