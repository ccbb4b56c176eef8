package routes

import (
	"github.com/SimpleYM/SimpleYM-Backend/src/controllers"
	"github.com/SimpleYM/SimpleYM-Backend/src/middleware"
	"github.com/SimpleYM/SimpleYM-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupTemperatureCheckRoutes(router *gin.Engine, service *services.TemperatureCheckService) {
	controller := controllers.NewTemperatureCheckController(service)

	checks := router.Group("")
	checks.Use(middleware.AuthMiddleware(), middleware.RequireCapability(middleware.CapTempCheck))
	{
		checks.POST("/add-temp-check", controller.AddTemperatureCheck)
	}
}
