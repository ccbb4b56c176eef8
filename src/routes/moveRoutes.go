package routes

import (
	"github.com/SimpleYM/SimpleYM-Backend/src/controllers"
	"github.com/SimpleYM/SimpleYM-Backend/src/middleware"
	"github.com/SimpleYM/SimpleYM-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupMoveRoutes(router *gin.Engine, moves *services.MoveService, feed *services.MoveFeed, dashboard *services.DashboardService) {
	moveController := controllers.NewMoveController(moves, feed, dashboard)

	notify := router.Group("/moves")
	notify.Use(middleware.AuthMiddleware(), middleware.RequireCapability(middleware.CapNotifyReady))
	{
		notify.POST("/notify-ready", moveController.NotifyReady)
	}

	moveGroup := router.Group("/moves")
	moveGroup.Use(middleware.AuthMiddleware(), middleware.RequireCapability(middleware.CapMoves))
	{
		moveGroup.GET("/open", moveController.OpenMoves)
		moveGroup.GET("/stream", moveController.StreamMoves)
		moveGroup.POST("/:id/pick-up", moveController.PickUp)
		moveGroup.POST("/:id/cancel", moveController.Cancel)
		moveGroup.POST("/:id/complete", moveController.Complete)
	}

	stamps := router.Group("/update-move-timestamps")
	stamps.Use(middleware.AuthMiddleware(), middleware.RequireCapability(middleware.CapMoves))
	{
		stamps.PUT("/:id", moveController.UpdateTimestamps)
	}
}
