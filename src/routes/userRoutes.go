package routes

import (
	"github.com/SimpleYM/SimpleYM-Backend/src/controllers"
	"github.com/SimpleYM/SimpleYM-Backend/src/middleware"
	"github.com/SimpleYM/SimpleYM-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(router *gin.Engine, service *services.UserService) {
	userController := controllers.NewUserController(service)

	// Public routes
	router.POST("/login", userController.AuthenticateUser)

	// Protected routes
	session := router.Group("")
	session.Use(middleware.AuthMiddleware())
	{
		session.POST("/refresh-token", userController.RefreshToken)
		session.GET("/me", userController.Me)
	}

	admin := router.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireCapability(middleware.CapAdminTasks))
	{
		admin.POST("/create-auth-user", userController.CreateUser)
	}
}
