package routes

import (
	"github.com/SimpleYM/SimpleYM-Backend/src/controllers"
	"github.com/SimpleYM/SimpleYM-Backend/src/middleware"
	"github.com/SimpleYM/SimpleYM-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupCollectionRoutes(router *gin.Engine, service *services.CollectionService, importer *services.ImportService) {
	collectionController := controllers.NewCollectionController(service, importer)

	// Read access, narrowed per collection inside the controller
	reader := router.Group("")
	reader.Use(middleware.AuthMiddleware(), middleware.RequireCapability(middleware.CapDashboard))
	{
		reader.GET("/fetch-data", collectionController.FetchData)
		reader.GET("/collection-schema", collectionController.Schema)
	}

	// Admin tasks
	admin := router.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireCapability(middleware.CapAdminTasks))
	{
		admin.POST("/add-record", collectionController.AddRecord)
		admin.PUT("/update", collectionController.Update)
		admin.PUT("/update-record", collectionController.UpdateRecord)
		admin.DELETE("/delete", collectionController.Delete)
		admin.POST("/upload-excel", collectionController.UploadExcel)
	}
}
