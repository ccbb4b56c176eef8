package controllers

import (
	"fmt"
	"net/http"

	"github.com/SimpleYM/SimpleYM-Backend/src/middleware"
	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/SimpleYM/SimpleYM-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type CollectionController struct {
	service  *services.CollectionService
	importer *services.ImportService
}

func NewCollectionController(service *services.CollectionService, importer *services.ImportService) *CollectionController {
	return &CollectionController{service: service, importer: importer}
}

// FetchData handles GET requests to retrieve every record of a collection
func (c *CollectionController) FetchData(ctx *gin.Context) {
	who, ok := caller(ctx)
	if !ok {
		return
	}
	collection := ctx.Query("collection")
	if collection == "user_master" && !middleware.Allows(who.Role, middleware.CapAdminTasks) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Your role does not allow reading users"})
		return
	}
	data, err := c.service.Fetch(ctx.Request.Context(), collection)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": data})
}

// AddRecord handles POST requests to add one or more records to a collection
func (c *CollectionController) AddRecord(ctx *gin.Context) {
	var req models.RecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Collection == "" || len(req.Data) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data or collection name."})
		return
	}
	ids, err := c.service.AddRecords(ctx.Request.Context(), req.Collection, req.Data)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Record added successfully to %s.", req.Collection),
		"ids":     ids,
	})
}

// Update handles PUT requests to update one record addressed by query parameters
func (c *CollectionController) Update(ctx *gin.Context) {
	collection, id := ctx.Query("collection"), ctx.Query("id")
	var data map[string]any
	if err := ctx.ShouldBindJSON(&data); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.service.Update(ctx.Request.Context(), collection, id, data); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Record with ID %s successfully updated in %s.", id, collection)})
}

// UpdateRecord handles PUT requests to update the single record of a bulk payload
func (c *CollectionController) UpdateRecord(ctx *gin.Context) {
	var req models.RecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.service.UpdateRecord(ctx.Request.Context(), req); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Record updated successfully in %s.", req.Collection)})
}

// Delete handles DELETE requests to remove one record
func (c *CollectionController) Delete(ctx *gin.Context) {
	collection, id := ctx.Query("collection"), ctx.Query("id")
	if err := c.service.Delete(ctx.Request.Context(), collection, id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Record with ID %s successfully deleted from %s.", id, collection)})
}

// Schema handles GET requests for the field types of every collection
func (c *CollectionController) Schema(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, services.Schema())
}

// UploadExcel handles POST requests importing a workbook from an upload or a Drive link
func (c *CollectionController) UploadExcel(ctx *gin.Context) {
	collection := ctx.PostForm("collection")
	if collection == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Collection name is required"})
		return
	}

	var (
		n   int
		err error
	)
	if driveURL := ctx.PostForm("drive_url"); driveURL != "" {
		n, err = c.importer.ImportFromDrive(ctx.Request.Context(), collection, driveURL)
	} else {
		header, formErr := ctx.FormFile("file")
		if formErr != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
			return
		}
		file, openErr := header.Open()
		if openErr != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": openErr.Error()})
			return
		}
		defer file.Close()
		n, err = c.importer.ImportWorkbook(ctx.Request.Context(), collection, file)
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Successfully uploaded %d records to %s.", n, collection), "count": n})
}
