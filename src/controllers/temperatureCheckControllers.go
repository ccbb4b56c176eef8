package controllers

import (
	"fmt"
	"net/http"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/SimpleYM/SimpleYM-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type TemperatureCheckController struct {
	service *services.TemperatureCheckService
}

func NewTemperatureCheckController(service *services.TemperatureCheckService) *TemperatureCheckController {
	return &TemperatureCheckController{service: service}
}

// AddTemperatureCheck handles POST requests recording a trailer temperature reading
func (c *TemperatureCheckController) AddTemperatureCheck(ctx *gin.Context) {
	who, ok := caller(ctx)
	if !ok {
		return
	}
	var req models.AddTemperatureCheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	check, err := c.service.Add(ctx.Request.Context(), who, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Temperature check added with ID %s.", check.ID),
		"check":   check,
	})
}
