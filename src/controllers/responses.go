package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/SimpleYM/SimpleYM-Backend/src/middleware"
	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/SimpleYM/SimpleYM-Backend/src/services"
	"github.com/SimpleYM/SimpleYM-Backend/src/views"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto status codes and writes the error body.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrUnknownCollection),
		errors.Is(err, services.ErrReadOnly),
		errors.Is(err, services.ErrUserExists),
		errors.Is(err, views.ErrInvalidFilter):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrClaimHeld),
		errors.Is(err, services.ErrIllegalTransition):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Printf("[API] %s %s: %v", ctx.Request.Method, ctx.FullPath(), err)
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

// caller returns the authenticated identity or writes a 401.
func caller(ctx *gin.Context) (models.Identity, bool) {
	who, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
	}
	return who, ok
}
