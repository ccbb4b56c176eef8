package controllers

import (
	"net/http"

	"github.com/SimpleYM/SimpleYM-Backend/src/middleware"
	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/SimpleYM/SimpleYM-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// AuthenticateUser handles POST requests to log a user in
func (c *UserController) AuthenticateUser(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := c.service.AuthenticateUser(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, token)
}

// RefreshToken handles POST requests to extend the caller's session
func (c *UserController) RefreshToken(ctx *gin.Context) {
	who, ok := caller(ctx)
	if !ok {
		return
	}
	token, err := c.service.RefreshToken(ctx.Request.Context(), who)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, token)
}

// Me handles GET requests for the caller's profile and capabilities
func (c *UserController) Me(ctx *gin.Context) {
	who, ok := caller(ctx)
	if !ok {
		return
	}
	user, err := c.service.GetUser(ctx.Request.Context(), who.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"user":         user,
		"capabilities": middleware.CapabilitiesOf(who.Role),
	})
}

// CreateUser handles POST requests to create a user account
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req models.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := c.service.CreateUser(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, res)
}
