package middleware

import (
	"net/http"
	"strings"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "identity"

var secretKey string

func SetSecretKey(key string) {
	secretKey = key
}

func GetSecretKey() string {
	return secretKey
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		// Gets the authorization header
		authHeader := strings.TrimSpace(ctx.GetHeader("Authorization"))
		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		// Divides the header into Bearer and Token
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			return
		}

		// Verifies the signature and expiry of the token
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication token"})
			return
		}

		id, _ := claims["id"].(string)
		email, _ := claims["email"].(string)
		rawRole, _ := claims["role"].(string)
		role, ok := models.ParseRole(rawRole)
		if id == "" || !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication token"})
			return
		}

		// Sets the caller in the context
		ctx.Set(identityKey, models.Identity{UserID: id, Email: email, Role: role})
		ctx.Next()
	}
}

// CurrentIdentity returns the caller set by AuthMiddleware.
func CurrentIdentity(ctx *gin.Context) (models.Identity, bool) {
	v, ok := ctx.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	who, ok := v.(models.Identity)
	return who, ok
}
