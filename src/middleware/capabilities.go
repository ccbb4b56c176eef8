package middleware

import (
	"net/http"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/gin-gonic/gin"
)

type Capability string

const (
	CapNotifyReady Capability = "notify-ready"
	CapMoves       Capability = "moves"
	CapTempCheck   Capability = "temp-check"
	CapDashboard   Capability = "dashboard"
	CapAdminTasks  Capability = "admin-tasks"
)

var roleCapabilities = map[models.Role][]Capability{
	models.RoleAdmin:  {CapNotifyReady, CapMoves, CapTempCheck, CapDashboard, CapAdminTasks},
	models.RoleYard:   {CapNotifyReady, CapMoves, CapTempCheck, CapDashboard},
	models.RoleLoader: {CapNotifyReady, CapTempCheck, CapDashboard},
}

// Allows reports whether the role grants the capability.
func Allows(role models.Role, capability Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == capability {
			return true
		}
	}
	return false
}

// CapabilitiesOf lists what a role may do.
func CapabilitiesOf(role models.Role) []Capability {
	out := make([]Capability, len(roleCapabilities[role]))
	copy(out, roleCapabilities[role])
	return out
}

// RequireCapability rejects callers whose role does not grant capability. It must run after AuthMiddleware.
func RequireCapability(capability Capability) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		who, ok := CurrentIdentity(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}
		if !Allows(who.Role, capability) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Your role does not allow " + string(capability)})
			return
		}
		ctx.Next()
	}
}
