package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"id":    "u1",
		"email": "driver@example.com",
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func newAuthRouter(extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	handlers = append(handlers, func(ctx *gin.Context) {
		who, _ := CurrentIdentity(ctx)
		ctx.JSON(http.StatusOK, gin.H{"id": who.UserID, "role": who.Role})
	})
	router.GET("/protected", handlers...)
	return router
}

func serve(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	SetSecretKey("test-secret")
	key := []byte("test-secret")

	expired := validClaims("yard")
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	noExpiry := validClaims("yard")
	delete(noExpiry, "exp")

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + signed(t, jwt.SigningMethodHS256, key, validClaims("yard")), http.StatusOK},
		{"legacy load role", "Bearer " + signed(t, jwt.SigningMethodHS256, key, validClaims("load")), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token abc", http.StatusUnauthorized},
		{"wrong key", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte("other"), validClaims("yard")), http.StatusUnauthorized},
		{"wrong algorithm", "Bearer " + signed(t, jwt.SigningMethodHS384, key, validClaims("yard")), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, jwt.SigningMethodHS256, key, expired), http.StatusUnauthorized},
		{"no expiry", "Bearer " + signed(t, jwt.SigningMethodHS256, key, noExpiry), http.StatusUnauthorized},
		{"unknown role", "Bearer " + signed(t, jwt.SigningMethodHS256, key, validClaims("janitor")), http.StatusUnauthorized},
	}
	router := newAuthRouter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := serve(router, tc.header); w.Code != tc.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestRequireCapability(t *testing.T) {
	SetSecretKey("test-secret")
	key := []byte("test-secret")
	router := newAuthRouter(RequireCapability(CapAdminTasks))

	if w := serve(router, "Bearer "+signed(t, jwt.SigningMethodHS256, key, validClaims("admin"))); w.Code != http.StatusOK {
		t.Errorf("admin: status = %d", w.Code)
	}
	if w := serve(router, "Bearer "+signed(t, jwt.SigningMethodHS256, key, validClaims("yard"))); w.Code != http.StatusForbidden {
		t.Errorf("yard: status = %d, want 403", w.Code)
	}
}

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role    models.Role
		allowed []Capability
		denied  []Capability
	}{
		{models.RoleAdmin, []Capability{CapNotifyReady, CapMoves, CapTempCheck, CapDashboard, CapAdminTasks}, nil},
		{models.RoleYard, []Capability{CapNotifyReady, CapMoves, CapTempCheck, CapDashboard}, []Capability{CapAdminTasks}},
		{models.RoleLoader, []Capability{CapNotifyReady, CapTempCheck, CapDashboard}, []Capability{CapMoves, CapAdminTasks}},
		{models.Role("guest"), nil, []Capability{CapNotifyReady, CapDashboard}},
	}
	for _, tc := range cases {
		for _, c := range tc.allowed {
			if !Allows(tc.role, c) {
				t.Errorf("%s should be allowed %s", tc.role, c)
			}
		}
		for _, c := range tc.denied {
			if Allows(tc.role, c) {
				t.Errorf("%s should not be allowed %s", tc.role, c)
			}
		}
	}

	caps := CapabilitiesOf(models.RoleYard)
	caps[0] = CapAdminTasks
	if Allows(models.RoleYard, CapAdminTasks) {
		t.Error("CapabilitiesOf must return a copy")
	}
}
