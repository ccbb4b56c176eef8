package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SimpleYM/SimpleYM-Backend/src/middleware"
	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

func TestAuthenticateUserIssuesVerifiableToken(t *testing.T) {
	middleware.SetSecretKey("test-secret")
	store := newFakeUserStore(models.UserModel{ID: "u1", Email: "Driver@Example.com", Role: "load", Password: hashed(t, "hunter22")})
	svc := NewUserService(store, 30*time.Minute)

	res, err := svc.AuthenticateUser(context.Background(), " driver@example.com ", "hunter22")
	if err != nil {
		t.Fatalf("AuthenticateUser: %v", err)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["id"] != "u1" || claims["role"] != "loader" {
		t.Errorf("claims = %v", claims)
	}
	if res.ExpiresAt <= time.Now().Unix() {
		t.Errorf("expires_at %d is not in the future", res.ExpiresAt)
	}
}

func TestAuthenticateUserRejectsBadCredentials(t *testing.T) {
	middleware.SetSecretKey("test-secret")
	store := newFakeUserStore(models.UserModel{ID: "u1", Email: "a@example.com", Role: "yard", Password: hashed(t, "right-pass")})
	svc := NewUserService(store, time.Hour)
	ctx := context.Background()

	if _, err := svc.AuthenticateUser(ctx, "a@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, err := svc.AuthenticateUser(ctx, "nobody@example.com", "right-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: err = %v", err)
	}
}

func TestRefreshTokenUsesStoredRole(t *testing.T) {
	middleware.SetSecretKey("test-secret")
	store := newFakeUserStore(models.UserModel{ID: "u1", Email: "a@example.com", Role: "admin"})
	svc := NewUserService(store, time.Hour)

	res, err := svc.RefreshToken(context.Background(), models.Identity{UserID: "u1", Role: models.RoleYard})
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil }); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims["role"] != "admin" {
		t.Errorf("role = %v, want admin", claims["role"])
	}

	if _, err := svc.RefreshToken(context.Background(), models.Identity{UserID: "gone"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("deleted user: err = %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	store := newFakeUserStore(models.UserModel{ID: "u1", Email: "taken@example.com", Role: "yard"})
	svc := NewUserService(store, time.Hour)
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.CreateUserRequest
		want error
	}{
		{"bad email", models.CreateUserRequest{Email: "not-an-email", Password: "secret1", Role: "yard"}, ErrValidation},
		{"weak password", models.CreateUserRequest{Email: "new@example.com", Password: "abc", Role: "yard"}, ErrValidation},
		{"unknown role", models.CreateUserRequest{Email: "new@example.com", Password: "secret1", Role: "boss"}, ErrValidation},
		{"existing user", models.CreateUserRequest{Email: "TAKEN@example.com", Password: "secret1", Role: "yard"}, ErrUserExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateUser(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}

	res, err := svc.CreateUser(ctx, models.CreateUserRequest{Email: "new@example.com", Password: "secret1", Name: "New", Role: "Loader"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if res.Message != "User new@example.com created successfully with role loader." {
		t.Errorf("message = %q", res.Message)
	}
	stored := store.users[res.UID]
	if stored.Password == "secret1" || bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")) != nil {
		t.Error("password must be stored as a bcrypt hash")
	}
}

func TestYardUserIDs(t *testing.T) {
	store := newFakeUserStore(
		models.UserModel{ID: "b", Role: "yard"},
		models.UserModel{ID: "a", Role: "yard"},
		models.UserModel{ID: "c", Role: "admin"},
	)
	ids, err := NewUserService(store, time.Hour).YardUserIDs(context.Background())
	if err != nil {
		t.Fatalf("YardUserIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("ids = %v", ids)
	}
}
