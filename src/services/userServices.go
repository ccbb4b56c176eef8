package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/SimpleYM/SimpleYM-Backend/src/middleware"
	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
)

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (models.UserModel, error)
	FindUserByID(ctx context.Context, id string) (models.UserModel, error)
	CreateUser(ctx context.Context, user *models.UserModel) error
	ListUsersByRole(ctx context.Context, role models.Role) ([]models.UserModel, error)
}

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) FindUserByEmail(ctx context.Context, email string) (models.UserModel, error) {
	return s.first(ctx, "LOWER(email) = LOWER(?)", email)
}

func (s *GormUserStore) FindUserByID(ctx context.Context, id string) (models.UserModel, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *GormUserStore) CreateUser(ctx context.Context, user *models.UserModel) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *GormUserStore) ListUsersByRole(ctx context.Context, role models.Role) ([]models.UserModel, error) {
	var users []models.UserModel
	if err := s.db.WithContext(ctx).Where("role = ?", string(role)).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormUserStore) first(ctx context.Context, query string, arg string) (models.UserModel, error) {
	var user models.UserModel
	if err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrNotFound
		}
		return user, err
	}
	return user, nil
}

type UserService struct {
	store UserStore
	ttl   time.Duration
	now   func() time.Time
}

// NewUserService creates a new instance of UserService
func NewUserService(store UserStore, ttl time.Duration) *UserService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &UserService{store: store, ttl: ttl, now: time.Now}
}

// AuthenticateUser checks user credentials and returns a signed token if valid
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (models.TokenResponse, error) {
	user, err := s.store.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.TokenResponse{}, ErrInvalidCredentials
		}
		return models.TokenResponse{}, err
	}

	// Compare the provided password with the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.TokenResponse{}, ErrInvalidCredentials
	}
	return s.issue(user)
}

// RefreshToken issues a fresh token for the caller with their current role
func (s *UserService) RefreshToken(ctx context.Context, who models.Identity) (models.TokenResponse, error) {
	user, err := s.store.FindUserByID(ctx, who.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.TokenResponse{}, ErrInvalidCredentials
		}
		return models.TokenResponse{}, err
	}
	return s.issue(user)
}

// GetUser retrieves one user by id
func (s *UserService) GetUser(ctx context.Context, id string) (models.UserModel, error) {
	return s.store.FindUserByID(ctx, id)
}

// CreateUser validates the request, hashes the password and stores the user
func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.CreateUserResponse, error) {
	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return models.CreateUserResponse{}, fmt.Errorf("%w: %q is not a valid email", ErrValidation, req.Email)
	}
	if len(req.Password) < minPasswordLength {
		return models.CreateUserResponse{}, fmt.Errorf("%w: password is too weak, use at least %d characters", ErrValidation, minPasswordLength)
	}
	role, ok := models.ParseRole(strings.ToLower(strings.TrimSpace(req.Role)))
	if !ok {
		return models.CreateUserResponse{}, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}

	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return models.CreateUserResponse{}, fmt.Errorf("%w: %s", ErrUserExists, email)
	} else if !errors.Is(err, ErrNotFound) {
		return models.CreateUserResponse{}, err
	}

	// Hash the password before saving
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.CreateUserResponse{}, err
	}
	user := models.UserModel{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Role:     string(role),
		Password: string(hashedPassword),
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return models.CreateUserResponse{}, fmt.Errorf("create user %s: %w", email, err)
	}
	log.Printf("[USERS] Created %s with role %s", user.Email, user.Role)

	return models.CreateUserResponse{
		Message:           fmt.Sprintf("User %s created successfully with role %s.", user.Email, user.Role),
		UID:               user.ID,
		CreatedInAuth:     true,
		CreatedInDatabase: true,
	}, nil
}

// YardUserIDs lists the ids of every user with the yard role
func (s *UserService) YardUserIDs(ctx context.Context) ([]string, error) {
	users, err := s.store.ListUsersByRole(ctx, models.RoleYard)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (s *UserService) issue(user models.UserModel) (models.TokenResponse, error) {
	role, ok := models.ParseRole(user.Role)
	if !ok {
		return models.TokenResponse{}, fmt.Errorf("user %s has unknown role %q", user.Email, user.Role)
	}
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(role),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(middleware.GetSecretKey()))
	if err != nil {
		return models.TokenResponse{}, err
	}
	return models.TokenResponse{Token: tokenString, ExpiresAt: expiresAt.Unix()}, nil
}
