package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TemperatureCheckStore interface {
	ListTemperatureChecks(ctx context.Context) ([]models.TemperatureCheckModel, error)
	CreateTemperatureCheck(ctx context.Context, check *models.TemperatureCheckModel) error
}

type GormTemperatureCheckStore struct {
	db *gorm.DB
}

func NewGormTemperatureCheckStore(db *gorm.DB) *GormTemperatureCheckStore {
	return &GormTemperatureCheckStore{db: db}
}

func (s *GormTemperatureCheckStore) ListTemperatureChecks(ctx context.Context) ([]models.TemperatureCheckModel, error) {
	var checks []models.TemperatureCheckModel
	if err := s.db.WithContext(ctx).Order("id").Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}

func (s *GormTemperatureCheckStore) CreateTemperatureCheck(ctx context.Context, check *models.TemperatureCheckModel) error {
	return s.db.WithContext(ctx).Create(check).Error
}

type TemperatureCheckService struct {
	store TemperatureCheckStore
	loc   *time.Location
	now   func() time.Time
}

// NewTemperatureCheckService creates a new instance of TemperatureCheckService
func NewTemperatureCheckService(store TemperatureCheckStore, loc *time.Location) *TemperatureCheckService {
	if loc == nil {
		loc = time.UTC
	}
	return &TemperatureCheckService{store: store, loc: loc, now: time.Now}
}

// List retrieves every temperature check
func (s *TemperatureCheckService) List(ctx context.Context) ([]models.TemperatureCheckModel, error) {
	return s.store.ListTemperatureChecks(ctx)
}

// Add stores a reading taken by who. Checks are never edited afterwards.
func (s *TemperatureCheckService) Add(ctx context.Context, who models.Identity, req models.AddTemperatureCheckRequest) (models.TemperatureCheckModel, error) {
	trailerID := strings.TrimSpace(req.TrailerID)
	if trailerID == "" {
		return models.TemperatureCheckModel{}, fmt.Errorf("%w: trailer_id is required", ErrValidation)
	}
	if req.ClrTemp == nil && req.FzrTemp == nil {
		return models.TemperatureCheckModel{}, fmt.Errorf("%w: at least one of clr_temp or fzr_temp is required", ErrValidation)
	}

	check := models.TemperatureCheckModel{
		ID:        strings.TrimSpace(req.ID),
		TrailerID: trailerID,
		ClrTemp:   req.ClrTemp,
		FzrTemp:   req.FzrTemp,
		Timestamp: s.now().In(s.loc).Format(time.RFC3339),
		UserID:    who.UserID,
		Email:     who.Email,
	}
	if check.ID == "" {
		check.ID = uuid.NewString()
	}
	if check.Email == "" {
		check.Email = strings.TrimSpace(req.Email)
	}

	if err := s.store.CreateTemperatureCheck(ctx, &check); err != nil {
		return models.TemperatureCheckModel{}, fmt.Errorf("add temperature check: %w", err)
	}
	log.Printf("[TEMP_CHECKS] Trailer %s checked by %s", check.TrailerID, check.Email)
	return check, nil
}
