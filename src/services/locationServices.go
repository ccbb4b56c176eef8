package services

import (
	"context"
	"log"
	"sort"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"gorm.io/gorm"
)

type LocationStore interface {
	ListLocations(ctx context.Context) ([]models.LocationModel, error)
}

type GormLocationStore struct {
	db *gorm.DB
}

func NewGormLocationStore(db *gorm.DB) *GormLocationStore {
	return &GormLocationStore{db: db}
}

func (s *GormLocationStore) ListLocations(ctx context.Context) ([]models.LocationModel, error) {
	var locations []models.LocationModel
	if err := s.db.WithContext(ctx).Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

type LocationService struct {
	store    LocationStore
	fallback []string
}

// NewLocationService creates a LocationService that serves fallback when the store has nothing
func NewLocationService(store LocationStore, fallback []string) *LocationService {
	return &LocationService{store: store, fallback: fallback}
}

// Names returns the sorted names of the stored locations, or the configured list when the
// store is empty or unreachable.
func (s *LocationService) Names(ctx context.Context) []string {
	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		log.Printf("[LOCATIONS] Error fetching locations, using configured list: %v", err)
		return s.fallbackNames()
	}

	names := make([]string, 0, len(locations))
	for _, l := range locations {
		if l.Name != "" && l.Active {
			names = append(names, l.Name)
		}
	}
	if len(names) == 0 {
		log.Println("[LOCATIONS] No locations stored, using configured list")
		return s.fallbackNames()
	}
	sort.Strings(names)
	return names
}

func (s *LocationService) fallbackNames() []string {
	out := make([]string, len(s.fallback))
	copy(out, s.fallback)
	return out
}
