package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"gorm.io/gorm"
)

// MoveStore is the persistence the move feed and state machine depend on.
type MoveStore interface {
	ListMoves(ctx context.Context) ([]models.MoveModel, error)
	GetMove(ctx context.Context, id string) (models.MoveModel, error)
	CreateMove(ctx context.Context, move *models.MoveModel) error
	UpdateMove(ctx context.Context, id string, fields map[string]any) error
}

type GormMoveStore struct {
	db *gorm.DB
}

func NewGormMoveStore(db *gorm.DB) *GormMoveStore {
	return &GormMoveStore{db: db}
}

// ListMoves retrieves all moves ordered by id so snapshots are deterministic
func (s *GormMoveStore) ListMoves(ctx context.Context) ([]models.MoveModel, error) {
	var moves []models.MoveModel
	if err := s.db.WithContext(ctx).Order("id").Find(&moves).Error; err != nil {
		return nil, err
	}
	return moves, nil
}

func (s *GormMoveStore) GetMove(ctx context.Context, id string) (models.MoveModel, error) {
	var move models.MoveModel
	if err := s.db.WithContext(ctx).First(&move, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return move, fmt.Errorf("move %s: %w", id, ErrNotFound)
		}
		return move, err
	}
	return move, nil
}

func (s *GormMoveStore) CreateMove(ctx context.Context, move *models.MoveModel) error {
	return s.db.WithContext(ctx).Create(move).Error
}

// UpdateMove writes fields with a map so cleared values are stored as empty
func (s *GormMoveStore) UpdateMove(ctx context.Context, id string, fields map[string]any) error {
	result := s.db.WithContext(ctx).Model(&models.MoveModel{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("move %s: %w", id, ErrNotFound)
	}
	return nil
}
