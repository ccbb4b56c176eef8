package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// RecordStore persists untyped rows for the registered collections.
type RecordStore interface {
	List(ctx context.Context, c Collection) ([]map[string]any, error)
	Exists(ctx context.Context, c Collection, id string) (bool, error)
	Insert(ctx context.Context, c Collection, rows []map[string]any) error
	Update(ctx context.Context, c Collection, id string, fields map[string]any) error
	Delete(ctx context.Context, c Collection, id string) error
}

type GormRecordStore struct {
	db *gorm.DB
}

// NewGormRecordStore creates a RecordStore backed by gorm
func NewGormRecordStore(db *gorm.DB) *GormRecordStore {
	return &GormRecordStore{db: db}
}

// List retrieves every row of a collection, restricted to its published columns
func (s *GormRecordStore) List(ctx context.Context, c Collection) ([]map[string]any, error) {
	var rows []map[string]any
	result := s.db.WithContext(ctx).Model(c.Model()).Select(c.Columns()).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

func (s *GormRecordStore) Exists(ctx context.Context, c Collection, id string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(c.Model()).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Insert creates all rows in one statement
func (s *GormRecordStore) Insert(ctx context.Context, c Collection, rows []map[string]any) error {
	return s.db.WithContext(ctx).Model(c.Model()).Create(&rows).Error
}

// Update applies fields to the row with the given id
func (s *GormRecordStore) Update(ctx context.Context, c Collection, id string, fields map[string]any) error {
	result := s.db.WithContext(ctx).Model(c.Model()).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", c.Name, id, ErrNotFound)
	}
	return nil
}

// Delete removes the row with the given id
func (s *GormRecordStore) Delete(ctx context.Context, c Collection, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(c.Model())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", c.Name, id, ErrNotFound)
	}
	return nil
}
