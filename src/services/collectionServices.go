package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/google/uuid"
)

type CollectionService struct {
	store    RecordStore
	loc      *time.Location
	now      func() time.Time
	onChange []func(collection string)
}

// NewCollectionService creates a new instance of CollectionService
func NewCollectionService(store RecordStore, loc *time.Location) *CollectionService {
	if loc == nil {
		loc = time.UTC
	}
	return &CollectionService{store: store, loc: loc, now: time.Now}
}

// OnChange registers a callback run after every successful write to a collection.
func (s *CollectionService) OnChange(fn func(collection string)) {
	s.onChange = append(s.onChange, fn)
}

// Fetch retrieves every record of a collection
func (s *CollectionService) Fetch(ctx context.Context, name string) ([]map[string]any, error) {
	c, err := LookupCollection(name)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.List(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return rows, nil
}

// Exists reports whether a record with the given id is stored in the collection
func (s *CollectionService) Exists(ctx context.Context, name, id string) (bool, error) {
	c, err := LookupCollection(name)
	if err != nil {
		return false, err
	}
	return s.store.Exists(ctx, c, id)
}

// TrailerExists reports whether the trailer master holds the given trailer id
func (s *CollectionService) TrailerExists(ctx context.Context, trailerID string) (bool, error) {
	return s.Exists(ctx, "trailer_master", trailerID)
}

// AddRecords inserts records, assigning ids and creation stamps where missing.
// It returns the ids of the stored records.
func (s *CollectionService) AddRecords(ctx context.Context, name string, data []map[string]any) ([]string, error) {
	c, err := LookupCollection(name)
	if err != nil {
		return nil, err
	}
	if !c.Insertable {
		return nil, fmt.Errorf("%w: %s", ErrReadOnly, name)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no records to add to %s", ErrValidation, name)
	}

	utc, local := s.stamps()
	rows := make([]map[string]any, 0, len(data))
	ids := make([]string, 0, len(data))
	for i, raw := range data {
		row, dropped, err := c.Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		if len(dropped) > 0 {
			log.Printf("[RECORDS] %s: ignoring unknown fields %v", name, dropped)
		}
		if id, _ := row["id"].(string); id == "" {
			row["id"] = uuid.NewString()
		}
		setIfMissing(c, row, "timestamp", utc)
		setIfMissing(c, row, "timestamp_est", local)
		setIfMissing(c, row, "created_at", local)
		if c.Name == "moves" {
			if status, _ := row["status"].(string); status == "" {
				row["status"] = string(models.MoveStatusOpen)
			}
		}
		rows = append(rows, row)
		ids = append(ids, row["id"].(string))
	}

	if err := s.store.Insert(ctx, c, rows); err != nil {
		return nil, fmt.Errorf("add to %s: %w", name, err)
	}
	log.Printf("[RECORDS] Added %d records to %s", len(rows), name)
	s.changed(name)
	return ids, nil
}

// Update applies a partial update to one record and stamps the update time
func (s *CollectionService) Update(ctx context.Context, name, id string, data map[string]any) error {
	c, err := LookupCollection(name)
	if err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: record id is required for updates", ErrValidation)
	}
	row, dropped, err := c.Normalize(data)
	if err != nil {
		return err
	}
	if len(dropped) > 0 {
		log.Printf("[RECORDS] %s: ignoring unknown fields %v", name, dropped)
	}
	delete(row, "id")
	if len(row) == 0 {
		return fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if raw, ok := row["role"].(string); ok && c.Name == "user_master" {
		role, ok := models.ParseRole(raw)
		if !ok {
			return fmt.Errorf("%w: unknown role %q", ErrValidation, raw)
		}
		row["role"] = string(role)
	}

	utc, local := s.stamps()
	if c.HasField("updated_at") {
		row["updated_at"] = utc
	}
	if c.HasField("updated_at_est") {
		row["updated_at_est"] = local
	}

	if err := s.store.Update(ctx, c, id, row); err != nil {
		return fmt.Errorf("update %s: %w", name, err)
	}
	s.changed(name)
	return nil
}

// UpdateRecord updates the single record carried by a bulk payload
func (s *CollectionService) UpdateRecord(ctx context.Context, req models.RecordRequest) error {
	if req.Collection == "" || len(req.Data) == 0 {
		return fmt.Errorf("%w: invalid data or collection name", ErrValidation)
	}
	if len(req.Data) != 1 {
		return fmt.Errorf("%w: can only update one record at a time", ErrValidation)
	}
	id := fmt.Sprint(req.Data[0]["id"])
	if req.Data[0]["id"] == nil {
		id = ""
	}
	return s.Update(ctx, req.Collection, id, req.Data[0])
}

// Delete removes one record from a collection
func (s *CollectionService) Delete(ctx context.Context, name, id string) error {
	c, err := LookupCollection(name)
	if err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: record id is required", ErrValidation)
	}
	if err := s.store.Delete(ctx, c, id); err != nil {
		return fmt.Errorf("delete from %s: %w", name, err)
	}
	log.Printf("[RECORDS] Deleted %s from %s", id, name)
	s.changed(name)
	return nil
}

func (s *CollectionService) stamps() (utc, local string) {
	now := s.now()
	return now.UTC().Format(time.RFC3339), now.In(s.loc).Format(time.RFC3339)
}

func (s *CollectionService) changed(name string) {
	for _, fn := range s.onChange {
		fn(name)
	}
}

func setIfMissing(c Collection, row map[string]any, field, value string) {
	if !c.HasField(field) {
		return
	}
	if v, _ := row[field].(string); v == "" {
		row[field] = value
	}
}
