package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
)

type fakeMoveStore struct {
	mu        sync.Mutex
	moves     map[string]models.MoveModel
	calls     int
	listErr   error
	updateErr error
}

func newFakeMoveStore(moves ...models.MoveModel) *fakeMoveStore {
	s := &fakeMoveStore{moves: make(map[string]models.MoveModel)}
	for _, m := range moves {
		s.moves[m.ID] = m
	}
	return s
}

func (s *fakeMoveStore) ListMoves(ctx context.Context) ([]models.MoveModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]models.MoveModel, 0, len(s.moves))
	for _, m := range s.moves {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeMoveStore) GetMove(ctx context.Context, id string) (models.MoveModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	m, ok := s.moves[id]
	if !ok {
		return m, fmt.Errorf("move %s: %w", id, ErrNotFound)
	}
	return m, nil
}

func (s *fakeMoveStore) CreateMove(ctx context.Context, move *models.MoveModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.moves[move.ID] = *move
	return nil
}

func (s *fakeMoveStore) UpdateMove(ctx context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.updateErr != nil {
		return s.updateErr
	}
	m, ok := s.moves[id]
	if !ok {
		return fmt.Errorf("move %s: %w", id, ErrNotFound)
	}
	for k, v := range fields {
		str, _ := v.(string)
		switch k {
		case "status":
			m.Status = str
		case "picked_up_at":
			m.PickedUpAt = str
		case "completed_at":
			m.CompletedAt = str
		case "timestamp":
			m.Timestamp = str
		case "timestamp_est":
			m.TimestampEST = str
		case "to_location":
			m.ToLocation = str
		case "to_door":
			m.ToDoor = str
		case "user_id":
			m.UserID = str
		case "email":
			m.Email = str
		}
	}
	s.moves[id] = m
	return nil
}

func (s *fakeMoveStore) get(id string) models.MoveModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves[id]
}

func (s *fakeMoveStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeTrailers map[string]bool

func (f fakeTrailers) TrailerExists(ctx context.Context, trailerID string) (bool, error) {
	return f[trailerID], nil
}

type fakeRecordStore struct {
	rows      map[string][]map[string]any
	updates   map[string]map[string]any
	deleted   []string
	insertErr error
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{rows: make(map[string][]map[string]any), updates: make(map[string]map[string]any)}
}

func (s *fakeRecordStore) List(ctx context.Context, c Collection) ([]map[string]any, error) {
	return s.rows[c.Name], nil
}

func (s *fakeRecordStore) Exists(ctx context.Context, c Collection, id string) (bool, error) {
	for _, r := range s.rows[c.Name] {
		if r["id"] == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeRecordStore) Insert(ctx context.Context, c Collection, rows []map[string]any) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.rows[c.Name] = append(s.rows[c.Name], rows...)
	return nil
}

func (s *fakeRecordStore) Update(ctx context.Context, c Collection, id string, fields map[string]any) error {
	if ok, _ := s.Exists(ctx, c, id); !ok {
		return fmt.Errorf("%s %s: %w", c.Name, id, ErrNotFound)
	}
	s.updates[c.Name+"/"+id] = fields
	return nil
}

func (s *fakeRecordStore) Delete(ctx context.Context, c Collection, id string) error {
	if ok, _ := s.Exists(ctx, c, id); !ok {
		return fmt.Errorf("%s %s: %w", c.Name, id, ErrNotFound)
	}
	s.deleted = append(s.deleted, c.Name+"/"+id)
	return nil
}

type fakeTemperatureStore struct {
	checks []models.TemperatureCheckModel
}

func (s *fakeTemperatureStore) ListTemperatureChecks(ctx context.Context) ([]models.TemperatureCheckModel, error) {
	return s.checks, nil
}

func (s *fakeTemperatureStore) CreateTemperatureCheck(ctx context.Context, check *models.TemperatureCheckModel) error {
	s.checks = append(s.checks, *check)
	return nil
}

type fakeUserStore struct {
	users map[string]models.UserModel
}

func newFakeUserStore(users ...models.UserModel) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]models.UserModel)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindUserByEmail(ctx context.Context, email string) (models.UserModel, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.UserModel{}, fmt.Errorf("user %s: %w", email, ErrNotFound)
}

func (s *fakeUserStore) FindUserByID(ctx context.Context, id string) (models.UserModel, error) {
	u, ok := s.users[id]
	if !ok {
		return u, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return u, nil
}

func (s *fakeUserStore) CreateUser(ctx context.Context, user *models.UserModel) error {
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) ListUsersByRole(ctx context.Context, role models.Role) ([]models.UserModel, error) {
	var out []models.UserModel
	for _, u := range s.users {
		if u.Role == string(role) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
