package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/SimpleYM/SimpleYM-Backend/src/metrics"
	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/google/uuid"
)

// TrailerLookup reports whether a trailer is registered in the trailer master.
type TrailerLookup interface {
	TrailerExists(ctx context.Context, trailerID string) (bool, error)
}

// MoveService runs the move state machine. Claims are per session: one user holds at most
// one picked-up move through this process, but nothing stops two users claiming the same
// move; the later write wins. holders maps a move id back to the user claiming it.
type MoveService struct {
	store        MoveStore
	trailers     TrailerLookup
	loc          *time.Location
	now          func() time.Time
	minTrailerID int
	onChange     func()

	mu      sync.Mutex
	claims  map[string]string
	holders map[string]string
}

// NewMoveService creates a new instance of MoveService
func NewMoveService(store MoveStore, trailers TrailerLookup, loc *time.Location, minTrailerID int) *MoveService {
	if loc == nil {
		loc = time.UTC
	}
	return &MoveService{
		store:        store,
		trailers:     trailers,
		loc:          loc,
		now:          time.Now,
		minTrailerID: minTrailerID,
		onChange:     func() {},
		claims:       make(map[string]string),
		holders:      make(map[string]string),
	}
}

// OnChange registers the callback run after every successful move write.
func (s *MoveService) OnChange(fn func()) {
	s.onChange = fn
}

// ClaimedMove returns the id of the move the user currently holds, if any.
func (s *MoveService) ClaimedMove(userID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.claims[userID]
	return id, ok
}

// NotifyReady records a trailer as ready to be moved out of a warehouse door.
func (s *MoveService) NotifyReady(ctx context.Context, who models.Identity, req models.NotifyReadyRequest) (models.MoveModel, error) {
	req.TrailerID = strings.TrimSpace(req.TrailerID)
	req.FromWhYard = strings.TrimSpace(req.FromWhYard)
	req.FromDoor = strings.TrimSpace(req.FromDoor)
	if req.TrailerID == "" || req.FromWhYard == "" || req.FromDoor == "" {
		return models.MoveModel{}, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if utf8.RuneCountInString(req.TrailerID) < s.minTrailerID {
		return models.MoveModel{}, fmt.Errorf("%w: trailer id must be at least %d characters", ErrValidation, s.minTrailerID)
	}
	exists, err := s.trailers.TrailerExists(ctx, req.TrailerID)
	if err != nil {
		return models.MoveModel{}, fmt.Errorf("notify ready: validate trailer: %w", err)
	}
	if !exists {
		return models.MoveModel{}, fmt.Errorf("%w: trailer %s is not in the trailer master", ErrValidation, req.TrailerID)
	}

	utc, local := s.stamps()
	move := models.MoveModel{
		ID:           uuid.NewString(),
		TrailerID:    req.TrailerID,
		FromWhYard:   req.FromWhYard,
		FromDoor:     req.FromDoor,
		Status:       string(models.MoveStatusOpen),
		Timestamp:    utc,
		TimestampEST: local,
	}
	if err := s.store.CreateMove(ctx, &move); err != nil {
		metrics.MoveTransitions.WithLabelValues("notify_ready", "error").Inc()
		return models.MoveModel{}, fmt.Errorf("notify ready: %w", err)
	}
	metrics.MoveTransitions.WithLabelValues("notify_ready", "ok").Inc()
	log.Printf("[MOVES] Trailer %s ready at %s door %s (reported by %s)", move.TrailerID, move.FromWhYard, move.FromDoor, who.Email)
	s.onChange()
	return move, nil
}

// PickUp moves an open move to picked up on behalf of who.
func (s *MoveService) PickUp(ctx context.Context, who models.Identity, id string) (models.MoveModel, error) {
	if err := s.checkClaim(ctx, who); err != nil {
		return models.MoveModel{}, err
	}

	move, err := s.store.GetMove(ctx, id)
	if err != nil {
		return models.MoveModel{}, err
	}
	if move.NormalizedStatus() != models.MoveStatusOpen {
		metrics.MoveTransitions.WithLabelValues("pick_up", "illegal").Inc()
		return models.MoveModel{}, fmt.Errorf("%w: cannot pick up a %s move", ErrIllegalTransition, move.NormalizedStatus())
	}

	s.mu.Lock()
	if _, held := s.claims[who.UserID]; held {
		s.mu.Unlock()
		return models.MoveModel{}, ErrClaimHeld
	}
	s.claims[who.UserID] = id
	s.holders[id] = who.UserID
	s.mu.Unlock()

	utc, _ := s.stamps()
	fields := map[string]any{
		"status":       string(models.MoveStatusPickedUp),
		"picked_up_at": utc,
		"user_id":      who.UserID,
		"email":        who.Email,
	}
	if err := s.store.UpdateMove(ctx, id, fields); err != nil {
		metrics.MoveTransitions.WithLabelValues("pick_up", "error").Inc()
		return models.MoveModel{}, fmt.Errorf("pick up %s: %w", id, err)
	}
	metrics.MoveTransitions.WithLabelValues("pick_up", "ok").Inc()
	s.onChange()

	move.Status = string(models.MoveStatusPickedUp)
	move.PickedUpAt = utc
	move.UserID = who.UserID
	move.Email = who.Email
	return move, nil
}

// Cancel returns the caller's picked-up move to open and releases their claim. A move that
// is still open, as after a failed pick-up write, only has the caller's claim dropped. A
// claim on a move that was completed or deleted elsewhere is dropped before the error.
func (s *MoveService) Cancel(ctx context.Context, who models.Identity, id string) (models.MoveModel, error) {
	move, err := s.store.GetMove(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.release(who.UserID, id)
		}
		return models.MoveModel{}, err
	}

	switch move.NormalizedStatus() {
	case models.MoveStatusOpen:
		s.release(who.UserID, id)
		metrics.MoveTransitions.WithLabelValues("cancel", "released").Inc()
		return move, nil
	case models.MoveStatusPickedUp:
		if claimed, _ := s.ClaimedMove(who.UserID); claimed != id && move.UserID != who.UserID {
			metrics.MoveTransitions.WithLabelValues("cancel", "not_claimant").Inc()
			return models.MoveModel{}, fmt.Errorf("%w: move %s was picked up by someone else", ErrIllegalTransition, id)
		}
	default:
		s.release(who.UserID, id)
		metrics.MoveTransitions.WithLabelValues("cancel", "illegal").Inc()
		return models.MoveModel{}, fmt.Errorf("%w: cannot cancel a %s move", ErrIllegalTransition, move.NormalizedStatus())
	}

	fields := map[string]any{
		"status":       string(models.MoveStatusOpen),
		"picked_up_at": "",
		"user_id":      "",
		"email":        "",
	}
	if err := s.store.UpdateMove(ctx, id, fields); err != nil {
		metrics.MoveTransitions.WithLabelValues("cancel", "error").Inc()
		return models.MoveModel{}, fmt.Errorf("cancel %s: %w", id, err)
	}
	s.releaseMove(id)
	s.release(who.UserID, id)
	metrics.MoveTransitions.WithLabelValues("cancel", "ok").Inc()
	s.onChange()

	move.Status = string(models.MoveStatusOpen)
	move.PickedUpAt = ""
	move.UserID = ""
	move.Email = ""
	return move, nil
}

// Complete drops a picked-up move at its destination.
func (s *MoveService) Complete(ctx context.Context, who models.Identity, id string, req models.CompleteMoveRequest) (models.MoveModel, error) {
	req.ToLocation = strings.TrimSpace(req.ToLocation)
	req.ToDoor = strings.TrimSpace(req.ToDoor)
	if req.ToLocation == "" || req.ToDoor == "" {
		metrics.MoveTransitions.WithLabelValues("complete", "invalid").Inc()
		return models.MoveModel{}, fmt.Errorf("%w: to_location and to_door are required", ErrValidation)
	}

	move, err := s.store.GetMove(ctx, id)
	if err != nil {
		return models.MoveModel{}, err
	}
	if move.NormalizedStatus() != models.MoveStatusPickedUp {
		metrics.MoveTransitions.WithLabelValues("complete", "illegal").Inc()
		return models.MoveModel{}, fmt.Errorf("%w: cannot complete a %s move", ErrIllegalTransition, move.NormalizedStatus())
	}

	utc, _ := s.stamps()
	fields := map[string]any{
		"status":       string(models.MoveStatusCompleted),
		"completed_at": utc,
		"to_location":  req.ToLocation,
		"to_door":      req.ToDoor,
		"user_id":      who.UserID,
		"email":        who.Email,
	}
	if err := s.store.UpdateMove(ctx, id, fields); err != nil {
		metrics.MoveTransitions.WithLabelValues("complete", "error").Inc()
		return models.MoveModel{}, fmt.Errorf("complete %s: %w", id, err)
	}
	s.releaseMove(id)
	s.release(who.UserID, id)
	metrics.MoveTransitions.WithLabelValues("complete", "ok").Inc()
	s.onChange()

	move.Status = string(models.MoveStatusCompleted)
	move.CompletedAt = utc
	move.ToLocation = req.ToLocation
	move.ToDoor = req.ToDoor
	move.UserID = who.UserID
	move.Email = who.Email
	return move, nil
}

// StampEvent records the current time against one lifecycle event of a move.
func (s *MoveService) StampEvent(ctx context.Context, id, event string) error {
	utc, local := s.stamps()
	var fields map[string]any
	switch event {
	case "created":
		fields = map[string]any{"timestamp": utc, "timestamp_est": local}
	case "picked_up":
		fields = map[string]any{"picked_up_at": utc}
	case "completed":
		fields = map[string]any{"completed_at": utc}
	default:
		return fmt.Errorf("%w: invalid event type %q", ErrValidation, event)
	}
	if err := s.store.UpdateMove(ctx, id, fields); err != nil {
		return fmt.Errorf("stamp %s on %s: %w", event, id, err)
	}
	s.onChange()
	return nil
}

// checkClaim rejects a caller who already holds a claim. A claim on a move that has since
// been completed, deleted or taken over by another user is dropped instead. A claim on a
// move that is still open is kept: the pick-up write failed and the caller must cancel.
func (s *MoveService) checkClaim(ctx context.Context, who models.Identity) error {
	held, ok := s.ClaimedMove(who.UserID)
	if !ok {
		return nil
	}
	move, err := s.store.GetMove(ctx, held)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return fmt.Errorf("check claim on %s: %w", held, err)
	case move.NormalizedStatus() == models.MoveStatusOpen,
		move.NormalizedStatus() == models.MoveStatusPickedUp && move.UserID == who.UserID:
		metrics.MoveTransitions.WithLabelValues("pick_up", "claim_held").Inc()
		return ErrClaimHeld
	}
	log.Printf("[MOVES] Dropping stale claim of %s on %s", who.UserID, held)
	s.release(who.UserID, held)
	return nil
}

// release drops the user's claim if it is on the given move.
func (s *MoveService) release(userID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claims[userID] == id {
		delete(s.claims, userID)
		if s.holders[id] == userID {
			delete(s.holders, id)
		}
	}
}

// releaseMove drops whichever claim is on the given move.
func (s *MoveService) releaseMove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID, ok := s.holders[id]; ok {
		delete(s.holders, id)
		if s.claims[userID] == id {
			delete(s.claims, userID)
		}
	}
}

func (s *MoveService) stamps() (utc, local string) {
	now := s.now()
	return now.UTC().Format(time.RFC3339), now.In(s.loc).Format(time.RFC3339)
}
