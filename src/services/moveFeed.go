package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/SimpleYM/SimpleYM-Backend/src/metrics"
	"github.com/SimpleYM/SimpleYM-Backend/src/models"
)

// MoveSnapshot is one full copy of the move collection. Moves is never mutated after
// publication; Err carries a failed refresh, in which case Moves is the previous copy.
type MoveSnapshot struct {
	Moves     []models.MoveModel
	Err       error
	RefreshAt time.Time
}

type moveLister interface {
	ListMoves(ctx context.Context) ([]models.MoveModel, error)
}

// MoveFeed keeps the latest move snapshot and fans it out to subscribers.
type MoveFeed struct {
	store   moveLister
	trigger chan struct{}

	mu     sync.RWMutex
	snap   MoveSnapshot
	subs   map[int]chan MoveSnapshot
	nextID int
}

func NewMoveFeed(store moveLister) *MoveFeed {
	return &MoveFeed{
		store:   store,
		trigger: make(chan struct{}, 1),
		subs:    make(map[int]chan MoveSnapshot),
	}
}

// Snapshot returns the latest published snapshot.
func (f *MoveFeed) Snapshot() MoveSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snap
}

// Refresh reloads every move, replaces the snapshot and publishes it.
func (f *MoveFeed) Refresh(ctx context.Context) error {
	moves, err := f.store.ListMoves(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		log.Printf("[MOVE_FEED] Refresh failed: %v", err)
		metrics.FeedRefreshes.WithLabelValues("error").Inc()
		f.snap = MoveSnapshot{Moves: f.snap.Moves, Err: err, RefreshAt: time.Now()}
	} else {
		metrics.FeedRefreshes.WithLabelValues("ok").Inc()
		f.snap = MoveSnapshot{Moves: dedupeMoves(moves), RefreshAt: time.Now()}
	}
	for _, ch := range f.subs {
		publish(ch, f.snap)
	}
	return err
}

// Notify asks the run loop for a refresh. Calls made while one is pending are coalesced.
func (f *MoveFeed) Notify() {
	select {
	case f.trigger <- struct{}{}:
	default:
	}
}

// Subscribe registers for snapshots. The channel immediately holds the current snapshot
// and afterwards only ever the newest one. cancel is safe to call more than once.
func (f *MoveFeed) Subscribe() (<-chan MoveSnapshot, func()) {
	ch := make(chan MoveSnapshot, 1)

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = ch
	ch <- f.snap
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			close(ch)
			f.mu.Unlock()
		})
	}
	return ch, cancel
}

// Run serves refresh triggers until ctx is done. A positive poll also refreshes on that interval.
func (f *MoveFeed) Run(ctx context.Context, poll time.Duration) {
	var tick <-chan time.Time
	if poll > 0 {
		ticker := time.NewTicker(poll)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.trigger:
		case <-tick:
		}
		_ = f.Refresh(ctx)
	}
}

// publish replaces whatever the subscriber has not read yet with snap.
func publish(ch chan MoveSnapshot, snap MoveSnapshot) {
	select {
	case <-ch:
	default:
	}
	ch <- snap
}

func dedupeMoves(moves []models.MoveModel) []models.MoveModel {
	seen := make(map[string]bool, len(moves))
	out := make([]models.MoveModel, 0, len(moves))
	for _, m := range moves {
		if m.ID != "" && seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}
