package views

import (
	"sort"
	"strconv"
	"time"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
)

const unknownLocation = "Unknown"

type OpenMove struct {
	models.MoveModel
	MinutesSinceSubmission int `json:"minutes_since_submission"`
}

type RecentMove struct {
	models.MoveModel
	MinutesSinceCompletion int `json:"minutes_since_completion"`
}

type LastKnownLocation struct {
	TrailerID    string `json:"trailer_id"`
	LastLocation string `json:"last_location"`
	Timestamp    string `json:"timestamp"`
	FromLocation string `json:"from_location"`
	FromDoor     string `json:"from_door"`
	ToDoor       string `json:"to_door"`
	Status       string `json:"status"`
	LastSeenAt   string `json:"last_seen_at"`
}

type TrailerStatistics struct {
	TotalTrailersWithMoves int `json:"total_trailers_with_moves"`
	TrailersInMotion       int `json:"trailers_in_motion"`
	TrailersAtRest         int `json:"trailers_at_rest"`
}

// OpenMoves returns unresolved moves, oldest first.
func OpenMoves(snapshot []models.MoveModel, f Frame) []OpenMove {
	out := make([]OpenMove, 0, len(snapshot))
	for _, m := range snapshot {
		switch m.NormalizedStatus() {
		case models.MoveStatusOpen, models.MoveStatusPickedUp:
			out = append(out, OpenMove{MoveModel: m, MinutesSinceSubmission: f.MinutesSince(m.Timestamp)})
		}
	}
	sortByInstant(out, func(m OpenMove) string { return m.Timestamp }, f, false)
	return out
}

// RecentMoves returns completed moves, most recently completed first.
func RecentMoves(snapshot []models.MoveModel, f Frame) []RecentMove {
	out := make([]RecentMove, 0, len(snapshot))
	for _, m := range snapshot {
		if m.NormalizedStatus() != models.MoveStatusCompleted {
			continue
		}
		out = append(out, RecentMove{MoveModel: m, MinutesSinceCompletion: f.MinutesSince(completionReference(m))})
	}
	sortByInstant(out, func(m RecentMove) string { return completionReference(m.MoveModel) }, f, true)
	return out
}

// LastKnownLocations emits one row per trailer from its latest move by timestamp.
// Equal timestamps keep the move seen first; a parsable timestamp always beats a malformed one.
func LastKnownLocations(snapshot []models.MoveModel, f Frame) []LastKnownLocation {
	type latest struct {
		move   models.MoveModel
		at     time.Time
		parsed bool
	}
	byTrailer := make(map[string]*latest)
	order := make([]string, 0)

	for _, m := range snapshot {
		if m.TrailerID == "" {
			continue
		}
		at, ok := f.Parse(m.Timestamp)
		cur, seen := byTrailer[m.TrailerID]
		if !seen {
			byTrailer[m.TrailerID] = &latest{move: m, at: at, parsed: ok}
			order = append(order, m.TrailerID)
			continue
		}
		if ok && (!cur.parsed || at.After(cur.at)) {
			*cur = latest{move: m, at: at, parsed: ok}
		}
	}

	out := make([]LastKnownLocation, 0, len(order))
	for _, id := range order {
		m := byTrailer[id].move
		out = append(out, LastKnownLocation{
			TrailerID:    m.TrailerID,
			LastLocation: firstNonEmpty(m.ToLocation, m.FromWhYard, unknownLocation),
			Timestamp:    m.Timestamp,
			FromLocation: m.FromWhYard,
			FromDoor:     m.FromDoor,
			ToDoor:       m.ToDoor,
			Status:       m.Status,
			LastSeenAt:   m.Timestamp,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return trailerIDLess(out[i].TrailerID, out[j].TrailerID) })
	return out
}

// Statistics classifies each trailer by the status of its latest move,
// ranked by completion time falling back to creation time.
func Statistics(snapshot []models.MoveModel, f Frame) TrailerStatistics {
	type latest struct {
		status models.MoveStatus
		at     time.Time
		parsed bool
	}
	byTrailer := make(map[string]*latest)
	for _, m := range snapshot {
		if m.TrailerID == "" {
			continue
		}
		at, ok := f.Parse(completionReference(m))
		cur, seen := byTrailer[m.TrailerID]
		if !seen {
			byTrailer[m.TrailerID] = &latest{status: m.NormalizedStatus(), at: at, parsed: ok}
			continue
		}
		if ok && (!cur.parsed || at.After(cur.at)) {
			*cur = latest{status: m.NormalizedStatus(), at: at, parsed: ok}
		}
	}

	stats := TrailerStatistics{TotalTrailersWithMoves: len(byTrailer)}
	for _, t := range byTrailer {
		switch t.status {
		case models.MoveStatusOpen, models.MoveStatusPickedUp:
			stats.TrailersInMotion++
		case models.MoveStatusCompleted:
			stats.TrailersAtRest++
		}
	}
	return stats
}

// TemperatureChecks orders checks newest first.
func TemperatureChecks(checks []models.TemperatureCheckModel, f Frame) []models.TemperatureCheckModel {
	out := make([]models.TemperatureCheckModel, len(checks))
	copy(out, checks)
	sortByInstant(out, func(c models.TemperatureCheckModel) string { return c.Timestamp }, f, true)
	return out
}

func completionReference(m models.MoveModel) string {
	if m.CompletedAt != "" {
		return m.CompletedAt
	}
	return m.Timestamp
}

// sortByInstant orders rows by a stored instant; rows whose instant cannot be read keep
// their relative order after all readable ones.
func sortByInstant[T any](rows []T, key func(T) string, f Frame, desc bool) {
	type keyed struct {
		at time.Time
		ok bool
	}
	keys := make([]keyed, len(rows))
	for i, r := range rows {
		t, ok := f.Parse(key(r))
		keys[i] = keyed{at: t, ok: ok}
	}
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.ok != kb.ok {
			return ka.ok
		}
		if !ka.ok {
			return false
		}
		if desc {
			return ka.at.After(kb.at)
		}
		return ka.at.Before(kb.at)
	})
	sorted := make([]T, len(rows))
	for i, j := range idx {
		sorted[i] = rows[j]
	}
	copy(rows, sorted)
}

// trailerIDLess puts numeric ids first in numeric order, then the rest lexically.
func trailerIDLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
