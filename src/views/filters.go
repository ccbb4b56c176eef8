package views

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
)

type View string

const (
	ViewOpenMoves          View = "open-moves"
	ViewRecentMoves        View = "recent-moves"
	ViewTempChecks         View = "temp-checks"
	ViewLastKnownLocations View = "last-known-locations"
)

// ParseView maps a route segment onto a view.
func ParseView(raw string) (View, bool) {
	switch v := View(raw); v {
	case ViewOpenMoves, ViewRecentMoves, ViewTempChecks, ViewLastKnownLocations:
		return v, true
	}
	return "", false
}

// Filter holds the predicate values of one view keyed by field name. Empty values are inactive.
type Filter map[string]string

type FieldKind int

const (
	KindText FieldKind = iota
	KindSelect
	KindMinutes
	KindDay
	KindInstant
	KindNumber
)

type FilterField struct {
	Name string
	Kind FieldKind
}

const (
	FieldTrailerID       = "trailer_id"
	FieldFromWarehouse   = "from_warehouse"
	FieldFromDoor        = "from_door"
	FieldToWarehouse     = "to_warehouse"
	FieldEmail           = "email"
	FieldRelativeTime    = "relative_time"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
	FieldCompletedAfter  = "completed_after"
	FieldCompletedBefore = "completed_before"
	FieldTemperatureMin  = "temperature_min"
	FieldTemperatureMax  = "temperature_max"
	FieldLocation        = "location"
	FieldLastSeenAfter   = "last_seen_after"
	FieldLastSeenBefore  = "last_seen_before"
)

var filterFields = map[View][]FilterField{
	ViewOpenMoves: {
		{FieldTrailerID, KindText},
		{FieldFromWarehouse, KindSelect},
		{FieldFromDoor, KindText},
		{FieldRelativeTime, KindMinutes},
		{FieldStartDate, KindDay},
		{FieldEndDate, KindDay},
	},
	ViewRecentMoves: {
		{FieldTrailerID, KindText},
		{FieldFromWarehouse, KindSelect},
		{FieldToWarehouse, KindSelect},
		{FieldEmail, KindText},
		{FieldRelativeTime, KindMinutes},
		{FieldStartDate, KindDay},
		{FieldEndDate, KindDay},
		{FieldCompletedAfter, KindInstant},
		{FieldCompletedBefore, KindInstant},
	},
	ViewTempChecks: {
		{FieldTrailerID, KindText},
		{FieldEmail, KindText},
		{FieldStartDate, KindDay},
		{FieldEndDate, KindDay},
		{FieldTemperatureMin, KindNumber},
		{FieldTemperatureMax, KindNumber},
	},
	ViewLastKnownLocations: {
		{FieldTrailerID, KindText},
		{FieldLocation, KindText},
		{FieldStartDate, KindDay},
		{FieldEndDate, KindDay},
		{FieldLastSeenAfter, KindInstant},
		{FieldLastSeenBefore, KindInstant},
	},
}

var ErrInvalidFilter = errors.New("invalid filter")

// FilterFields lists the fields a view can be filtered on.
func FilterFields(v View) []FilterField { return filterFields[v] }

// Validate rejects unknown fields and values the predicates would have to ignore.
func (flt Filter) Validate(v View, f Frame) error {
	kinds := make(map[string]FieldKind)
	for _, fld := range filterFields[v] {
		kinds[fld.Name] = fld.Kind
	}
	for name, value := range flt {
		kind, ok := kinds[name]
		if !ok {
			return fmt.Errorf("%w: unknown field %q for %s", ErrInvalidFilter, name, v)
		}
		if value = strings.TrimSpace(value); value == "" {
			continue
		}
		switch kind {
		case KindMinutes:
			if _, err := strconv.Atoi(value); err != nil {
				return fmt.Errorf("%w: %s must be a whole number of minutes", ErrInvalidFilter, name)
			}
		case KindNumber:
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				return fmt.Errorf("%w: %s must be a number", ErrInvalidFilter, name)
			}
		case KindDay, KindInstant:
			if _, ok := f.Parse(value); !ok {
				return fmt.Errorf("%w: %s is not a date", ErrInvalidFilter, name)
			}
		}
	}
	return nil
}

// IsEmpty reports whether no predicate is active.
func (flt Filter) IsEmpty() bool {
	for _, v := range flt {
		if v != "" {
			return false
		}
	}
	return true
}

type predicate[T any] func(T) bool

func apply[T any](rows []T, preds []predicate[T]) []T {
	if len(preds) == 0 {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		keep := true
		for _, p := range preds {
			if !p(r) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}

// FilterOpenMoves keeps the open moves matching every active predicate.
func FilterOpenMoves(rows []OpenMove, flt Filter, f Frame) []OpenMove {
	var preds []predicate[OpenMove]
	if want := flt[FieldTrailerID]; want != "" {
		preds = append(preds, func(m OpenMove) bool { return containsFold(m.TrailerID, want) })
	}
	if want := flt[FieldFromWarehouse]; want != "" {
		preds = append(preds, func(m OpenMove) bool { return strings.EqualFold(m.FromWhYard, want) })
	}
	if want := flt[FieldFromDoor]; want != "" {
		preds = append(preds, func(m OpenMove) bool { return containsFold(m.FromDoor, want) })
	}
	if minutes, ok := atLeastMinutes(flt[FieldRelativeTime]); ok {
		preds = append(preds, func(m OpenMove) bool { return m.MinutesSinceSubmission >= minutes })
	}
	preds = appendDayRange(preds, flt, f, func(m OpenMove) string { return m.Timestamp })
	return apply(rows, preds)
}

// FilterRecentMoves keeps the completed moves matching every active predicate.
func FilterRecentMoves(rows []RecentMove, flt Filter, f Frame) []RecentMove {
	var preds []predicate[RecentMove]
	if want := flt[FieldTrailerID]; want != "" {
		preds = append(preds, func(m RecentMove) bool { return containsFold(m.TrailerID, want) })
	}
	if want := flt[FieldFromWarehouse]; want != "" {
		preds = append(preds, func(m RecentMove) bool { return strings.EqualFold(m.FromWhYard, want) })
	}
	if want := flt[FieldToWarehouse]; want != "" {
		preds = append(preds, func(m RecentMove) bool { return strings.EqualFold(m.ToLocation, want) })
	}
	if want := flt[FieldEmail]; want != "" {
		preds = append(preds, func(m RecentMove) bool {
			return containsFold(m.Email, want) || containsFold(m.UserID, want)
		})
	}
	if minutes, ok := atLeastMinutes(flt[FieldRelativeTime]); ok {
		preds = append(preds, func(m RecentMove) bool { return m.MinutesSinceCompletion >= minutes })
	}
	preds = appendDayRange(preds, flt, f, func(m RecentMove) string { return m.Timestamp })
	preds = appendInstantRange(preds, flt[FieldCompletedAfter], flt[FieldCompletedBefore], f,
		func(m RecentMove) string { return m.CompletedAt })
	return apply(rows, preds)
}

// FilterTemperatureChecks keeps the checks matching every active predicate.
// Thresholds compare against the cooler temperature.
func FilterTemperatureChecks(rows []models.TemperatureCheckModel, flt Filter, f Frame) []models.TemperatureCheckModel {
	var preds []predicate[models.TemperatureCheckModel]
	if want := flt[FieldTrailerID]; want != "" {
		preds = append(preds, func(c models.TemperatureCheckModel) bool { return containsFold(c.TrailerID, want) })
	}
	if want := flt[FieldEmail]; want != "" {
		preds = append(preds, func(c models.TemperatureCheckModel) bool {
			return containsFold(c.Email, want) || containsFold(c.UserID, want)
		})
	}
	preds = appendDayRange(preds, flt, f, func(c models.TemperatureCheckModel) string { return c.Timestamp })
	if lo, err := strconv.ParseFloat(strings.TrimSpace(flt[FieldTemperatureMin]), 64); err == nil {
		preds = append(preds, func(c models.TemperatureCheckModel) bool { return c.ClrTemp == nil || *c.ClrTemp >= lo })
	}
	if hi, err := strconv.ParseFloat(strings.TrimSpace(flt[FieldTemperatureMax]), 64); err == nil {
		preds = append(preds, func(c models.TemperatureCheckModel) bool { return c.ClrTemp == nil || *c.ClrTemp <= hi })
	}
	return apply(rows, preds)
}

// FilterLastKnownLocations keeps the location rows matching every active predicate.
func FilterLastKnownLocations(rows []LastKnownLocation, flt Filter, f Frame) []LastKnownLocation {
	var preds []predicate[LastKnownLocation]
	if want := flt[FieldTrailerID]; want != "" {
		preds = append(preds, func(l LastKnownLocation) bool { return containsFold(l.TrailerID, want) })
	}
	if want := flt[FieldLocation]; want != "" {
		preds = append(preds, func(l LastKnownLocation) bool { return containsFold(l.LastLocation, want) })
	}
	preds = appendDayRange(preds, flt, f, func(l LastKnownLocation) string { return l.Timestamp })
	preds = appendInstantRange(preds, flt[FieldLastSeenAfter], flt[FieldLastSeenBefore], f,
		func(l LastKnownLocation) string { return l.LastSeenAt })
	return apply(rows, preds)
}

// appendDayRange adds the start/end day predicates. Records without a readable instant pass.
func appendDayRange[T any](preds []predicate[T], flt Filter, f Frame, field func(T) string) []predicate[T] {
	if start, ok := f.StartOfDay(flt[FieldStartDate]); ok {
		preds = append(preds, func(r T) bool {
			t, ok := f.Parse(field(r))
			return !ok || !t.Before(start)
		})
	}
	if end, ok := f.EndOfDay(flt[FieldEndDate]); ok {
		preds = append(preds, func(r T) bool {
			t, ok := f.Parse(field(r))
			return !ok || !t.After(end)
		})
	}
	return preds
}

func appendInstantRange[T any](preds []predicate[T], after, before string, f Frame, field func(T) string) []predicate[T] {
	if lo, ok := f.Parse(after); ok {
		preds = append(preds, func(r T) bool {
			t, ok := f.Parse(field(r))
			return !ok || !t.Before(lo)
		})
	}
	if hi, ok := f.Parse(before); ok {
		preds = append(preds, func(r T) bool {
			t, ok := f.Parse(field(r))
			return !ok || !t.After(hi)
		})
	}
	return preds
}

func atLeastMinutes(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

func containsFold(value, want string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(want))
}
