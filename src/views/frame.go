package views

import (
	"math"
	"strings"
	"time"
)

// Layouts accepted for stored instants. Zone-less layouts are read in the frame's location,
// which matches how the dashboard has always displayed them.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 03:04:05 PM MST",
	"2006-01-02 03:04:05 PM",
	"2006-01-02",
}

// Frame fixes the instant and time zone a set of views is derived against.
type Frame struct {
	Now      time.Time
	Location *time.Location
}

func NewFrame(now time.Time, loc *time.Location) Frame {
	if loc == nil {
		loc = time.UTC
	}
	return Frame{Now: now.In(loc), Location: loc}
}

// Parse reads a stored instant. Missing and malformed values report ok=false.
func (f Frame) Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, raw, f.loc()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MinutesSince returns whole minutes elapsed since raw, rounded, never negative.
// Missing or unparsable references yield 0.
func (f Frame) MinutesSince(raw string) int {
	t, ok := f.Parse(raw)
	if !ok {
		return 0
	}
	minutes := math.Round(f.Now.Sub(t).Minutes())
	if minutes < 0 {
		return 0
	}
	return int(minutes)
}

// StartOfDay parses a calendar day (or instant) and returns its first instant in the frame's zone.
func (f Frame) StartOfDay(raw string) (time.Time, bool) {
	t, ok := f.Parse(raw)
	if !ok {
		return time.Time{}, false
	}
	t = t.In(f.loc())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, f.loc()), true
}

// EndOfDay parses a calendar day (or instant) and returns its last instant in the frame's zone.
func (f Frame) EndOfDay(raw string) (time.Time, bool) {
	start, ok := f.StartOfDay(raw)
	if !ok {
		return time.Time{}, false
	}
	return start.AddDate(0, 0, 1).Add(-time.Nanosecond), true
}

func (f Frame) loc() *time.Location {
	if f.Location == nil {
		return time.UTC
	}
	return f.Location
}
