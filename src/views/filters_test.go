package views

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
)

func openMovesFixture() []OpenMove {
	return []OpenMove{
		{MoveModel: models.MoveModel{ID: "1", TrailerID: "A1", FromWhYard: "FRZ", FromDoor: "12", Timestamp: ts(t0)}, MinutesSinceSubmission: 60},
		{MoveModel: models.MoveModel{ID: "2", TrailerID: "B22", FromWhYard: "CLR", FromDoor: "3", Timestamp: ts(t0.Add(-24 * time.Hour))}, MinutesSinceSubmission: 1500},
		{MoveModel: models.MoveModel{ID: "3", TrailerID: "a100", FromWhYard: "frz", FromDoor: "1", Timestamp: ts(t0.Add(50 * time.Minute))}, MinutesSinceSubmission: 10},
		{MoveModel: models.MoveModel{ID: "4", TrailerID: "C7", FromWhYard: "YARD", Timestamp: ""}, MinutesSinceSubmission: 0},
	}
}

func TestEmptyFilterIsIdentity(t *testing.T) {
	rows := openMovesFixture()
	f := utcFrame()

	for _, flt := range []Filter{nil, {}, {FieldTrailerID: "", FieldStartDate: ""}} {
		got := FilterOpenMoves(rows, flt, f)
		if !reflect.DeepEqual(got, rows) {
			t.Errorf("filter %v changed the rows: %v", flt, ids(got, openID))
		}
	}
}

func TestFilterIsConjunctionOfPredicates(t *testing.T) {
	rows := openMovesFixture()
	f := utcFrame()

	byTrailer := FilterOpenMoves(rows, Filter{FieldTrailerID: "a1"}, f)
	byWarehouse := FilterOpenMoves(rows, Filter{FieldFromWarehouse: "FRZ"}, f)
	both := FilterOpenMoves(rows, Filter{FieldTrailerID: "a1", FieldFromWarehouse: "FRZ"}, f)

	inWarehouse := make(map[string]bool)
	for _, m := range byWarehouse {
		inWarehouse[m.ID] = true
	}
	var intersection []string
	for _, m := range byTrailer {
		if inWarehouse[m.ID] {
			intersection = append(intersection, m.ID)
		}
	}

	equalIDs(t, ids(both, openID), intersection)
	equalIDs(t, ids(both, openID), []string{"1", "3"})
}

func TestTrailerAndStartDateFilter(t *testing.T) {
	day := t0.Format("2006-01-02")
	rows := []OpenMove{
		{MoveModel: models.MoveModel{ID: "before", TrailerID: "A1", Timestamp: ts(t0.AddDate(0, 0, -1))}},
		{MoveModel: models.MoveModel{ID: "on", TrailerID: "A1", Timestamp: ts(t0)}},
		{MoveModel: models.MoveModel{ID: "other", TrailerID: "B2", Timestamp: ts(t0)}},
	}

	got := FilterOpenMoves(rows, Filter{FieldTrailerID: "A", FieldStartDate: day}, utcFrame())

	equalIDs(t, ids(got, openID), []string{"on"})
}

func TestDayRangeInFrameZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	f := NewFrame(t0, ny)
	rows := []OpenMove{
		// 22:00 on 2024-03-01 in New York.
		{MoveModel: models.MoveModel{ID: "late-evening", Timestamp: "2024-03-02T03:00:00Z"}},
		// 00:30 on 2024-03-02 in New York.
		{MoveModel: models.MoveModel{ID: "next-day", Timestamp: "2024-03-02T05:30:00Z"}},
		{MoveModel: models.MoveModel{ID: "last-instant", Timestamp: "2024-03-01T23:59:59"}},
	}

	got := FilterOpenMoves(rows, Filter{FieldEndDate: "2024-03-01"}, f)

	equalIDs(t, ids(got, openID), []string{"late-evening", "last-instant"})
}

func TestRecordsWithoutTimestampPassDateFilters(t *testing.T) {
	rows := openMovesFixture()

	got := FilterOpenMoves(rows, Filter{FieldStartDate: "2030-01-01"}, utcFrame())

	equalIDs(t, ids(got, openID), []string{"4"})
}

func TestRelativeTimeKeepsOlderMoves(t *testing.T) {
	got := FilterOpenMoves(openMovesFixture(), Filter{FieldRelativeTime: "60"}, utcFrame())

	equalIDs(t, ids(got, openID), []string{"1", "2"})
}

func TestFilterRecentMoves(t *testing.T) {
	rows := []RecentMove{
		{MoveModel: models.MoveModel{ID: "1", TrailerID: "A1", FromWhYard: "FRZ", ToLocation: "CLR", UserID: "uid-77", Timestamp: ts(t0), CompletedAt: ts(t0.Add(10 * time.Minute))}},
		{MoveModel: models.MoveModel{ID: "2", TrailerID: "A2", FromWhYard: "FRZ", ToLocation: "SEAS", Email: "sam@yard.test", Timestamp: ts(t0), CompletedAt: ts(t0.Add(40 * time.Minute))}},
		{MoveModel: models.MoveModel{ID: "3", TrailerID: "A3", FromWhYard: "CLR", ToLocation: "clr", Email: "uid-77@yard.test", Timestamp: ts(t0)}},
	}
	f := utcFrame()

	equalIDs(t, ids(FilterRecentMoves(rows, Filter{FieldToWarehouse: "CLR"}, f), recentID), []string{"1", "3"})
	equalIDs(t, ids(FilterRecentMoves(rows, Filter{FieldEmail: "uid-77"}, f), recentID), []string{"1", "3"})
	equalIDs(t, ids(FilterRecentMoves(rows, Filter{FieldCompletedAfter: ts(t0.Add(20 * time.Minute))}, f), recentID), []string{"2", "3"})
	equalIDs(t, ids(FilterRecentMoves(rows, Filter{FieldCompletedBefore: ts(t0.Add(10 * time.Minute))}, f), recentID), []string{"1", "3"})
}

func TestFilterTemperatureChecks(t *testing.T) {
	temp := func(v float64) *float64 { return &v }
	rows := []models.TemperatureCheckModel{
		{ID: "cold", TrailerID: "R1", ClrTemp: temp(-5), Timestamp: ts(t0)},
		{ID: "warm", TrailerID: "R2", ClrTemp: temp(40), Timestamp: ts(t0)},
		{ID: "freezer-only", TrailerID: "R3", FzrTemp: temp(-10), Timestamp: ts(t0)},
		{ID: "boundary", TrailerID: "R4", ClrTemp: temp(34), Email: "lee@yard.test", Timestamp: ts(t0)},
	}
	f := utcFrame()

	got := FilterTemperatureChecks(rows, Filter{FieldTemperatureMin: "0", FieldTemperatureMax: "34"}, f)
	equalIDs(t, ids(got, func(c models.TemperatureCheckModel) string { return c.ID }), []string{"freezer-only", "boundary"})

	got = FilterTemperatureChecks(rows, Filter{FieldTemperatureMin: " 0 ", FieldTemperatureMax: " 34 "}, f)
	equalIDs(t, ids(got, func(c models.TemperatureCheckModel) string { return c.ID }), []string{"freezer-only", "boundary"})

	got = FilterTemperatureChecks(rows, Filter{FieldEmail: "LEE"}, f)
	equalIDs(t, ids(got, func(c models.TemperatureCheckModel) string { return c.ID }), []string{"boundary"})
}

func TestFilterLastKnownLocations(t *testing.T) {
	rows := []LastKnownLocation{
		{TrailerID: "9", LastLocation: "Seasonal Yard", LastSeenAt: ts(t0)},
		{TrailerID: "10", LastLocation: "FRZ", LastSeenAt: ts(t0.Add(time.Hour))},
		{TrailerID: "11", LastLocation: "Unknown"},
	}
	f := utcFrame()

	equalIDs(t, ids(FilterLastKnownLocations(rows, Filter{FieldLocation: "seasonal"}, f),
		func(l LastKnownLocation) string { return l.TrailerID }), []string{"9"})
	equalIDs(t, ids(FilterLastKnownLocations(rows, Filter{FieldLastSeenAfter: ts(t0.Add(time.Minute))}, f),
		func(l LastKnownLocation) string { return l.TrailerID }), []string{"10", "11"})
}

func TestValidate(t *testing.T) {
	f := utcFrame()
	cases := []struct {
		name    string
		view    View
		filter  Filter
		wantErr bool
	}{
		{"empty", ViewOpenMoves, Filter{}, false},
		{"known fields", ViewRecentMoves, Filter{FieldEmail: "x", FieldCompletedAfter: "2024-03-01T10:00"}, false},
		{"blank value skipped", ViewTempChecks, Filter{FieldTemperatureMin: ""}, false},
		{"whitespace value skipped", ViewTempChecks, Filter{FieldTemperatureMin: "  "}, false},
		{"padded minutes", ViewOpenMoves, Filter{FieldRelativeTime: " 60 "}, false},
		{"padded number", ViewTempChecks, Filter{FieldTemperatureMax: " 34.5\t"}, false},
		{"unknown field", ViewOpenMoves, Filter{FieldLocation: "FRZ"}, true},
		{"bad minutes", ViewOpenMoves, Filter{FieldRelativeTime: "soon"}, true},
		{"bad number", ViewTempChecks, Filter{FieldTemperatureMax: "cold"}, true},
		{"bad date", ViewLastKnownLocations, Filter{FieldStartDate: "03/01/2024"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.filter.Validate(tc.view, f)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidFilter) {
					t.Fatalf("Validate() = %v, want ErrInvalidFilter", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestParseView(t *testing.T) {
	if v, ok := ParseView("temp-checks"); !ok || v != ViewTempChecks {
		t.Errorf("ParseView(temp-checks) = %q, %v", v, ok)
	}
	if _, ok := ParseView("moves"); ok {
		t.Error("ParseView accepted an unknown view")
	}
}
