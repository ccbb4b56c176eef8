package views

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Data"

// Column declares one exported field.
type Column[T any] struct {
	Header string
	Value  func(T) any
}

var OpenMoveColumns = []Column[OpenMove]{
	{"trailer_id", func(m OpenMove) any { return m.TrailerID }},
	{"status", func(m OpenMove) any { return m.Status }},
	{"from_wh_yard", func(m OpenMove) any { return m.FromWhYard }},
	{"from_door", func(m OpenMove) any { return m.FromDoor }},
	{"timestamp", func(m OpenMove) any { return m.Timestamp }},
	{"minutes_since_submission", func(m OpenMove) any { return m.MinutesSinceSubmission }},
	{"picked_up_at", func(m OpenMove) any { return m.PickedUpAt }},
	{"email", func(m OpenMove) any { return m.Email }},
}

var RecentMoveColumns = []Column[RecentMove]{
	{"trailer_id", func(m RecentMove) any { return m.TrailerID }},
	{"from_wh_yard", func(m RecentMove) any { return m.FromWhYard }},
	{"from_door", func(m RecentMove) any { return m.FromDoor }},
	{"to_location", func(m RecentMove) any { return m.ToLocation }},
	{"to_door", func(m RecentMove) any { return m.ToDoor }},
	{"timestamp", func(m RecentMove) any { return m.Timestamp }},
	{"picked_up_at", func(m RecentMove) any { return m.PickedUpAt }},
	{"completed_at", func(m RecentMove) any { return m.CompletedAt }},
	{"minutes_since_completion", func(m RecentMove) any { return m.MinutesSinceCompletion }},
	{"user_id", func(m RecentMove) any { return m.UserID }},
	{"email", func(m RecentMove) any { return m.Email }},
}

var TemperatureCheckColumns = []Column[models.TemperatureCheckModel]{
	{"id", func(c models.TemperatureCheckModel) any { return c.ID }},
	{"trailer_id", func(c models.TemperatureCheckModel) any { return c.TrailerID }},
	{"clr_temp", func(c models.TemperatureCheckModel) any { return floatCell(c.ClrTemp) }},
	{"fzr_temp", func(c models.TemperatureCheckModel) any { return floatCell(c.FzrTemp) }},
	{"timestamp", func(c models.TemperatureCheckModel) any { return c.Timestamp }},
	{"user_id", func(c models.TemperatureCheckModel) any { return c.UserID }},
	{"email", func(c models.TemperatureCheckModel) any { return c.Email }},
}

var LastKnownLocationColumns = []Column[LastKnownLocation]{
	{"trailer_id", func(l LastKnownLocation) any { return l.TrailerID }},
	{"last_location", func(l LastKnownLocation) any { return l.LastLocation }},
	{"timestamp", func(l LastKnownLocation) any { return l.Timestamp }},
	{"from_location", func(l LastKnownLocation) any { return l.FromLocation }},
	{"from_door", func(l LastKnownLocation) any { return l.FromDoor }},
	{"to_door", func(l LastKnownLocation) any { return l.ToDoor }},
	{"status", func(l LastKnownLocation) any { return l.Status }},
}

// Export writes rows into a single-sheet workbook with a header row.
func Export[T any](cols []Column[T], rows []T) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), exportSheet); err != nil {
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.Header
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("export: write header: %w", err)
	}

	for i, r := range rows {
		values := make([]any, len(cols))
		for j, c := range cols {
			values[j] = c.Value(r)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("export: row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("export: write row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename names an export after its view and the instant it was taken.
func ExportFilename(v View, at time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", strings.ReplaceAll(string(v), "-", "_"), at.Format("2006-01-02_15-04"))
}

func floatCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
