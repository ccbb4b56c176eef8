package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/SimpleYM/SimpleYM-Backend/src/metrics"
	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/SimpleYM/SimpleYM-Backend/src/views"
)

const dashboardSummaryLimit = 10

type moveSnapshotter interface {
	Snapshot() MoveSnapshot
}

type yardRoster interface {
	YardUserIDs(ctx context.Context) ([]string, error)
}

// ViewPage is one page of a filtered dashboard view.
type ViewPage struct {
	View       views.View   `json:"view"`
	Filters    views.Filter `json:"filters"`
	Items      any          `json:"items"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	TotalItems int          `json:"total_items"`
	FeedError  string       `json:"feed_error,omitempty"`
}

type DashboardData struct {
	OpenMoves      []views.OpenMove               `json:"open_moves"`
	CompletedMoves []views.RecentMove             `json:"completed_moves"`
	ActiveUsers    []string                       `json:"active_users"`
	TempChecks     []models.TemperatureCheckModel `json:"temp_checks"`
}

type DashboardService struct {
	feed    moveSnapshotter
	temps   TemperatureCheckStore
	yard    yardRoster
	archive ExportArchive
	loc     *time.Location
	now     func() time.Time
}

// NewDashboardService creates a new instance of DashboardService. archive may be nil.
func NewDashboardService(feed moveSnapshotter, temps TemperatureCheckStore, yard yardRoster, archive ExportArchive, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{feed: feed, temps: temps, yard: yard, archive: archive, loc: loc, now: time.Now}
}

// Frame is the clock and zone views are derived against for this request.
func (s *DashboardService) Frame() views.Frame {
	return views.NewFrame(s.now(), s.loc)
}

// GeneratedAt formats the current instant in the configured zone.
func (s *DashboardService) GeneratedAt() string {
	return s.now().In(s.loc).Format(time.RFC3339)
}

// View derives, filters and paginates the state's active view.
func (s *DashboardService) View(ctx context.Context, state views.ViewState) (ViewPage, error) {
	v, flt, page := state.Active(), state.Filter(state.Active()), state.Page(state.Active())
	f := s.Frame()
	if err := flt.Validate(v, f); err != nil {
		return ViewPage{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	snap := s.feed.Snapshot()

	var out ViewPage
	switch v {
	case views.ViewOpenMoves:
		out = pageOf(v, flt, views.FilterOpenMoves(views.OpenMoves(snap.Moves, f), flt, f), page)
	case views.ViewRecentMoves:
		out = pageOf(v, flt, views.FilterRecentMoves(views.RecentMoves(snap.Moves, f), flt, f), page)
	case views.ViewLastKnownLocations:
		out = pageOf(v, flt, views.FilterLastKnownLocations(views.LastKnownLocations(snap.Moves, f), flt, f), page)
	case views.ViewTempChecks:
		checks, err := s.temps.ListTemperatureChecks(ctx)
		if err != nil {
			return ViewPage{}, fmt.Errorf("view %s: %w", v, err)
		}
		out = pageOf(v, flt, views.FilterTemperatureChecks(views.TemperatureChecks(checks, f), flt, f), page)
	default:
		return ViewPage{}, fmt.Errorf("%w: unknown view %q", ErrValidation, v)
	}
	if snap.Err != nil && v != views.ViewTempChecks {
		out.FeedError = snap.Err.Error()
	}
	return out, nil
}

// Export renders every filtered row of a view into a workbook and archives a copy when an
// archive is configured. Archive failures are logged, never returned. Paging is ignored.
func (s *DashboardService) Export(ctx context.Context, state views.ViewState) ([]byte, string, error) {
	v, flt := state.Active(), state.Filter(state.Active())
	f := s.Frame()
	if err := flt.Validate(v, f); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	snap := s.feed.Snapshot()

	var (
		data []byte
		err  error
	)
	switch v {
	case views.ViewOpenMoves:
		data, err = views.Export(views.OpenMoveColumns, views.FilterOpenMoves(views.OpenMoves(snap.Moves, f), flt, f))
	case views.ViewRecentMoves:
		data, err = views.Export(views.RecentMoveColumns, views.FilterRecentMoves(views.RecentMoves(snap.Moves, f), flt, f))
	case views.ViewLastKnownLocations:
		data, err = views.Export(views.LastKnownLocationColumns, views.FilterLastKnownLocations(views.LastKnownLocations(snap.Moves, f), flt, f))
	case views.ViewTempChecks:
		checks, listErr := s.temps.ListTemperatureChecks(ctx)
		if listErr != nil {
			return nil, "", fmt.Errorf("export %s: %w", v, listErr)
		}
		data, err = views.Export(views.TemperatureCheckColumns, views.FilterTemperatureChecks(views.TemperatureChecks(checks, f), flt, f))
	default:
		return nil, "", fmt.Errorf("%w: unknown view %q", ErrValidation, v)
	}
	if err != nil {
		return nil, "", err
	}

	filename := views.ExportFilename(v, f.Now)
	metrics.Exports.WithLabelValues(string(v)).Inc()
	if s.archive != nil {
		if err := s.archive.Archive(ctx, filename, data); err != nil {
			log.Printf("[EXPORT_ARCHIVE] %v", err)
		}
	}
	return data, filename, nil
}

// LastKnownLocations returns one row per trailer from the current snapshot.
func (s *DashboardService) LastKnownLocations() []views.LastKnownLocation {
	return views.LastKnownLocations(s.feed.Snapshot().Moves, s.Frame())
}

// Statistics counts trailers by the status of their latest move.
func (s *DashboardService) Statistics() views.TrailerStatistics {
	return views.Statistics(s.feed.Snapshot().Moves, s.Frame())
}

// Summary assembles the landing dashboard: all open moves, the latest completed moves and
// temperature checks, and the yard users.
func (s *DashboardService) Summary(ctx context.Context) (DashboardData, error) {
	f := s.Frame()
	moves := s.feed.Snapshot().Moves

	checks, err := s.temps.ListTemperatureChecks(ctx)
	if err != nil {
		return DashboardData{}, fmt.Errorf("dashboard: %w", err)
	}
	yard, err := s.yard.YardUserIDs(ctx)
	if err != nil {
		return DashboardData{}, fmt.Errorf("dashboard: %w", err)
	}

	return DashboardData{
		OpenMoves:      views.OpenMoves(moves, f),
		CompletedMoves: limit(views.RecentMoves(moves, f), dashboardSummaryLimit),
		ActiveUsers:    yard,
		TempChecks:     limit(views.TemperatureChecks(checks, f), dashboardSummaryLimit),
	}, nil
}

func pageOf[T any](v views.View, flt views.Filter, rows []T, n int) ViewPage {
	p := views.Paginate(rows, n)
	if flt == nil {
		flt = views.Filter{}
	}
	return ViewPage{
		View:       v,
		Filters:    flt,
		Items:      p.Items,
		Page:       p.Page,
		TotalPages: p.TotalPages,
		TotalItems: p.TotalItems,
	}
}

func limit[T any](rows []T, n int) []T {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
