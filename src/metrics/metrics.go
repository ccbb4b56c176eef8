package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MoveTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "simpleym",
		Name:      "move_transitions_total",
		Help:      "Move state machine requests by transition and outcome.",
	}, []string{"transition", "outcome"})

	FeedRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "simpleym",
		Name:      "move_feed_refreshes_total",
		Help:      "Move snapshot reloads by result.",
	}, []string{"result"})

	RecordsImported = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "simpleym",
		Name:      "records_imported_total",
		Help:      "Rows stored from spreadsheet uploads by collection.",
	}, []string{"collection"})

	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "simpleym",
		Name:      "dashboard_exports_total",
		Help:      "Workbooks generated from dashboard views.",
	}, []string{"view"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
