package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/SimpleYM/SimpleYM-Backend/src/services"
	"github.com/SimpleYM/SimpleYM-Backend/src/views"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DashboardController struct {
	service *services.DashboardService
}

func NewDashboardController(service *services.DashboardService) *DashboardController {
	return &DashboardController{service: service}
}

// LastKnownLocations handles GET requests for the latest location of every trailer
func (c *DashboardController) LastKnownLocations(ctx *gin.Context) {
	rows := c.service.LastKnownLocations()
	ctx.JSON(http.StatusOK, gin.H{
		"last_known_locations": rows,
		"count":                len(rows),
		"generated_at":         c.service.GeneratedAt(),
	})
}

// TrailerStatistics handles GET requests for trailer motion counts
func (c *DashboardController) TrailerStatistics(ctx *gin.Context) {
	stats := c.service.Statistics()
	ctx.JSON(http.StatusOK, gin.H{
		"total_trailers_with_moves": stats.TotalTrailersWithMoves,
		"trailers_in_motion":        stats.TrailersInMotion,
		"trailers_at_rest":          stats.TrailersAtRest,
		"generated_at":              c.service.GeneratedAt(),
	})
}

// DashboardData handles GET requests for the dashboard summary
func (c *DashboardController) DashboardData(ctx *gin.Context) {
	data, err := c.service.Summary(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, data)
}

// View handles GET requests for one filtered page of a dashboard view
func (c *DashboardController) View(ctx *gin.Context) {
	v, ok := views.ParseView(ctx.Param("view"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Unknown view " + ctx.Param("view")})
		return
	}
	state := stateFromQuery(ctx, v)
	if raw := ctx.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "page must be a whole number"})
			return
		}
		state = state.WithPage(v, n)
	}
	out, err := c.service.View(ctx.Request.Context(), state)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, out)
}

// Export handles GET requests downloading every filtered row of a view as a workbook
func (c *DashboardController) Export(ctx *gin.Context) {
	v, ok := views.ParseView(ctx.Param("view"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Unknown view " + ctx.Param("view")})
		return
	}
	data, filename, err := c.service.Export(ctx.Request.Context(), stateFromQuery(ctx, v))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, xlsxContentType, data)
}

// stateFromQuery folds the view's filter fields from the query string into a view state,
// accepting both snake_case and camelCase names.
func stateFromQuery(ctx *gin.Context, v views.View) views.ViewState {
	state := views.NewViewState().WithView(v)
	for _, f := range views.FilterFields(v) {
		value := ctx.Query(f.Name)
		if value == "" {
			value = ctx.Query(camelCase(f.Name))
		}
		state = state.WithFilter(v, f.Name, strings.TrimSpace(value))
	}
	return state
}

func camelCase(name string) string {
	parts := strings.Split(name, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
