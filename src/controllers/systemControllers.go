package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/SimpleYM/SimpleYM-Backend/src/services"
	"github.com/gin-gonic/gin"
)

// currentTimeLayout is also accepted by the dashboard when reading stored timestamps.
const currentTimeLayout = "2006-01-02 03:04:05 PM MST"

type SystemController struct {
	companyName string
	loc         *time.Location
	locations   *services.LocationService
	records     *services.CollectionService
	feed        *services.MoveFeed
	now         func() time.Time
}

func NewSystemController(companyName string, loc *time.Location, locations *services.LocationService, records *services.CollectionService, feed *services.MoveFeed) *SystemController {
	return &SystemController{
		companyName: companyName,
		loc:         loc,
		locations:   locations,
		records:     records,
		feed:        feed,
		now:         time.Now,
	}
}

// Root handles GET requests to the API root
func (c *SystemController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Welcome to " + c.companyName + " Yard Management Software"})
}

// Health handles GET requests for liveness and move feed freshness
func (c *SystemController) Health(ctx *gin.Context) {
	snap := c.feed.Snapshot()
	body := gin.H{"status": "ok", "moves": len(snap.Moves)}
	if !snap.RefreshAt.IsZero() {
		body["moves_refreshed_at"] = snap.RefreshAt.In(c.loc).Format(time.RFC3339)
	}
	if snap.Err != nil {
		body["status"] = "degraded"
		body["error"] = snap.Err.Error()
	}
	ctx.JSON(http.StatusOK, body)
}

// Locations handles GET requests for the yard location names
func (c *SystemController) Locations(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"locations": c.locations.Names(ctx.Request.Context())})
}

// CurrentTime handles GET requests for the yard's wall clock
func (c *SystemController) CurrentTime(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"current_time": c.now().In(c.loc).Format(currentTimeLayout)})
}

// ValidateTrailer handles GET requests checking a trailer id against the trailer master
func (c *SystemController) ValidateTrailer(ctx *gin.Context) {
	trailerID := strings.TrimSpace(ctx.Query("trailer_id"))
	if trailerID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "trailer_id is required"})
		return
	}
	exists, err := c.records.TrailerExists(ctx.Request.Context(), trailerID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"exists": exists})
}
