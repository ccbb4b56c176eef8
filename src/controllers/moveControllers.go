package controllers

import (
	"io"
	"net/http"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/SimpleYM/SimpleYM-Backend/src/services"
	"github.com/SimpleYM/SimpleYM-Backend/src/views"
	"github.com/gin-gonic/gin"
)

type MoveController struct {
	moves *services.MoveService
	feed  *services.MoveFeed
	clock *services.DashboardService
}

func NewMoveController(moves *services.MoveService, feed *services.MoveFeed, clock *services.DashboardService) *MoveController {
	return &MoveController{moves: moves, feed: feed, clock: clock}
}

// NotifyReady handles POST requests reporting a trailer ready to move
func (c *MoveController) NotifyReady(ctx *gin.Context) {
	who, ok := caller(ctx)
	if !ok {
		return
	}
	var req models.NotifyReadyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	move, err := c.moves.NotifyReady(ctx.Request.Context(), who, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, move)
}

// PickUp handles POST requests claiming an open move for the caller
func (c *MoveController) PickUp(ctx *gin.Context) {
	who, ok := caller(ctx)
	if !ok {
		return
	}
	move, err := c.moves.PickUp(ctx.Request.Context(), who, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, move)
}

// Cancel handles POST requests releasing a picked-up move
func (c *MoveController) Cancel(ctx *gin.Context) {
	who, ok := caller(ctx)
	if !ok {
		return
	}
	move, err := c.moves.Cancel(ctx.Request.Context(), who, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, move)
}

// Complete handles POST requests dropping a picked-up move at its destination
func (c *MoveController) Complete(ctx *gin.Context) {
	who, ok := caller(ctx)
	if !ok {
		return
	}
	var req models.CompleteMoveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	move, err := c.moves.Complete(ctx.Request.Context(), who, ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, move)
}

// OpenMoves handles GET requests for the open move queue and the caller's claim
func (c *MoveController) OpenMoves(ctx *gin.Context) {
	who, ok := caller(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, c.openMovesEvent(who, c.feed.Snapshot()))
}

// StreamMoves handles GET requests subscribing to the open move queue over server-sent events
func (c *MoveController) StreamMoves(ctx *gin.Context) {
	who, ok := caller(ctx)
	if !ok {
		return
	}
	snapshots, cancel := c.feed.Subscribe()
	defer cancel()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Request.Context().Done():
			return false
		case snap, open := <-snapshots:
			if !open {
				return false
			}
			ctx.SSEvent("moves", c.openMovesEvent(who, snap))
			return true
		}
	})
}

// UpdateTimestamps handles PUT requests stamping one lifecycle event of a move
func (c *MoveController) UpdateTimestamps(ctx *gin.Context) {
	id, event := ctx.Param("id"), ctx.Query("event")
	if err := c.moves.StampEvent(ctx.Request.Context(), id, event); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Successfully updated " + event + " timestamp for move " + id + "."})
}

func (c *MoveController) openMovesEvent(who models.Identity, snap services.MoveSnapshot) gin.H {
	claimed, _ := c.moves.ClaimedMove(who.UserID)
	body := gin.H{
		"moves":           views.OpenMoves(snap.Moves, c.clock.Frame()),
		"claimed_move_id": claimed,
	}
	if snap.Err != nil {
		body["error"] = snap.Err.Error()
	}
	return body
}
