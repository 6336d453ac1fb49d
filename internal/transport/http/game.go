package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/internal/service/game"
	"github.com/iamasit07/connectfour/internal/transport/http/middleware"
	"github.com/iamasit07/connectfour/pkg/httputil"
)

// GameService is the part of game.Service the handlers call.
type GameService interface {
	Open(ctx context.Context, req game.OpenRequest) (domain.Snapshot, error)
	Join(ctx context.Context, id domain.GameID, playerID string) (domain.Snapshot, error)
	Move(ctx context.Context, id domain.GameID, playerID string, column int) (domain.Snapshot, error)
	Resign(ctx context.Context, id domain.GameID, playerID string) (domain.Snapshot, error)
	Abort(ctx context.Context, id domain.GameID, playerID string) (domain.Snapshot, error)
	Get(ctx context.Context, id domain.GameID) (domain.Snapshot, error)
}

type GameHandler struct {
	service GameService
}

func NewGameHandler(service GameService) *GameHandler {
	return &GameHandler{service: service}
}

type openGameRequest struct {
	Width           int `json:"width"`
	Height          int `json:"height"`
	RequiredMatches int `json:"requiredMatches"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

func (h *GameHandler) Open(c *gin.Context) {
	var req openGameRequest
	// an empty body opens a game with the default board
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error(), Kind: domain.KindInvalidArgument})
			return
		}
	}

	snapshot, err := h.service.Open(c.Request.Context(), game.OpenRequest{
		PlayerID:        middleware.PlayerID(c),
		Width:           req.Width,
		Height:          req.Height,
		RequiredMatches: req.RequiredMatches,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, snapshot)
}

func (h *GameHandler) Get(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	snapshot, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *GameHandler) Join(c *gin.Context) {
	h.command(c, h.service.Join)
}

func (h *GameHandler) Resign(c *gin.Context) {
	h.command(c, h.service.Resign)
}

func (h *GameHandler) Abort(c *gin.Context) {
	h.command(c, h.service.Abort)
}

func (h *GameHandler) Move(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, httputil.ErrorResponse{Error: "column is required", Kind: domain.KindInvalidArgument})
		return
	}

	snapshot, err := h.service.Move(c.Request.Context(), id, middleware.PlayerID(c), *req.Column)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *GameHandler) command(c *gin.Context, run func(context.Context, domain.GameID, string) (domain.Snapshot, error)) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	snapshot, err := run(c.Request.Context(), id, middleware.PlayerID(c))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func gameID(c *gin.Context) (domain.GameID, bool) {
	id, err := domain.ParseGameID(c.Param("id"))
	if err != nil {
		httputil.WriteError(c, err)
		return "", false
	}
	return id, true
}
