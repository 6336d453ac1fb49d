package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/internal/event"
	"github.com/iamasit07/connectfour/internal/logging"
	"github.com/iamasit07/connectfour/internal/transport/http/middleware"
	"github.com/iamasit07/connectfour/pkg/httputil"
	"go.uber.org/zap"
)

type Games interface {
	Get(ctx context.Context, id domain.GameID) (domain.Snapshot, error)
}

// Handler streams the domain events of one game to its participants.
type Handler struct {
	games       Games
	feed        event.Feed
	connections *ConnectionManager
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

// NewHandler builds the feed handler. A nil feed makes every request fail
// with 503, which is how cmd/api runs without Redis.
func NewHandler(games Games, feed event.Feed, connections *ConnectionManager, allowedOrigins []string, logger *zap.Logger) *Handler {
	return &Handler{
		games:       games,
		feed:        feed,
		connections: connections,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logging.OrNop(logger).Named("ws"),
	}
}

// HandleGameFeed checks the caller takes part in a game that can still
// change, subscribes and only then upgrades the connection.
func (h *Handler) HandleGameFeed(c *gin.Context) {
	if h.feed == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "live events are not available"})
		return
	}

	id, err := domain.ParseGameID(c.Param("id"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	playerID := middleware.PlayerID(c)

	snapshot, err := h.games.Get(c.Request.Context(), id)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	if err := canWatch(snapshot, playerID); err != nil {
		httputil.WriteError(c, err)
		return
	}

	// the subscription outlives the request context once upgraded
	sub, err := h.feed.Subscribe(context.WithoutCancel(c.Request.Context()), id)
	if err != nil {
		h.logger.Error("subscribe failed", zap.String("game_id", id.String()), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "live events are not available"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sub.Close()
		h.logger.Warn("upgrade error", zap.Error(err))
		return
	}

	cl := &client{conn: conn, gameID: id, playerID: playerID}
	h.connections.add(cl)
	h.logger.Info("feed opened", zap.String("game_id", id.String()), zap.String("player_id", playerID))

	go h.serve(cl, sub)
}

func canWatch(snapshot domain.Snapshot, playerID string) error {
	state := snapshot.State
	switch state.Kind {
	case domain.StateOpen:
		if state.Owner != nil && state.Owner.ID == playerID {
			return nil
		}
	case domain.StateRunning:
		for _, p := range state.Players {
			if p.ID == playerID {
				return nil
			}
		}
	default:
		return domain.ErrGameFinished
	}
	return domain.ErrPlayerNotFound
}

// serve forwards envelopes until the subscription ends, the game finishes or
// the client goes away. The read loop only exists to process pongs and close frames.
func (h *Handler) serve(cl *client, sub event.Subscription) {
	done := make(chan struct{})
	defer func() {
		sub.Close()
		h.connections.remove(cl)
		cl.conn.Close()
		h.logger.Info("feed closed", zap.String("game_id", cl.gameID.String()), zap.String("player_id", cl.playerID))
	}()

	// Set read deadline to detect stale connections
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go func() {
		defer close(done)
		for {
			if _, _, err := cl.conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Keep-alive pinger
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sub.Messages():
			if !ok {
				cl.close(websocket.CloseNormalClosure, "feed ended")
				return
			}
			if err := cl.write(websocket.TextMessage, msg); err != nil {
				return
			}
			if endsGame(msg) {
				cl.close(websocket.CloseNormalClosure, "game finished")
				return
			}
		case <-ticker.C:
			if err := cl.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func endsGame(msg []byte) bool {
	var envelope event.Envelope
	if err := json.Unmarshal(msg, &envelope); err != nil {
		return false
	}
	return event.IsTerminal(envelope.Name)
}
