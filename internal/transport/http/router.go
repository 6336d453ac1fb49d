package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connectfour/internal/logging"
	"github.com/iamasit07/connectfour/internal/transport/http/middleware"
	"github.com/iamasit07/connectfour/internal/transport/websocket"
	"go.uber.org/zap"
)

type RouterOptions struct {
	Games          *GameHandler
	Feed           *websocket.Handler
	JWTSecret      string
	AllowedOrigins []string
	Logger         *zap.Logger
}

func NewRouter(opts RouterOptions) *gin.Engine {
	log := logging.OrNop(opts.Logger).Named("http")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORSMiddleware(opts.AllowedOrigins, log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Protected Routes
	protected := router.Group("/")
	protected.Use(middleware.PlayerIdentity(opts.JWTSecret))
	{
		protected.POST("/api/games", opts.Games.Open)
		protected.GET("/api/games/:id", opts.Games.Get)
		protected.POST("/api/games/:id/join", opts.Games.Join)
		protected.POST("/api/games/:id/move", opts.Games.Move)
		protected.POST("/api/games/:id/resign", opts.Games.Resign)
		protected.POST("/api/games/:id/abort", opts.Games.Abort)

		if opts.Feed != nil {
			protected.GET("/ws/games/:id", opts.Feed.HandleGameFeed)
		}
	}

	return router
}
