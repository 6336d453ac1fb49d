package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connectfour/internal/config"
	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/internal/event"
	"github.com/iamasit07/connectfour/internal/logging"
	"github.com/iamasit07/connectfour/internal/repository/redis"
	"github.com/iamasit07/connectfour/internal/repository/sqlstore"
	"github.com/iamasit07/connectfour/internal/service/game"
	transportHttp "github.com/iamasit07/connectfour/internal/transport/http"
	"github.com/iamasit07/connectfour/internal/transport/websocket"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Database and migrations
	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:             cfg.DatabaseDriver,
		URL:                cfg.DatabaseURL,
		MaxOpenConns:       cfg.DBMaxOpenConns,
		MaxIdleConns:       cfg.DBMaxIdleConns,
		ConnMaxLifetimeMin: cfg.DBConnMaxLifetimeMin,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database ready", zap.String("driver", cfg.DatabaseDriver))

	// 2. Event publishing. Events are always logged; with Redis they are
	// also published for the live feed, which otherwise answers 503.
	eventLog := event.NewLog(logger.Named("events"))
	var (
		publisher domain.DomainEventPublisher = eventLog
		feed      event.Feed
	)
	if cfg.RedisEnabled {
		client, err := redis.Connect(ctx, redis.Options{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			logger.Warn("redis unavailable, falling back to logged events", zap.Error(err))
		} else {
			defer client.Close()
			publisher = event.Fanout{redis.NewEventPublisher(client), eventLog}
			feed = redis.NewEventFeed(client)
		}
	}

	// 3. Repository and service
	repo, err := sqlstore.NewGameRepo(db, sqlstore.GameRepoOptions{
		Driver:           cfg.DatabaseDriver,
		Publisher:        publisher,
		VersionCacheSize: cfg.VersionCacheSize,
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	service := game.NewService(repo, game.Options{
		Width:           cfg.BoardWidth,
		Height:          cfg.BoardHeight,
		RequiredMatches: cfg.RequiredMatches,
		MaxAttempts:     cfg.SaveMaxAttempts,
		Logger:          logger,
	})

	// 4. Transport
	if !cfg.LogDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}
	connections := websocket.NewConnectionManager()
	router := transportHttp.NewRouter(transportHttp.RouterOptions{
		Games:          transportHttp.NewGameHandler(service),
		Feed:           websocket.NewHandler(service, feed, connections, cfg.AllowedOrigins, logger),
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty, players are identified by the X-Player-Id header")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}
	logger.Info("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	connections.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}
