package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/iamasit07/connectfour/internal/logging"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a client and verifies it with a ping. Callers decide whether
// an unreachable Redis is fatal; cmd/api falls back to logging events.
func Connect(ctx context.Context, opts Options, logger *zap.Logger) (*redis.Client, error) {
	logger = logging.OrNop(logger).Named("redis")

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", opts.Addr, err)
	}

	logger.Info("connected", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return client, nil
}
