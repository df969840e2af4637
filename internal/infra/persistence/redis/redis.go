// Package redis contains the concrete implementation of the token store using
// go-redis. Token expiry rides on Redis key TTLs, so no sweeper is needed.
package redis

import (
	"context"
	"log/slog"

	"passport/config"
	"passport/internal/domain/lifecycle"
	"passport/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the Redis client. The connection is verified on startup and
// closed on shutdown through the application lifecycle.
func New(params Params) (*redis.Client, error) {
	opts, err := redis.ParseURL(params.Config.Redis.URI)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse Redis URI")
	}

	client := redis.NewClient(opts)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			params.Logger.Info("Connected to Redis")

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
