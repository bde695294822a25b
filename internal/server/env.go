package server

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stepwise/pkg/cache"
	"github.com/matzehuels/stepwise/pkg/store"
)

// Environment variables that select persistent backends.
const (
	EnvRedisURL = "STEPWISE_REDIS_URL"
	EnvMongoURI = "STEPWISE_MONGO_URI"
	EnvMongoDB  = "STEPWISE_MONGO_DB"
)

// BackendsFromEnv opens the cache and store named by the environment.
// Unset variables leave the corresponding field nil, which New replaces
// with an in-memory default.
func BackendsFromEnv(ctx context.Context, logger *log.Logger) (cache.Cache, store.Store, error) {
	var c cache.Cache
	if url := os.Getenv(EnvRedisURL); url != "" {
		rc, err := cache.NewRedisCache(ctx, url, "stepwise:")
		if err != nil {
			return nil, nil, fmt.Errorf("redis cache: %w", err)
		}
		logger.Info("using redis cache")
		c = rc
	}

	var st store.Store
	if uri := os.Getenv(EnvMongoURI); uri != "" {
		ms, err := store.NewMongoStore(ctx, uri, os.Getenv(EnvMongoDB))
		if err != nil {
			if c != nil {
				_ = c.Close()
			}
			return nil, nil, fmt.Errorf("mongo store: %w", err)
		}
		logger.Info("using mongo trace store")
		st = ms
	}
	return c, st, nil
}
