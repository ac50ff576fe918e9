package guard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/beadreader/pkg/lifecycle"
)

// releaseScript deletes the key only while it still carries our token, so
// an expired and re-acquired slot is never freed by the previous holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type redisGuard struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func newRedis(cfg *Config, logger *slog.Logger) System {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &redisGuard{
		rdb:    rdb,
		prefix: cfg.Prefix,
		ttl:    cfg.TTLDuration(),
		logger: logger.With("system", "guard"),
	}
}

func (g *redisGuard) Acquire(ctx context.Context, key string) (Release, error) {
	k := g.prefix + key
	token := uuid.NewString()

	ok, err := g.rdb.SetNX(ctx, k, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !ok {
		return nil, ErrBusy
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := releaseScript.Run(context.Background(), g.rdb, []string{k}, token).Err(); err != nil {
				g.logger.Error("guard release failed", "key", key, "error", err)
			}
		})
	}, nil
}

func (g *redisGuard) Start(lc *lifecycle.Coordinator) error {
	g.logger.Info("starting guard", "backend", BackendRedis)

	lc.OnStartup(func() {
		pingCtx, cancel := context.WithTimeout(lc.Context(), 5*time.Second)
		defer cancel()

		if err := g.rdb.Ping(pingCtx).Err(); err != nil {
			g.logger.Error("redis ping failed", "error", err)
			return
		}

		g.logger.Info("redis connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		if err := g.rdb.Close(); err != nil {
			g.logger.Error("redis close failed", "error", err)
			return
		}

		g.logger.Info("redis connection closed")
	})

	return nil
}
