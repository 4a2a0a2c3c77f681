package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"quiz-widget/internal/app"
	"quiz-widget/internal/config"
	"quiz-widget/internal/infra/memory"
	"quiz-widget/internal/infra/postgres"
	infraredis "quiz-widget/internal/infra/redis"
	"quiz-widget/internal/infra/sqlite"
)

func loadConfig(path string) (config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// openStore returns the high score store for the configured driver and a func
// releasing its connections.
func openStore(ctx context.Context, cfg config.Config, fallbackDriver string) (app.KeyValueStore, func(), error) {
	driver := cfg.StoreDriver(fallbackDriver)
	logger.Debug("opening high score store", zap.String("driver", driver))

	switch driver {
	case config.DriverMemory:
		return memory.NewStore(), func() {}, nil

	case config.DriverSQLite:
		path := cfg.Store.SQLite.Path
		if path == "" {
			path = sqlite.DefaultPath
		}
		store, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case config.DriverRedis:
		if cfg.Redis.Addr == "" {
			return nil, nil, fmt.Errorf("redis addr not configured")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := infraredis.NewStore(client, cfg.Redis.Prefix)
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		return store, func() { _ = client.Close() }, nil

	case config.DriverPostgres:
		if cfg.Postgres.URL == "" {
			return nil, nil, fmt.Errorf("postgres url not configured")
		}
		if _, err := postgres.Migrate(ctx, cfg.Postgres.URL); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
