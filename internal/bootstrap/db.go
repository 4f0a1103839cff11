package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/projects-console/config"
	"github.com/GoSim-25-26J-441/projects-console/internal/projects/repository"
	"github.com/GoSim-25-26J-441/projects-console/internal/storage/postgres"
)

const redisPingTO = 2 * time.Second

// OpenDB opens the configured SQL database.
func OpenDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	return db, nil
}

// OpenRedis connects to Redis and fails fast when it is unreachable.
func OpenRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, redisPingTO)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// OpenStore builds the repository for the configured backend. The returned
// close function releases its connections.
func OpenStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Repository, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Info("connected to database", zap.String("driver", cfg.Database.Driver))
		return repository.NewProjectRepository(db), func() { db.Close() }, nil

	case config.BackendRedis:
		client, err := OpenRedis(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		log.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
		return repository.NewRedisRepository(client, cfg.Redis.KeyPrefix), func() { client.Close() }, nil

	case config.BackendMemory:
		log.Info("using in-memory store; projects are lost on exit")
		return repository.NewMemoryRepository(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
