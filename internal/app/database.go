package app

import (
	"context"
	"fmt"

	"github.com/avc/storefront/internal/repository/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// initDatabase создает пул соединений с базой данных и выполняет миграции.
// Пустой URI отключает журнал оплат.
func initDatabase(ctx context.Context, databaseURI string, logger *zap.Logger) (*pgxpool.Pool, error) {
	if databaseURI == "" {
		logger.Warn("DATABASE_URI is not set, checkout journal disabled")
		return nil, nil
	}

	dbPool, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("connected to database")

	if err := postgres.RunMigrations(ctx, dbPool, logger); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("migrations completed successfully")

	return dbPool, nil
}

// initRedis подключается к Redis для снимка каталога.
// Пустой адрес отключает снимок.
func initRedis(ctx context.Context, addr string, logger *zap.Logger) (*redis.Client, error) {
	if addr == "" {
		logger.Warn("REDIS_ADDRESS is not set, catalog snapshot disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	logger.Info("connected to redis", zap.String("address", addr))

	return rdb, nil
}

func pingRedis(rdb *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
