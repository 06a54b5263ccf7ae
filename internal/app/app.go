package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avc/storefront/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// janitorInterval период очистки неактивных сессий витрины
const janitorInterval = time.Minute

// App представляет приложение
type App struct {
	config *config.Config
	logger *zap.Logger
	db     *pgxpool.Pool
	redis  *redis.Client
	deps   *dependencies
	router *chi.Mux
	server *http.Server
}

// NewApp создает новое приложение
func NewApp() (*App, error) {
	ctx := context.Background()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализация логгера
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// Инициализация базы данных и миграции
	dbPool, err := initDatabase(ctx, cfg.DatabaseURI, logger)
	if err != nil {
		return nil, err
	}

	rdb, err := initRedis(ctx, cfg.RedisAddress, logger)
	if err != nil {
		closeDatabase(dbPool)
		return nil, err
	}

	// Инициализация зависимостей
	deps, err := initDependencies(cfg, dbPool, rdb, logger)
	if err != nil {
		closeDatabase(dbPool)
		closeRedis(rdb)
		return nil, err
	}

	// Настройка роутера
	router := setupRouter(deps, logger)

	// Создание HTTP сервера
	server := createServer(cfg.RunAddress, router, writeTimeoutFor(cfg))

	return &App{
		config: cfg,
		logger: logger,
		db:     dbPool,
		redis:  rdb,
		deps:   deps,
		router: router,
		server: server,
	}, nil
}

// Run запускает приложение
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Первая загрузка каталога. При неудаче витрина показывает ошибку,
	// а refresher повторит загрузку по расписанию.
	loadCtx, loadCancel := context.WithTimeout(ctx, a.config.CatalogFetchTimeout)
	if err := a.deps.loader.Refresh(loadCtx); err != nil {
		a.logger.Warn("initial catalog load failed", zap.Error(err))
	} else {
		a.logger.Info("catalog loaded", zap.Int("products", a.deps.store.Len()))
	}
	loadCancel()

	// Запуск фоновых задач
	if a.deps.auditPool != nil {
		a.deps.auditPool.Start(ctx)
		a.logger.Info("audit worker pool started")
	}
	a.deps.refresher.Start(ctx)
	go a.deps.sessions.RunJanitor(ctx, janitorInterval)

	// Запуск HTTP сервера и ожидание сигнала завершения
	err := a.runServer(ctx)

	// Graceful shutdown
	a.shutdown(cancel)

	return err
}

func closeDatabase(db *pgxpool.Pool) {
	if db != nil {
		db.Close()
	}
}

func closeRedis(rdb *redis.Client) {
	if rdb != nil {
		_ = rdb.Close()
	}
}
