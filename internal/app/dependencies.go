package app

import (
	"fmt"

	"github.com/avc/storefront/internal/catalog"
	"github.com/avc/storefront/internal/checkout"
	"github.com/avc/storefront/internal/config"
	"github.com/avc/storefront/internal/domain"
	"github.com/avc/storefront/internal/filter"
	"github.com/avc/storefront/internal/handlers"
	"github.com/avc/storefront/internal/repository/postgres"
	"github.com/avc/storefront/internal/storefront"
	"github.com/avc/storefront/internal/utils/jwt"
	"github.com/avc/storefront/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// handlerSet содержит все хендлеры приложения
type handlerSet struct {
	storefront *handlers.StorefrontHandler
	checkout   *handlers.CheckoutHandler
	health     *handlers.HealthHandler
}

// dependencies содержит все зависимости приложения
type dependencies struct {
	store      *catalog.Store
	loader     *catalog.Loader
	sessions   *storefront.Manager
	handlers   *handlerSet
	jwtManager *jwt.Manager
	auditPool  *worker.Pool
	refresher  *worker.Refresher
	secure     bool
}

// initDependencies создает все зависимости приложения.
// dbPool и rdb могут быть nil: журнал оплат и снимок каталога тогда отключены.
func initDependencies(cfg *config.Config, dbPool *pgxpool.Pool, rdb *redis.Client, logger *zap.Logger) (*dependencies, error) {
	// Каталог
	store := catalog.NewStore(logger)
	source := catalog.NewHTTPSource(catalog.SourceConfig{
		URL:     cfg.CatalogAPIURL,
		Timeout: cfg.CatalogFetchTimeout,
	}, logger)

	var cache domain.CatalogCache
	if rdb != nil {
		cache = catalog.NewRedisCache(rdb, 0)
	}
	loader := catalog.NewLoader(store, source, cache, logger)

	options, err := filter.LoadOptions(cfg.FilterOptionsFile)
	if err != nil {
		return nil, err
	}

	// Журнал сессий оплаты
	var (
		sessionRepo domain.CheckoutSessionRepository
		recorder    checkout.Recorder
		auditPool   *worker.Pool
	)
	if dbPool != nil {
		repo := postgres.NewCheckoutSessionRepository(dbPool)
		auditPool = worker.NewPool(cfg.AuditWorkers, cfg.AuditQueueSize, repo, logger)
		sessionRepo = repo
		recorder = auditPool
	}

	// Оплата
	provider, err := initProvider(cfg, logger)
	if err != nil {
		return nil, err
	}
	checkoutService := checkout.NewService(store, provider, recorder, checkout.ServiceConfig{
		SuccessURL: cfg.CheckoutSuccessURL,
		CancelURL:  cfg.CheckoutCancelURL,
	}, logger)

	var gateway domain.CheckoutGateway = checkoutService
	if cfg.CheckoutEndpoint != "" {
		gateway = checkout.NewClient(cfg.CheckoutEndpoint, cfg.CheckoutTimeout)
	}
	guard := checkout.NewGuard(gateway, cfg.CheckoutTimeout, logger)

	// Сессии витрины
	sessions := storefront.NewManager(storefront.Deps{
		Catalog:  store,
		Options:  options,
		Checkout: guard,
		Logger:   logger,
	}, cfg.SessionTTL, logger, storefront.WithMaxSessions(cfg.SessionMax))

	checks := make(map[string]handlers.PingFunc)
	if dbPool != nil {
		checks["database"] = dbPool.Ping
	}
	if rdb != nil {
		checks["redis"] = pingRedis(rdb)
	}

	hdlrs := &handlerSet{
		storefront: handlers.NewStorefrontHandler(logger),
		checkout:   handlers.NewCheckoutHandler(checkoutService, sessionRepo, logger),
		health:     handlers.NewHealthHandler(store, checks, logger),
	}

	return &dependencies{
		store:      store,
		loader:     loader,
		sessions:   sessions,
		handlers:   hdlrs,
		jwtManager: jwt.NewManager(cfg.SessionSecret, cfg.SessionTTL),
		auditPool:  auditPool,
		refresher:  worker.NewRefresher(loader, cfg.CatalogRefreshInterval, cfg.CatalogFetchTimeout, logger),
		secure:     cfg.SessionCookieSecure,
	}, nil
}

// initProvider выбирает Stripe, если задан ключ, иначе тестовый провайдер
func initProvider(cfg *config.Config, logger *zap.Logger) (checkout.Provider, error) {
	if cfg.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY is not set, using fake checkout provider")
		return checkout.NewFakeProvider(), nil
	}

	provider, err := checkout.NewStripeProvider(checkout.StripeConfig{APIKey: cfg.StripeSecretKey}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init stripe provider: %w", err)
	}
	return provider, nil
}
