package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит конфигурацию приложения
type Config struct {
	RunAddress  string // Адрес и порт запуска сервиса
	DatabaseURI string // URI подключения к БД журнала оплат, может быть пустым
	LogLevel    string // Уровень логирования

	// Каталог
	CatalogAPIURL          string        // Адрес API каталога
	CatalogRefreshInterval time.Duration // Интервал перезагрузки каталога, 0 отключает
	CatalogFetchTimeout    time.Duration // Таймаут одной загрузки
	RedisAddress           string        // Адрес Redis для снимка каталога, может быть пустым
	FilterOptionsFile      string        // YAML с вариантами фильтров

	// Оплата
	StripeSecretKey    string        // Ключ Stripe, без него используется тестовый провайдер
	CheckoutSuccessURL string        // Куда провайдер возвращает после оплаты
	CheckoutCancelURL  string        // Куда провайдер возвращает при отмене
	CheckoutEndpoint   string        // Внешний сервис создания сессий оплаты
	CheckoutTimeout    time.Duration // Таймаут создания сессии оплаты

	// Сессии витрины
	SessionSecret       string        // Ключ подписи cookie сессии
	SessionTTL          time.Duration // Время жизни сессии
	SessionCookieSecure bool          // Выставлять Secure у cookie
	SessionMax          int           // Предел числа живых сессий

	// Журнал оплат
	AuditWorkers   int // Количество воркеров записи
	AuditQueueSize int // Размер очереди записи
}

// Load загружает конфигурацию из переменных окружения и флагов
// Приоритет: env переменные > флаги > дефолтные значения
func Load() (*Config, error) {
	return parse(flag.CommandLine, os.Args[1:])
}

func parse(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{
		LogLevel:               "info",
		CatalogRefreshInterval: 5 * time.Minute,
		CatalogFetchTimeout:    10 * time.Second,
		CheckoutSuccessURL:     "http://localhost:8080/success.html",
		CheckoutCancelURL:      "http://localhost:8080/cart.html",
		CheckoutTimeout:        15 * time.Second,
		SessionTTL:             30 * time.Minute,
		SessionMax:             10000,
		AuditWorkers:           2,
		AuditQueueSize:         100,
	}

	// Определяем флаги
	fs.StringVar(&cfg.RunAddress, "a", ":8080", "address and port to run server")
	fs.StringVar(&cfg.CatalogAPIURL, "c", "", "catalog API URL")
	fs.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	fs.StringVar(&cfg.RedisAddress, "r", "", "redis address")
	fs.StringVar(&cfg.FilterOptionsFile, "f", "", "filter options YAML file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Переменные окружения имеют приоритет над флагами
	lookupString("RUN_ADDRESS", &cfg.RunAddress)
	lookupString("CATALOG_API_URL", &cfg.CatalogAPIURL)
	lookupString("DATABASE_URI", &cfg.DatabaseURI)
	lookupString("REDIS_ADDRESS", &cfg.RedisAddress)
	lookupString("FILTER_OPTIONS_FILE", &cfg.FilterOptionsFile)
	lookupString("LOG_LEVEL", &cfg.LogLevel)

	// Секреты только из env, не из флагов
	lookupString("STRIPE_SECRET_KEY", &cfg.StripeSecretKey)
	if envSecret, ok := os.LookupEnv("SESSION_SECRET"); ok {
		cfg.SessionSecret = envSecret
	} else {
		cfg.SessionSecret = "default-secret-key-change-in-production"
	}

	lookupString("CHECKOUT_SUCCESS_URL", &cfg.CheckoutSuccessURL)
	lookupString("CHECKOUT_CANCEL_URL", &cfg.CheckoutCancelURL)
	lookupString("CHECKOUT_ENDPOINT", &cfg.CheckoutEndpoint)

	lookupDuration("CHECKOUT_TIMEOUT", &cfg.CheckoutTimeout, false)
	lookupDuration("SESSION_TTL", &cfg.SessionTTL, false)
	lookupDuration("CATALOG_REFRESH_INTERVAL", &cfg.CatalogRefreshInterval, true)
	lookupDuration("CATALOG_FETCH_TIMEOUT", &cfg.CatalogFetchTimeout, false)

	lookupInt("SESSION_MAX", &cfg.SessionMax)
	lookupInt("AUDIT_WORKERS", &cfg.AuditWorkers)
	lookupInt("AUDIT_QUEUE_SIZE", &cfg.AuditQueueSize)

	if envSecure, ok := os.LookupEnv("SESSION_COOKIE_SECURE"); ok {
		if secure, err := strconv.ParseBool(envSecure); err == nil {
			cfg.SessionCookieSecure = secure
		}
	}

	// Валидация обязательных параметров
	if cfg.CatalogAPIURL == "" {
		return nil, errors.New("catalog API URL is required (use -c flag or CATALOG_API_URL env)")
	}

	if cfg.StripeSecretKey != "" && cfg.CheckoutEndpoint != "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY and CHECKOUT_ENDPOINT are mutually exclusive")
	}

	return cfg, nil
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

// lookupInt принимает только положительные значения
func lookupInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}

func lookupDuration(key string, dst *time.Duration, allowZero bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 || (d == 0 && !allowZero) {
		return
	}
	*dst = d
}
