package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avc/storefront/internal/domain"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const (
	defaultFetchTimeout = 10 * time.Second
	defaultRetryMax     = 3
	defaultMaxPayload   = 8 << 20
)

// HTTPSource реализует domain.CatalogSource поверх API таблицы товаров
type HTTPSource struct {
	url        string
	maxPayload int64
	httpClient *retryablehttp.Client
}

// SourceConfig содержит настройки HTTPSource
type SourceConfig struct {
	URL          string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// Предел размера ответа в байтах, больший ответ отклоняется целиком
	MaxPayloadBytes int64
}

// NewHTTPSource создает новый HTTPSource
func NewHTTPSource(cfg SourceConfig, logger *zap.Logger) *HTTPSource {
	client := retryablehttp.NewClient()
	client.Logger = zapLeveledLogger{logger: logger.Named("catalog-http")}
	client.RetryMax = defaultRetryMax
	if cfg.RetryMax > 0 {
		client.RetryMax = cfg.RetryMax
	}
	if cfg.RetryWaitMin > 0 {
		client.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		client.RetryWaitMax = cfg.RetryWaitMax
	}
	client.HTTPClient.Timeout = defaultFetchTimeout
	if cfg.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Timeout
	}
	// Статус разбираем сами, после исчерпания попыток нужен последний ответ
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	maxPayload := int64(defaultMaxPayload)
	if cfg.MaxPayloadBytes > 0 {
		maxPayload = cfg.MaxPayloadBytes
	}

	return &HTTPSource{
		url:        cfg.URL,
		maxPayload: maxPayload,
		httpClient: client,
	}
}

// Fetch получает тело ответа API каталога
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.FetchNetwork, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.FetchNetwork, Err: fmt.Errorf("failed to execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.FetchError{Kind: domain.FetchStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxPayload+1))
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.FetchNetwork, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	if int64(len(body)) > s.maxPayload {
		return nil, &domain.FetchError{Kind: domain.FetchPayload, Err: fmt.Errorf("payload exceeds %d bytes", s.maxPayload)}
	}

	return body, nil
}

// zapLeveledLogger адаптирует zap к retryablehttp.LeveledLogger
type zapLeveledLogger struct {
	logger *zap.Logger
}

func (l zapLeveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, keysAndValues...)
}

func (l zapLeveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l zapLeveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l zapLeveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Warnw(msg, keysAndValues...)
}
