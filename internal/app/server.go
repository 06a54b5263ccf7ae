package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avc/storefront/internal/config"
	"go.uber.org/zap"
)

const (
	serverReadTimeout  = 15 * time.Second
	serverWriteTimeout = 15 * time.Second
	serverIdleTimeout  = 60 * time.Second
	shutdownTimeout    = 10 * time.Second
	// writeTimeoutMargin время на ответ после истечения ожидания оплаты
	writeTimeoutMargin = 5 * time.Second
)

// writeTimeoutFor возвращает таймаут записи ответа. Он всегда больше
// CheckoutTimeout, иначе ответ 504 об истекшей оплате не дойдет до клиента.
func writeTimeoutFor(cfg *config.Config) time.Duration {
	return max(serverWriteTimeout, cfg.CheckoutTimeout+writeTimeoutMargin)
}

// createServer создает HTTP сервер
func createServer(addr string, handler http.Handler, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  serverIdleTimeout,
	}
}

// runServer запускает HTTP сервер и ожидает сигнала завершения
func (a *App) runServer(ctx context.Context) error {
	// Запуск HTTP сервера в горутине
	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info("starting HTTP server", zap.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		return nil
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		return nil
	}
}

// shutdown выполняет graceful shutdown приложения
func (a *App) shutdown(cancel context.CancelFunc) {
	a.logger.Info("shutting down server...")

	// Останавливаем прием новых запросов
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown error", zap.Error(err))
	}

	// Останавливаем фоновые задачи, очередь журнала дописывается
	cancel()
	a.deps.refresher.Wait()
	if a.deps.auditPool != nil {
		a.deps.auditPool.Stop()
		a.logger.Info("audit worker pool stopped")
	}

	// Закрываем соединения
	if a.db != nil {
		a.db.Close()
		a.logger.Info("database connection closed")
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", zap.Error(err))
		}
	}

	a.logger.Info("server stopped gracefully")
}
