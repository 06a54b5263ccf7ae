package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CatalogLoader перезагружает каталог
type CatalogLoader interface {
	Refresh(ctx context.Context) error
}

// Refresher периодически перезагружает каталог
type Refresher struct {
	loader   CatalogLoader
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	done     chan struct{}
}

// NewRefresher создает новый Refresher. timeout ограничивает одну загрузку.
func NewRefresher(loader CatalogLoader, interval, timeout time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{
		loader:   loader,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start запускает сканер в отдельной горутине. Нулевой интервал отключает обновление.
func (r *Refresher) Start(ctx context.Context) {
	if r.interval <= 0 {
		close(r.done)
		return
	}
	go r.run(ctx)
}

// Wait дожидается остановки после отмены ctx
func (r *Refresher) Wait() {
	<-r.done
}

func (r *Refresher) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("catalog refresher stopping")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := r.loader.Refresh(ctx); err != nil {
		// Loader уже залогировал причину, каталог остается прежним
		r.logger.Debug("catalog refresh skipped", zap.Error(err))
		return
	}
	r.logger.Debug("catalog refreshed")
}
