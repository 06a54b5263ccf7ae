package catalog

import (
	"context"

	"github.com/avc/storefront/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Loader связывает Store с внешним источником и кэшем снимков
type Loader struct {
	store  *Store
	source domain.CatalogSource
	cache  domain.CatalogCache
	logger *zap.Logger
	group  singleflight.Group
}

// NewLoader создает новый Loader. cache может быть nil.
func NewLoader(store *Store, source domain.CatalogSource, cache domain.CatalogCache, logger *zap.Logger) *Loader {
	return &Loader{
		store:  store,
		source: source,
		cache:  cache,
		logger: logger,
	}
}

// Refresh загружает каталог из источника. После успешной загрузки снимок
// сохраняется в кэш; если источник недоступен, а каталог еще пуст,
// Store поднимается из последнего снимка.
// Одновременные вызовы разделяют одну загрузку.
func (l *Loader) Refresh(ctx context.Context) error {
	_, err, _ := l.group.Do("catalog", func() (interface{}, error) {
		return nil, l.refresh(ctx)
	})
	return err
}

func (l *Loader) refresh(ctx context.Context) error {
	rec := &recordingSource{source: l.source}

	_, err := l.store.Load(ctx, rec)
	if err == nil {
		if l.cache != nil {
			if saveErr := l.cache.Save(ctx, rec.payload); saveErr != nil {
				l.logger.Warn("failed to save catalog snapshot", zap.Error(saveErr))
			}
		}
		return nil
	}

	l.logger.Error("failed to refresh catalog", zap.Error(err))

	if l.cache == nil || l.store.Ready() {
		return err
	}

	payload, cacheErr := l.cache.Load(ctx)
	if cacheErr != nil {
		l.logger.Warn("catalog snapshot unavailable", zap.Error(cacheErr))
		return err
	}
	if _, restoreErr := l.store.LoadPayload(payload); restoreErr != nil {
		l.logger.Warn("catalog snapshot is invalid", zap.Error(restoreErr))
		return err
	}

	l.logger.Warn("catalog restored from snapshot")
	return nil
}

// recordingSource запоминает тело последнего ответа
type recordingSource struct {
	source  domain.CatalogSource
	payload []byte
}

func (r *recordingSource) Fetch(ctx context.Context) ([]byte, error) {
	payload, err := r.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	r.payload = payload
	return payload, nil
}
