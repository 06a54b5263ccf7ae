package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/avc/storefront/internal/domain"
	domainmocks "github.com/avc/storefront/internal/domain/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, 0), mr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	_, err := cache.Load(ctx)
	assert.ErrorIs(t, err, ErrSnapshotMissing)

	require.NoError(t, cache.Save(ctx, []byte(testPayload)))
	payload, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testPayload, string(payload))
}

func TestLoader_Refresh(t *testing.T) {
	ctx := context.Background()
	logger, _ := zap.NewDevelopment()

	t.Run("Saves snapshot after successful load", func(t *testing.T) {
		cache, mr := newTestCache(t)
		store := NewStore(logger)
		source := domainmocks.NewCatalogSourceMock(t)
		source.EXPECT().Fetch(mock.Anything).Return([]byte(testPayload), nil).Once()

		loader := NewLoader(store, source, cache, logger)
		require.NoError(t, loader.Refresh(ctx))

		assert.Equal(t, 3, store.Len())
		stored, err := mr.Get(defaultSnapshotKey)
		require.NoError(t, err)
		assert.Equal(t, testPayload, stored)
	})

	t.Run("Restores from snapshot when source fails on cold start", func(t *testing.T) {
		cache, _ := newTestCache(t)
		require.NoError(t, cache.Save(ctx, []byte(testPayload)))

		store := NewStore(logger)
		source := domainmocks.NewCatalogSourceMock(t)
		source.EXPECT().Fetch(mock.Anything).Return(nil, &domain.FetchError{Kind: domain.FetchStatus, StatusCode: 500}).Once()

		loader := NewLoader(store, source, cache, logger)
		require.NoError(t, loader.Refresh(ctx))
		assert.True(t, store.Ready())
		assert.Equal(t, 3, store.Len())
	})

	t.Run("Keeps current catalog when source fails later", func(t *testing.T) {
		cache, _ := newTestCache(t)
		store := NewStore(logger)
		source := domainmocks.NewCatalogSourceMock(t)
		source.EXPECT().Fetch(mock.Anything).Return([]byte(testPayload), nil).Once()
		source.EXPECT().Fetch(mock.Anything).Return(nil, &domain.FetchError{Kind: domain.FetchStatus, StatusCode: 500}).Once()

		loader := NewLoader(store, source, cache, logger)
		require.NoError(t, loader.Refresh(ctx))

		err := loader.Refresh(ctx)
		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, 3, store.Len())
	})

	t.Run("No cache configured", func(t *testing.T) {
		store := NewStore(logger)
		source := domainmocks.NewCatalogSourceMock(t)
		source.EXPECT().Fetch(mock.Anything).Return(nil, &domain.FetchError{Kind: domain.FetchNetwork}).Once()

		loader := NewLoader(store, source, nil, logger)
		assert.Error(t, loader.Refresh(ctx))
		assert.False(t, store.Ready())
	})

	t.Run("Concurrent refreshes share one fetch", func(t *testing.T) {
		store := NewStore(logger)
		source := domainmocks.NewCatalogSourceMock(t)
		entered := make(chan struct{})
		release := make(chan struct{})
		source.EXPECT().Fetch(mock.Anything).RunAndReturn(func(ctx context.Context) ([]byte, error) {
			close(entered)
			<-release
			return []byte(testPayload), nil
		}).Once()

		loader := NewLoader(store, source, nil, logger)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, loader.Refresh(ctx))
		}()
		<-entered
		go func() {
			defer wg.Done()
			assert.NoError(t, loader.Refresh(ctx))
		}()
		// Второй вызов должен успеть присоединиться к первому
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.True(t, store.Ready())
	})
}
