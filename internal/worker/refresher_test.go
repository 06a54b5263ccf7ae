package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type loaderStub struct {
	calls atomic.Int32
	err   error
}

func (l *loaderStub) Refresh(ctx context.Context) error {
	l.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("refresh without deadline")
	}
	return l.err
}

func TestRefresher(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("Refreshes on every tick", func(t *testing.T) {
		loader := &loaderStub{}
		refresher := NewRefresher(loader, 5*time.Millisecond, time.Second, logger)

		ctx, cancel := context.WithCancel(context.Background())
		refresher.Start(ctx)

		assert.Eventually(t, func() bool { return loader.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

		cancel()
		refresher.Wait()
	})

	t.Run("Keeps running after a failed refresh", func(t *testing.T) {
		loader := &loaderStub{err: errors.New("catalog api down")}
		refresher := NewRefresher(loader, 5*time.Millisecond, time.Second, logger)

		ctx, cancel := context.WithCancel(context.Background())
		refresher.Start(ctx)

		assert.Eventually(t, func() bool { return loader.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

		cancel()
		refresher.Wait()
	})

	t.Run("Zero interval disables refresh", func(t *testing.T) {
		loader := &loaderStub{}
		refresher := NewRefresher(loader, 0, time.Second, logger)

		refresher.Start(context.Background())
		refresher.Wait()

		assert.Equal(t, int32(0), loader.calls.Load())
	})
}
