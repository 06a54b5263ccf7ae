package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avc/storefront/internal/domain"
	domainmocks "github.com/avc/storefront/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestPool_Record(t *testing.T) {
	mockRepo := domainmocks.NewCheckoutSessionRepositoryMock(t)
	logger, _ := zap.NewDevelopment()

	pool := NewPool(1, 10, mockRepo, logger)

	session := &domain.CheckoutSession{ID: "s1", AmountCents: 4900}
	mockRepo.EXPECT().CreateSession(mock.Anything, session).Return(nil).Once()

	pool.record(context.Background(), session)
}

func TestPool_Record_SurvivesCancel(t *testing.T) {
	mockRepo := domainmocks.NewCheckoutSessionRepositoryMock(t)
	logger, _ := zap.NewDevelopment()

	pool := NewPool(1, 10, mockRepo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := &domain.CheckoutSession{ID: "s1"}
	mockRepo.EXPECT().CreateSession(mock.Anything, session).
		RunAndReturn(func(ctx context.Context, s *domain.CheckoutSession) error {
			assert.NoError(t, ctx.Err())
			return nil
		}).Once()

	pool.record(ctx, session)
}

func TestPool_Record_Error(t *testing.T) {
	mockRepo := domainmocks.NewCheckoutSessionRepositoryMock(t)
	logger, _ := zap.NewDevelopment()

	pool := NewPool(1, 10, mockRepo, logger)

	session := &domain.CheckoutSession{ID: "s1"}
	mockRepo.EXPECT().CreateSession(mock.Anything, session).Return(errors.New("db down")).Once()

	// Ошибка только логируется
	pool.record(context.Background(), session)
}

func TestPool_Submit(t *testing.T) {
	mockRepo := domainmocks.NewCheckoutSessionRepositoryMock(t)
	logger, _ := zap.NewDevelopment()

	t.Run("Queue full", func(t *testing.T) {
		pool := NewPool(1, 1, mockRepo, logger)

		assert.True(t, pool.Submit(&domain.CheckoutSession{ID: "s1"}))
		assert.False(t, pool.Submit(&domain.CheckoutSession{ID: "s2"}))

		select {
		case s := <-pool.queue:
			assert.Equal(t, "s1", s.ID)
		case <-time.After(100 * time.Millisecond):
			t.Error("expected session in queue, got timeout")
		}
	})

	t.Run("Stopped pool", func(t *testing.T) {
		pool := NewPool(1, 1, mockRepo, logger)
		pool.Stop()

		assert.False(t, pool.Submit(&domain.CheckoutSession{ID: "s1"}))
		// Повторная остановка безопасна
		pool.Stop()
	})
}

func TestPool_StopDrainsQueue(t *testing.T) {
	mockRepo := domainmocks.NewCheckoutSessionRepositoryMock(t)
	logger, _ := zap.NewDevelopment()

	var written atomic.Int32
	mockRepo.EXPECT().CreateSession(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, s *domain.CheckoutSession) error {
			written.Add(1)
			return nil
		}).Times(3)

	pool := NewPool(2, 10, mockRepo, logger)
	ctx, cancel := context.WithCancel(context.Background())

	for _, id := range []string{"a", "b", "c"} {
		assert.True(t, pool.Submit(&domain.CheckoutSession{ID: id}))
	}

	pool.Start(ctx)
	cancel()
	pool.Stop()

	assert.Equal(t, int32(3), written.Load())
}
