package worker

import (
	"context"
	"sync"
	"time"

	"github.com/avc/storefront/internal/domain"
	"go.uber.org/zap"
)

const defaultWriteTimeout = 5 * time.Second

// Pool представляет пул воркеров для записи сессий оплаты в журнал
type Pool struct {
	workers      int
	queue        chan *domain.CheckoutSession
	repo         domain.CheckoutSessionRepository
	logger       *zap.Logger
	wg           sync.WaitGroup
	writeTimeout time.Duration

	mu      sync.RWMutex
	stopped bool
}

// NewPool создает новый worker pool
func NewPool(
	workers int,
	queueSize int,
	repo domain.CheckoutSessionRepository,
	logger *zap.Logger,
) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers:      workers,
		queue:        make(chan *domain.CheckoutSession, queueSize),
		repo:         repo,
		logger:       logger,
		writeTimeout: defaultWriteTimeout,
	}
}

// Start запускает worker pool
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

// Stop останавливает worker pool. Уже принятые записи дописываются.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
}

// Submit ставит сессию в очередь записи. Не блокирует: при заполненной
// очереди или остановленном пуле запись пропускается и возвращается false.
func (p *Pool) Submit(session *domain.CheckoutSession) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		p.logger.Warn("pool is stopped, skipping checkout session", zap.String("session", session.ID))
		return false
	}

	select {
	case p.queue <- session:
		return true
	default:
		p.logger.Warn("queue is full, skipping checkout session", zap.String("session", session.ID))
		return false
	}
}

// worker пишет сессии из очереди до ее закрытия
func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	p.logger.Info("worker started", zap.Int("worker_id", id))

	for session := range p.queue {
		p.record(ctx, session)
	}

	p.logger.Info("worker stopping", zap.Int("worker_id", id))
}

// record записывает одну сессию. Запись переживает отмену ctx, чтобы
// очередь дописалась при остановке сервиса.
func (p *Pool) record(ctx context.Context, session *domain.CheckoutSession) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.writeTimeout)
	defer cancel()

	if err := p.repo.CreateSession(ctx, session); err != nil {
		p.logger.Error("failed to record checkout session",
			zap.String("session", session.ID),
			zap.Error(err),
		)
		return
	}

	p.logger.Debug("checkout session recorded",
		zap.String("session", session.ID),
		zap.Int64("amount_cents", session.AmountCents),
	)
}
