package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/avc/storefront/internal/domain"
	"golang.org/x/sync/singleflight"
	"go.uber.org/zap"
)

const defaultCheckoutTimeout = 15 * time.Second

// Guard пропускает к шлюзу не больше одного запроса на корзину.
// Повторные нажатия, пока запрос выполняется, получают его результат.
type Guard struct {
	gateway domain.CheckoutGateway
	group   singleflight.Group
	timeout time.Duration
	logger  *zap.Logger
}

// NewGuard создает новый Guard
func NewGuard(gateway domain.CheckoutGateway, timeout time.Duration, logger *zap.Logger) *Guard {
	if timeout <= 0 {
		timeout = defaultCheckoutTimeout
	}
	return &Guard{
		gateway: gateway,
		timeout: timeout,
		logger:  logger,
	}
}

// CreateSession создает сессию оплаты для корзины key
func (g *Guard) CreateSession(ctx context.Context, key string, items []domain.LineItemRef) (string, error) {
	result, err, shared := g.group.Do(key, func() (interface{}, error) {
		// Отмена первого вызывающего не должна обрывать запрос для остальных
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
		defer cancel()

		redirectURL, err := g.gateway.CreateSession(callCtx, items)
		if err != nil && callCtx.Err() != nil {
			return "", &domain.GatewayError{Timeout: true, Err: err}
		}
		return redirectURL, err
	})
	if shared {
		g.logger.Debug("checkout request joined in-flight call", zap.String("cart", key))
	}
	if err != nil {
		var gatewayErr *domain.GatewayError
		if !errors.As(err, &gatewayErr) {
			err = &domain.GatewayError{Err: err}
		}
		return "", err
	}

	return result.(string), nil
}
