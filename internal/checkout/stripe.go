package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"go.uber.org/zap"
)

// ErrProviderUnavailable возвращается, когда предохранитель разомкнут
var ErrProviderUnavailable = errors.New("checkout provider unavailable")

type stripeSessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeConfig содержит настройки StripeProvider
type StripeConfig struct {
	APIKey   string
	Backends *stripe.Backends
	// Количество подряд неудачных вызовов, после которого предохранитель размыкается
	MaxFailures uint32
	OpenTimeout time.Duration

	sessions stripeSessionAPI
}

// StripeProvider создает Stripe Checkout Session
type StripeProvider struct {
	sessions stripeSessionAPI
	breaker  *gobreaker.CircuitBreaker
	logger   *zap.Logger
}

// NewStripeProvider создает новый StripeProvider
func NewStripeProvider(cfg StripeConfig, logger *zap.Logger) (*StripeProvider, error) {
	sessions := cfg.sessions
	if sessions == nil {
		apiKey := strings.TrimSpace(cfg.APIKey)
		if apiKey == "" {
			return nil, errors.New("stripe: api key is required")
		}
		sessions = client.New(apiKey, cfg.Backends).CheckoutSessions
	}

	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	openTimeout := cfg.OpenTimeout
	if openTimeout == 0 {
		openTimeout = 30 * time.Second
	}

	p := &StripeProvider{
		sessions: sessions,
		logger:   logger,
	}
	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "stripe-checkout",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return p, nil
}

func (p *StripeProvider) Name() string {
	return "stripe"
}

// breakerSuccess отделяет отказы Stripe от ошибок запроса. Ответы 4xx,
// кроме 429, говорят о доступности API и предохранитель не размыкают.
func breakerSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		code := stripeErr.HTTPStatusCode
		return code >= 400 && code < 500 && code != 429
	}
	return false
}

// CreateCheckoutSession создает сессию в режиме payment с оплатой картой
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req SessionRequest) (ProviderSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	currency := strings.ToLower(req.Currency)
	for _, item := range req.Items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.ImageURL != "" {
			productData.Images = stripe.StringSlice([]string{item.ImageURL})
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(currency),
				UnitAmount:  stripe.Int64(item.UnitAmount.Cents()),
				ProductData: productData,
			},
		})
	}

	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.sessions.New(params)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return ProviderSession{}, fmt.Errorf("stripe: %w: %v", ErrProviderUnavailable, err)
		}
		return ProviderSession{}, fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}

	session := result.(*stripe.CheckoutSession)
	p.logger.Info("stripe checkout session created", zap.String("session_id", session.ID))

	return ProviderSession{ID: session.ID, URL: session.URL}, nil
}
