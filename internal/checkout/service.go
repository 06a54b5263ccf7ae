package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc/storefront/internal/domain"
	"github.com/avc/storefront/internal/money"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCurrency = "usd"

// ProductLookup определяет поиск товара по идентификатору
type ProductLookup interface {
	ByID(id string) (domain.Product, bool)
}

// Recorder принимает созданные сессии для журнала. Не должен блокировать.
type Recorder interface {
	Submit(session *domain.CheckoutSession) bool
}

// ServiceConfig содержит настройки Service
type ServiceConfig struct {
	SuccessURL string
	CancelURL  string
	Currency   string
}

// Service создает сессии оплаты внутри процесса. Цены берутся из каталога,
// а не из запроса.
type Service struct {
	products ProductLookup
	provider Provider
	recorder Recorder
	cfg      ServiceConfig
	logger   *zap.Logger
	clock    func() time.Time
}

// NewService создает новый Service. recorder может быть nil.
func NewService(products ProductLookup, provider Provider, recorder Recorder, cfg ServiceConfig, logger *zap.Logger) *Service {
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}
	return &Service{
		products: products,
		provider: provider,
		recorder: recorder,
		cfg:      cfg,
		logger:   logger,
		clock:    time.Now,
	}
}

// Create проверяет позиции, создает сессию у провайдера и отправляет ее в журнал.
// Ошибки валидации возвращаются как есть, ошибки провайдера как *domain.GatewayError.
func (s *Service) Create(ctx context.Context, items []domain.LineItemRef) (*domain.CheckoutSession, error) {
	priced, amount, err := s.price(items)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	created, err := s.provider.CreateCheckoutSession(ctx, SessionRequest{
		Items:          priced,
		Currency:       s.cfg.Currency,
		SuccessURL:     s.cfg.SuccessURL,
		CancelURL:      s.cfg.CancelURL,
		IdempotencyKey: id,
	})
	if err != nil {
		s.logger.Error("failed to create checkout session",
			zap.String("provider", s.provider.Name()),
			zap.Error(err),
		)
		return nil, &domain.GatewayError{
			Timeout: errors.Is(err, context.DeadlineExceeded),
			Err:     err,
		}
	}

	session := &domain.CheckoutSession{
		ID:          id,
		ProviderID:  created.ID,
		Provider:    s.provider.Name(),
		URL:         created.URL,
		Status:      domain.CheckoutSessionOpen,
		AmountCents: amount.Cents(),
		Currency:    s.cfg.Currency,
		Items:       items,
		CreatedAt:   s.clock(),
	}

	if s.recorder != nil && !s.recorder.Submit(session) {
		s.logger.Warn("checkout session not recorded", zap.String("session_id", id))
	}

	s.logger.Info("checkout session created",
		zap.String("session_id", id),
		zap.String("provider_id", created.ID),
		zap.Int64("amount_cents", session.AmountCents),
	)

	return session, nil
}

// CreateSession реализует domain.CheckoutGateway. Любая ошибка оборачивается в *domain.GatewayError.
func (s *Service) CreateSession(ctx context.Context, items []domain.LineItemRef) (string, error) {
	session, err := s.Create(ctx, items)
	if err != nil {
		var gatewayErr *domain.GatewayError
		if errors.As(err, &gatewayErr) {
			return "", gatewayErr
		}
		return "", &domain.GatewayError{Err: err}
	}
	return session.URL, nil
}

func (s *Service) price(items []domain.LineItemRef) ([]PricedItem, money.Money, error) {
	if len(items) == 0 {
		return nil, money.Zero, domain.ErrCartEmpty
	}

	priced := make([]PricedItem, 0, len(items))
	amount := money.Zero
	for _, item := range items {
		if item.Quantity < 1 || item.Quantity > domain.MaxLineQuantity {
			return nil, money.Zero, fmt.Errorf("checkout: %q: %w", item.ProductID, domain.ErrInvalidQuantity)
		}
		product, ok := s.products.ByID(item.ProductID)
		if !ok {
			return nil, money.Zero, fmt.Errorf("checkout: %q: %w", item.ProductID, domain.ErrProductNotFound)
		}
		priced = append(priced, PricedItem{
			ProductID:  product.ID,
			Name:       product.Name,
			ImageURL:   product.ImageURL,
			UnitAmount: product.Price,
			Quantity:   item.Quantity,
		})
		lineAmount, err := product.Price.MultiplyChecked(item.Quantity)
		if err == nil {
			amount, err = amount.AddChecked(lineAmount)
		}
		if err != nil {
			return nil, money.Zero, fmt.Errorf("checkout: %q: %w: %w", item.ProductID, err, domain.ErrInvalidQuantity)
		}
	}

	return priced, amount, nil
}
