package checkout

import (
	"context"
	"net/url"
	"strings"

	"github.com/avc/storefront/internal/money"
	"github.com/google/uuid"
)

// PricedItem позиция с ценой, подтвержденной каталогом
type PricedItem struct {
	ProductID  string
	Name       string
	ImageURL   string
	UnitAmount money.Money
	Quantity   int
}

// SessionRequest запрос на создание сессии оплаты у провайдера
type SessionRequest struct {
	Items          []PricedItem
	Currency       string
	SuccessURL     string
	CancelURL      string
	IdempotencyKey string
}

// ProviderSession сессия, созданная провайдером
type ProviderSession struct {
	ID  string
	URL string
}

// Provider создает страницу оплаты на стороне платежного сервиса
type Provider interface {
	Name() string
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (ProviderSession, error)
}

// FakeProvider используется, когда ключ Stripe не задан.
// Сразу возвращает адрес успешной оплаты.
type FakeProvider struct{}

// NewFakeProvider создает FakeProvider
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{}
}

func (p *FakeProvider) Name() string {
	return "fake"
}

// CreateCheckoutSession возвращает SuccessURL с идентификатором сессии
func (p *FakeProvider) CreateCheckoutSession(ctx context.Context, req SessionRequest) (ProviderSession, error) {
	if err := ctx.Err(); err != nil {
		return ProviderSession{}, err
	}

	id := "fake_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	return ProviderSession{
		ID:  id,
		URL: appendQuery(req.SuccessURL, "session_id", id),
	}, nil
}

func appendQuery(rawURL, key, value string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
