package domain

import "context"

// CatalogSource определяет методы получения сырого каталога у внешнего API
type CatalogSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// CatalogCache определяет методы хранения последнего успешного снимка каталога
type CatalogCache interface {
	Save(ctx context.Context, payload []byte) error
	Load(ctx context.Context) ([]byte, error)
}

// CheckoutGateway определяет обмен позиций корзины на URL страницы оплаты
type CheckoutGateway interface {
	CreateSession(ctx context.Context, items []LineItemRef) (string, error)
}

// CheckoutSessionRepository определяет методы для работы с журналом сессий оплаты
type CheckoutSessionRepository interface {
	CreateSession(ctx context.Context, session *CheckoutSession) error
	GetSession(ctx context.Context, id string) (*CheckoutSession, error)
}
