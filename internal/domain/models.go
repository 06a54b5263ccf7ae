package domain

import (
	"time"

	"github.com/avc/storefront/internal/money"
)

// Axis представляет ось фильтрации каталога
type Axis string

const (
	AxisCategory Axis = "category"
	AxisPrice    Axis = "price"
)

// FilterAll означает отсутствие ограничения по оси
const FilterAll = "all"

// Product представляет товар из каталога
type Product struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Price    money.Money `json:"price"`
	ImageURL string      `json:"imageUrl"`
}

// MaxLineQuantity наибольшее количество единиц товара в одной позиции
const MaxLineQuantity = 999

// LineItemRef представляет позицию корзины для создания сессии оплаты
type LineItemRef struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutSessionStatus представляет статус сессии оплаты
type CheckoutSessionStatus string

const (
	CheckoutSessionOpen     CheckoutSessionStatus = "open"
	CheckoutSessionComplete CheckoutSessionStatus = "complete"
	CheckoutSessionExpired  CheckoutSessionStatus = "expired"
)

// CheckoutSession представляет созданную у провайдера сессию оплаты
type CheckoutSession struct {
	ID          string                `json:"id"`
	ProviderID  string                `json:"providerId"`
	Provider    string                `json:"provider"`
	URL         string                `json:"url"`
	Status      CheckoutSessionStatus `json:"status"`
	AmountCents int64                 `json:"amountCents"`
	Currency    string                `json:"currency"`
	Items       []LineItemRef         `json:"items"`
	CreatedAt   time.Time             `json:"createdAt"`
}
