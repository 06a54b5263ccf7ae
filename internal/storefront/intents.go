package storefront

import "github.com/avc/storefront/internal/domain"

// Intent действие посетителя, которое обрабатывает Session.Dispatch
type Intent interface {
	intent() string
}

// AddToCart добавляет товар в корзину
type AddToCart struct {
	ProductID string
	Quantity  int
}

// SetQuantity меняет количество позиции из пользовательского ввода
type SetQuantity struct {
	ProductID string
	Value     string
}

// RemoveItem удаляет позицию из корзины
type RemoveItem struct {
	ProductID string
}

// SetFilter выбирает значение оси фильтра
type SetFilter struct {
	Axis  domain.Axis
	Value string
}

// ClearFilter сбрасывает одну ось
type ClearFilter struct {
	Axis domain.Axis
}

// ClearFilters сбрасывает все фильтры
type ClearFilters struct{}

// Checkout запускает создание сессии оплаты
type Checkout struct{}

func (AddToCart) intent() string    { return "add_to_cart" }
func (SetQuantity) intent() string  { return "set_quantity" }
func (RemoveItem) intent() string   { return "remove_item" }
func (SetFilter) intent() string    { return "set_filter" }
func (ClearFilter) intent() string  { return "clear_filter" }
func (ClearFilters) intent() string { return "clear_filters" }
func (Checkout) intent() string     { return "checkout" }
