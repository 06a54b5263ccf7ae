// Package render строит модели представления из состояния витрины.
// Все функции чистые и не хранят состояния.
package render

import (
	"errors"
	"net/url"

	"github.com/avc/storefront/internal/cart"
	"github.com/avc/storefront/internal/domain"
	"github.com/avc/storefront/internal/filter"
)

// Тексты сообщений витрины
const (
	NoResultsMessage    = "No products match the selected filters."
	CatalogErrorMessage = "Unable to load products right now. Please try again later."
	EmptyCartMessage    = "Your cart is empty."
	CheckoutLabel       = "Proceed to Checkout"
	CheckoutPending     = "Redirecting..."
)

// ProductCardVM карточка товара в сетке
type ProductCardVM struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     string `json:"price"`
	ImageURL  string `json:"imageUrl"`
	DetailURL string `json:"detailUrl"`
}

// ProductGridVM сетка товаров. Ровно одно из трех: товары, NoResults или CatalogError.
type ProductGridVM struct {
	Products     []ProductCardVM `json:"products"`
	Count        int             `json:"count"`
	NoResults    bool            `json:"noResults"`
	Message      string          `json:"message,omitempty"`
	CatalogError bool            `json:"catalogError"`
}

// Products строит сетку из отфильтрованных товаров
func Products(products []domain.Product) ProductGridVM {
	if len(products) == 0 {
		return ProductGridVM{
			Products:  []ProductCardVM{},
			NoResults: true,
			Message:   NoResultsMessage,
		}
	}

	cards := make([]ProductCardVM, 0, len(products))
	for _, p := range products {
		cards = append(cards, ProductCardVM{
			ID:        p.ID,
			Name:      p.Name,
			Category:  p.Category,
			Price:     p.Price.Format(),
			ImageURL:  p.ImageURL,
			DetailURL: "/product.html?id=" + url.QueryEscape(p.ID),
		})
	}

	return ProductGridVM{
		Products: cards,
		Count:    len(cards),
	}
}

// CatalogError строит сетку с сообщением об ошибке загрузки вместо товаров
func CatalogError(err error) ProductGridVM {
	vm := ProductGridVM{
		Products:     []ProductCardVM{},
		CatalogError: true,
		Message:      CatalogErrorMessage,
	}
	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) && fetchErr.Kind == domain.FetchPayload {
		vm.Message = "Product data is temporarily unavailable."
	}
	return vm
}

// CartSummaryVM блок итогов корзины
type CartSummaryVM struct {
	Empty     bool   `json:"empty"`
	Message   string `json:"message,omitempty"`
	LineCount int    `json:"lineCount"`
	Subtotal  string `json:"subtotal"`
	Shipping  string `json:"shipping"`
	Tax       string `json:"tax"`
	Total     string `json:"total"`
}

// CartSummary строит итоги. Пустая корзина скрывает итоги и показывает нули.
func CartSummary(totals cart.Totals, lineCount int) CartSummaryVM {
	if lineCount == 0 {
		totals = cart.Totals{}
	}
	vm := CartSummaryVM{
		Empty:     lineCount == 0,
		LineCount: lineCount,
		Subtotal:  totals.Subtotal.Format(),
		Shipping:  totals.Shipping.Format(),
		Tax:       totals.Tax.Format(),
		Total:     totals.Total.Format(),
	}
	if vm.Empty {
		vm.Message = EmptyCartMessage
	}
	return vm
}

// CartLineVM строка корзины
type CartLineVM struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	ImageURL     string `json:"imageUrl"`
	UnitPrice    string `json:"unitPrice"`
	Quantity     int    `json:"quantity"`
	LineTotal    string `json:"lineTotal"`
	CanDecrement bool   `json:"canDecrement"`
}

// CartLines строит строки корзины. lookup дополняет строку названием и картинкой товара.
func CartLines(lines []cart.Line, lookup func(id string) (domain.Product, bool)) []CartLineVM {
	out := make([]CartLineVM, 0, len(lines))
	for _, line := range lines {
		vm := CartLineVM{
			ProductID:    line.ProductID,
			Name:         line.ProductID,
			UnitPrice:    line.UnitPrice.Format(),
			Quantity:     line.Quantity,
			LineTotal:    line.Total().Format(),
			CanDecrement: line.Quantity > 1,
		}
		if lookup != nil {
			if p, ok := lookup(line.ProductID); ok {
				vm.Name = p.Name
				vm.ImageURL = p.ImageURL
			}
		}
		out = append(out, vm)
	}
	return out
}

// PillBarVM панель активных фильтров
type PillBarVM struct {
	Pills  []filter.Pill `json:"pills"`
	Hidden bool          `json:"hidden"`
}

// FilterPills строит панель плашек. Без активных фильтров панель скрыта.
func FilterPills(pills []filter.Pill) PillBarVM {
	if pills == nil {
		pills = []filter.Pill{}
	}
	return PillBarVM{
		Pills:  pills,
		Hidden: len(pills) == 0,
	}
}

// FilterButtonVM кнопка фильтра в боковой панели
type FilterButtonVM struct {
	Axis   domain.Axis `json:"axis"`
	Value  string      `json:"value"`
	Label  string      `json:"label"`
	Active bool        `json:"active"`
}

// FilterGroupVM группа кнопок одной оси
type FilterGroupVM struct {
	Axis    domain.Axis      `json:"axis"`
	Buttons []FilterButtonVM `json:"buttons"`
}

// FilterOptions строит кнопки фильтров с отметкой выбранных
func FilterOptions(opts *filter.Options, categories []string, selection filter.Selection) []FilterGroupVM {
	categoryGroup := FilterGroupVM{Axis: domain.AxisCategory}
	categoryGroup.Buttons = append(categoryGroup.Buttons, button(opts, domain.AxisCategory, domain.FilterAll, selection.Category))
	for _, c := range categories {
		categoryGroup.Buttons = append(categoryGroup.Buttons, button(opts, domain.AxisCategory, c, selection.Category))
	}

	selectedBand := selection.Price.ID
	if selection.Price.IsAll() {
		selectedBand = domain.FilterAll
	}
	priceGroup := FilterGroupVM{Axis: domain.AxisPrice}
	priceGroup.Buttons = append(priceGroup.Buttons, button(opts, domain.AxisPrice, domain.FilterAll, selectedBand))
	for _, o := range opts.PriceBands {
		priceGroup.Buttons = append(priceGroup.Buttons, button(opts, domain.AxisPrice, o.Value, selectedBand))
	}

	return []FilterGroupVM{categoryGroup, priceGroup}
}

func button(opts *filter.Options, axis domain.Axis, value, selected string) FilterButtonVM {
	return FilterButtonVM{
		Axis:   axis,
		Value:  value,
		Label:  opts.Label(axis, value),
		Active: value == selected,
	}
}

// ProductDetailVM страница товара
type ProductDetailVM struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	ImageURL string `json:"imageUrl"`
	InCart   int    `json:"inCart"`
}

// ProductDetail строит страницу товара
func ProductDetail(product domain.Product, inCart int) ProductDetailVM {
	return ProductDetailVM{
		ID:       product.ID,
		Name:     product.Name,
		Category: product.Category,
		Price:    product.Price.Format(),
		ImageURL: product.ImageURL,
		InCart:   inCart,
	}
}

// CheckoutControlVM кнопка оформления заказа
type CheckoutControlVM struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
	Pending  bool   `json:"pending"`
}

// CheckoutControl строит кнопку оформления. Кнопка выключена, пока идет запрос или корзина пуста.
func CheckoutControl(pending, empty bool) CheckoutControlVM {
	vm := CheckoutControlVM{
		Label:    CheckoutLabel,
		Disabled: pending || empty,
		Pending:  pending,
	}
	if pending {
		vm.Label = CheckoutPending
	}
	return vm
}

// ToastVM всплывающее уведомление
type ToastVM struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// Toast строит уведомление. Пустое сообщение означает отсутствие уведомления.
func Toast(message, kind string) *ToastVM {
	if message == "" {
		return nil
	}
	return &ToastVM{Message: message, Kind: kind}
}
