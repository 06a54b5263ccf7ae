package cart

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/avc/storefront/internal/domain"
	"github.com/avc/storefront/internal/money"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Стоимость доставки и ставка налога
var (
	ShippingFee = money.FromCents(1500)
	TaxRate     = decimal.RequireFromString("0.08")
)

// Line представляет позицию корзины
type Line struct {
	ProductID string      `json:"productId"`
	UnitPrice money.Money `json:"unitPrice"`
	Quantity  int         `json:"quantity"`
}

// Total возвращает стоимость позиции
func (l Line) Total() money.Money {
	return l.UnitPrice.Multiply(l.Quantity)
}

// Totals итоги корзины. Не хранятся, вычисляются при каждом чтении.
type Totals struct {
	Subtotal money.Money `json:"subtotal"`
	Shipping money.Money `json:"shipping"`
	Tax      money.Money `json:"tax"`
	Total    money.Money `json:"total"`
}

// Ledger хранит позиции корзины посетителя. Одна позиция на товар,
// порядок добавления сохраняется. Не потокобезопасен, владелец
// сериализует доступ.
type Ledger struct {
	lines  []Line
	logger *zap.Logger
}

// NewLedger создает пустую корзину
func NewLedger(logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{logger: logger}
}

// AddOrIncrement добавляет товар или увеличивает количество существующей позиции.
// Количество позиции не превышает domain.MaxLineQuantity, подытог не выходит
// за money.MaxAmount.
func (l *Ledger) AddOrIncrement(productID string, unitPrice money.Money, delta int) error {
	if delta < 1 || delta > domain.MaxLineQuantity {
		return fmt.Errorf("cart: failed to add %q: %w", productID, domain.ErrInvalidQuantity)
	}

	i := l.index(productID)
	quantity := delta
	if i >= 0 {
		unitPrice = l.lines[i].UnitPrice
		quantity = l.lines[i].Quantity + delta
		if quantity > domain.MaxLineQuantity {
			return fmt.Errorf("cart: failed to add %q: %d exceeds %d: %w",
				productID, quantity, domain.MaxLineQuantity, domain.ErrInvalidQuantity)
		}
	}
	if quantity > l.affordable(i, unitPrice) {
		return fmt.Errorf("cart: failed to add %q: %w: %w", productID, money.ErrOverflow, domain.ErrInvalidQuantity)
	}

	if i >= 0 {
		l.lines[i].Quantity = quantity
		return nil
	}

	l.lines = append(l.lines, Line{
		ProductID: productID,
		UnitPrice: unitPrice,
		Quantity:  quantity,
	})
	return nil
}

// SetQuantity устанавливает количество из пользовательского ввода.
// Все, что не является целым числом >= 1, превращается в 1, слишком
// большие значения сводятся к domain.MaxLineQuantity.
func (l *Ledger) SetQuantity(productID string, value string) (int, error) {
	i := l.index(productID)
	if i < 0 {
		return 0, fmt.Errorf("cart: failed to set quantity of %q: %w", productID, domain.ErrLineNotFound)
	}

	raw := strings.TrimSpace(value)
	quantity, err := strconv.Atoi(raw)
	switch {
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-"):
		quantity = domain.MaxLineQuantity
	case err != nil || quantity < 1:
		quantity = 1
	case quantity > domain.MaxLineQuantity:
		quantity = domain.MaxLineQuantity
	}
	quantity = min(quantity, l.affordable(i, l.lines[i].UnitPrice))

	if strconv.Itoa(quantity) != raw {
		l.logger.Debug("quantity corrected",
			zap.String("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(&domain.InputError{Field: "quantity", Value: value}),
		)
	}

	l.lines[i].Quantity = quantity
	return quantity, nil
}

// affordable возвращает наибольшее количество позиции i по цене unitPrice,
// при котором подытог остается в пределах money.MaxAmount. Для новой
// позиции i < 0.
func (l *Ledger) affordable(i int, unitPrice money.Money) int {
	rest := money.MaxAmount
	for j, line := range l.lines {
		if j == i {
			continue
		}
		rest -= line.Total()
	}
	if unitPrice <= 0 {
		return domain.MaxLineQuantity
	}
	return int(min(rest/unitPrice, money.Money(domain.MaxLineQuantity)))
}

// Remove удаляет позицию. Удаление отсутствующей позиции ничего не делает.
func (l *Ledger) Remove(productID string) bool {
	i := l.index(productID)
	if i < 0 {
		return false
	}
	l.lines = slices.Delete(l.lines, i, i+1)
	return true
}

// Line возвращает позицию по идентификатору товара
func (l *Ledger) Line(productID string) (Line, bool) {
	i := l.index(productID)
	if i < 0 {
		return Line{}, false
	}
	return l.lines[i], true
}

// Lines возвращает копию позиций в порядке добавления
func (l *Ledger) Lines() []Line {
	return slices.Clone(l.lines)
}

// Len возвращает количество позиций
func (l *Ledger) Len() int {
	return len(l.lines)
}

// Count возвращает общее количество единиц товара
func (l *Ledger) Count() int {
	n := 0
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

// Totals вычисляет итоги по текущим позициям
func (l *Ledger) Totals() Totals {
	return ComputeTotals(l.lines)
}

// LineItems возвращает позиции для создания сессии оплаты
func (l *Ledger) LineItems() []domain.LineItemRef {
	items := make([]domain.LineItemRef, 0, len(l.lines))
	for _, line := range l.lines {
		items = append(items, domain.LineItemRef{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return items
}

// Clear очищает корзину
func (l *Ledger) Clear() {
	l.lines = nil
}

func (l *Ledger) index(productID string) int {
	return slices.IndexFunc(l.lines, func(line Line) bool {
		return line.ProductID == productID
	})
}

// ComputeTotals вычисляет итоги для набора позиций
func ComputeTotals(lines []Line) Totals {
	if len(lines) == 0 {
		return Totals{}
	}

	subtotal := money.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Total())
	}
	tax := subtotal.MulRate(TaxRate)

	return Totals{
		Subtotal: subtotal,
		Shipping: ShippingFee,
		Tax:      tax,
		Total:    subtotal.Add(ShippingFee).Add(tax),
	}
}
