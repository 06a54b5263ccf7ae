package filter

import (
	"fmt"
	"strings"

	"github.com/avc/storefront/internal/domain"
	"github.com/avc/storefront/internal/money"
)

// PriceBand представляет ценовой диапазон фильтра.
// Диапазон "min-max" полуоткрыт слева: (min, max]. Диапазон с нулевой
// нижней границей включает ноль. "N+" означает [N, +inf).
type PriceBand struct {
	ID        string
	Min       money.Money
	Max       money.Money
	Unbounded bool
}

// AllPrices диапазон без ограничения по цене
var AllPrices = PriceBand{ID: domain.FilterAll}

// ParseBand разбирает идентификатор диапазона
func ParseBand(id string) (PriceBand, error) {
	id = strings.TrimSpace(id)
	if id == "" || id == domain.FilterAll {
		return AllPrices, nil
	}

	if lower, ok := strings.CutSuffix(id, "+"); ok {
		minPrice, err := money.Parse(lower)
		if err != nil {
			return PriceBand{}, fmt.Errorf("%w: %q", domain.ErrInvalidPriceBand, id)
		}
		return PriceBand{ID: id, Min: minPrice, Unbounded: true}, nil
	}

	lower, upper, ok := strings.Cut(id, "-")
	if !ok {
		return PriceBand{}, fmt.Errorf("%w: %q", domain.ErrInvalidPriceBand, id)
	}
	minPrice, err := money.Parse(lower)
	if err != nil {
		return PriceBand{}, fmt.Errorf("%w: %q", domain.ErrInvalidPriceBand, id)
	}
	maxPrice, err := money.Parse(upper)
	if err != nil {
		return PriceBand{}, fmt.Errorf("%w: %q", domain.ErrInvalidPriceBand, id)
	}
	if maxPrice <= minPrice {
		return PriceBand{}, fmt.Errorf("%w: %q: upper bound must exceed lower bound", domain.ErrInvalidPriceBand, id)
	}

	return PriceBand{ID: id, Min: minPrice, Max: maxPrice}, nil
}

// IsAll сообщает, что диапазон не ограничивает цену
func (b PriceBand) IsAll() bool {
	return b.ID == "" || b.ID == domain.FilterAll
}

// Contains проверяет, попадает ли цена в диапазон
func (b PriceBand) Contains(price money.Money) bool {
	switch {
	case b.IsAll():
		return true
	case b.Unbounded:
		return price >= b.Min
	case b.Min == money.Zero:
		return price <= b.Max
	default:
		return price > b.Min && price <= b.Max
	}
}
