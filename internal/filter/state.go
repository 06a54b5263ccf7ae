package filter

import (
	"fmt"
	"slices"

	"github.com/avc/storefront/internal/domain"
)

// Catalog определяет чтение каталога, нужное фильтру
type Catalog interface {
	Categories() []string
	Filter(categoryPred func(string) bool, pricePred func(domain.Product) bool) []domain.Product
}

// Selection текущий выбор по обеим осям
type Selection struct {
	Category string
	Price    PriceBand
}

// Pill представляет активный фильтр, который можно снять
type Pill struct {
	Axis  domain.Axis `json:"axis"`
	Value string      `json:"value"`
	Label string      `json:"label"`
}

// State хранит выбор фильтров посетителя и его проекции.
// Каждый переход сначала пересчитывает результаты, затем плашки.
type State struct {
	catalog   Catalog
	options   *Options
	selection Selection
	results   []domain.Product
	pills     []Pill
}

// NewState создает состояние без фильтров и сразу вычисляет результаты
func NewState(catalog Catalog, options *Options) *State {
	if options == nil {
		options = DefaultOptions()
	}
	s := &State{
		catalog: catalog,
		options: options,
		selection: Selection{
			Category: domain.FilterAll,
			Price:    AllPrices,
		},
	}
	s.apply()
	return s
}

// Set устанавливает значение оси
func (s *State) Set(axis domain.Axis, value string) error {
	switch axis {
	case domain.AxisCategory:
		return s.SetCategory(value)
	case domain.AxisPrice:
		return s.SetPrice(value)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownAxis, axis)
	}
}

// SetCategory выбирает категорию. Неизвестная категория отклоняется, состояние не меняется.
func (s *State) SetCategory(value string) error {
	value = normalizeCategory(value)
	if value == "" {
		value = domain.FilterAll
	}
	if value != domain.FilterAll && !slices.Contains(s.KnownCategories(), value) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, value)
	}

	s.selection.Category = value
	s.apply()
	return nil
}

// SetPrice выбирает ценовой диапазон. Неразборный идентификатор отклоняется.
func (s *State) SetPrice(bandID string) error {
	band, err := ParseBand(bandID)
	if err != nil {
		return err
	}

	s.selection.Price = band
	s.apply()
	return nil
}

// ClearAxis сбрасывает одну ось в "all"
func (s *State) ClearAxis(axis domain.Axis) error {
	switch axis {
	case domain.AxisCategory:
		s.selection.Category = domain.FilterAll
	case domain.AxisPrice:
		s.selection.Price = AllPrices
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownAxis, axis)
	}
	s.apply()
	return nil
}

// ClearAll сбрасывает обе оси
func (s *State) ClearAll() {
	s.selection = Selection{Category: domain.FilterAll, Price: AllPrices}
	s.apply()
}

// Refresh пересчитывает проекции после перезагрузки каталога
func (s *State) Refresh() {
	s.apply()
}

// Selection возвращает текущий выбор
func (s *State) Selection() Selection {
	return s.selection
}

// Results возвращает отфильтрованные товары в порядке каталога
func (s *State) Results() []domain.Product {
	return slices.Clone(s.results)
}

// Pills возвращает активные плашки фильтров
func (s *State) Pills() []Pill {
	return slices.Clone(s.pills)
}

// Options возвращает варианты фильтров
func (s *State) Options() *Options {
	return s.options
}

// KnownCategories объединяет категории из настроек и из каталога
func (s *State) KnownCategories() []string {
	known := s.options.CategoryValues()
	for _, c := range s.catalog.Categories() {
		if !slices.Contains(known, c) {
			known = append(known, c)
		}
	}
	return known
}

func (s *State) apply() {
	s.recomputeResults()
	s.recomputePills()
}

func (s *State) recomputeResults() {
	var categoryPred func(string) bool
	if cat := s.selection.Category; cat != domain.FilterAll {
		categoryPred = func(c string) bool { return c == cat }
	}

	var pricePred func(domain.Product) bool
	if band := s.selection.Price; !band.IsAll() {
		pricePred = func(p domain.Product) bool { return band.Contains(p.Price) }
	}

	s.results = s.catalog.Filter(categoryPred, pricePred)
}

func (s *State) recomputePills() {
	pills := make([]Pill, 0, 2)
	if cat := s.selection.Category; cat != domain.FilterAll {
		pills = append(pills, Pill{
			Axis:  domain.AxisCategory,
			Value: cat,
			Label: s.options.Label(domain.AxisCategory, cat),
		})
	}
	if band := s.selection.Price; !band.IsAll() {
		pills = append(pills, Pill{
			Axis:  domain.AxisPrice,
			Value: band.ID,
			Label: s.options.Label(domain.AxisPrice, band.ID),
		})
	}
	s.pills = pills
}
