package filter

import (
	"fmt"
	"os"
	"strings"

	"github.com/avc/storefront/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Option представляет кнопку фильтра в боковой панели
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Options содержит варианты фильтров по обеим осям
type Options struct {
	Categories []Option `yaml:"categories"`
	PriceBands []Option `yaml:"priceBands"`
}

// DefaultOptions возвращает ценовые диапазоны по умолчанию.
// Категории берутся из каталога.
func DefaultOptions() *Options {
	return &Options{
		PriceBands: []Option{
			{Value: "0-25", Label: "Under $25"},
			{Value: "25-50", Label: "$25 to $50"},
			{Value: "50-100", Label: "$50 to $100"},
			{Value: "100+", Label: "$100 & Above"},
		},
	}
}

// LoadOptions читает варианты фильтров из YAML файла.
// Пустой путь возвращает DefaultOptions.
func LoadOptions(path string) (*Options, error) {
	if path == "" {
		return DefaultOptions(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("filter: failed to read options file: %w", err)
	}

	return ParseOptions(data)
}

// ParseOptions разбирает и проверяет YAML с вариантами фильтров
func ParseOptions(data []byte) (*Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("filter: failed to parse options: %w", err)
	}

	for i := range opts.Categories {
		opts.Categories[i].Value = normalizeCategory(opts.Categories[i].Value)
		if opts.Categories[i].Value == "" {
			return nil, fmt.Errorf("filter: category option %d has empty value", i)
		}
	}

	bands := opts.PriceBands[:0]
	for _, o := range opts.PriceBands {
		band, err := ParseBand(o.Value)
		if err != nil {
			return nil, fmt.Errorf("filter: invalid price band option: %w", err)
		}
		// "all" всегда доступен и отдельной кнопкой не хранится
		if band.IsAll() {
			continue
		}
		bands = append(bands, o)
	}
	opts.PriceBands = bands

	if len(opts.PriceBands) == 0 {
		opts.PriceBands = DefaultOptions().PriceBands
	}

	return &opts, nil
}

// Label возвращает подпись значения оси. Если подпись не задана,
// значение приводится к заголовочному регистру.
func (o *Options) Label(axis domain.Axis, value string) string {
	if value == domain.FilterAll {
		return "All"
	}
	var list []Option
	switch axis {
	case domain.AxisCategory:
		list = o.Categories
	case domain.AxisPrice:
		list = o.PriceBands
	}
	for _, opt := range list {
		if opt.Value == value && opt.Label != "" {
			return opt.Label
		}
	}
	return cases.Title(language.AmericanEnglish).String(strings.ReplaceAll(value, "-", " "))
}

// CategoryValues возвращает значения категорий из настроек
func (o *Options) CategoryValues() []string {
	values := make([]string, 0, len(o.Categories))
	for _, opt := range o.Categories {
		values = append(values, opt.Value)
	}
	return values
}

func normalizeCategory(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
