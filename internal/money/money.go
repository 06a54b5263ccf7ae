package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	ErrNegative = errors.New("money: negative amount")
	ErrInvalid  = errors.New("money: invalid amount")
	ErrOverflow = errors.New("money: amount out of range")
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Money представляет неотрицательную сумму в центах
type Money int64

const (
	// Zero нулевая сумма
	Zero Money = 0
	// MaxAmount верхняя граница суммы, один триллион долларов в центах.
	// Запас до MaxInt64 покрывает налог и доставку поверх подытога.
	MaxAmount Money = 100_000_000_000_000
)

// FromCents создает сумму из центов
func FromCents(cents int64) Money {
	return Money(cents)
}

// Parse разбирает строку вида "129.99" или " 15 " в сумму
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return FromDecimal(d)
}

// FromDecimal округляет десятичное значение до центов
func FromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Zero, ErrNegative
	}
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(decimal.NewFromInt(int64(MaxAmount))) {
		return Zero, fmt.Errorf("%w: %s", ErrOverflow, d.String())
	}
	return Money(cents.IntPart()), nil
}

// Cents возвращает сумму в центах
func (m Money) Cents() int64 {
	return int64(m)
}

// Add складывает суммы
func (m Money) Add(other Money) Money {
	return m + other
}

// Multiply умножает сумму на количество
func (m Money) Multiply(quantity int) Money {
	return m * Money(quantity)
}

// AddChecked складывает суммы и возвращает ErrOverflow вместо переполнения
func (m Money) AddChecked(other Money) (Money, error) {
	if m < 0 || other < 0 {
		return Zero, ErrNegative
	}
	if m > MaxAmount-other {
		return Zero, fmt.Errorf("%w: %d + %d", ErrOverflow, m, other)
	}
	return m + other, nil
}

// MultiplyChecked умножает сумму на количество без переполнения
func (m Money) MultiplyChecked(quantity int) (Money, error) {
	if m < 0 || quantity < 0 {
		return Zero, ErrNegative
	}
	if quantity > 0 && m > MaxAmount/Money(quantity) {
		return Zero, fmt.Errorf("%w: %d x %d", ErrOverflow, m, quantity)
	}
	return m * Money(quantity), nil
}

// MulRate умножает сумму на ставку с округлением до цента (half-up)
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money(decimal.NewFromInt(int64(m)).Mul(rate).Round(0).IntPart())
}

// Decimal возвращает сумму в долларах
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// Format форматирует сумму как "$1,234.56"
func (m Money) Format() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + printer.Sprintf("$%d.%02d", cents/100, cents%100)
}

func (m Money) String() string {
	return m.Format()
}

// MarshalJSON сериализует сумму как десятичную строку "129.99"
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal().StringFixed(2))
}

// UnmarshalJSON принимает число или числовую строку
func (m *Money) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		return fmt.Errorf("%w: null", ErrInvalid)
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, string(data))
	}
	parsed, err := FromDecimal(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
