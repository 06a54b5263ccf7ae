package domain

import (
	"errors"
	"fmt"
)

// Ошибки каталога
var (
	ErrCatalogNotReady  = errors.New("catalog not loaded")
	ErrProductNotFound  = errors.New("product not found")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrInvalidPriceBand = errors.New("invalid price band")
	ErrUnknownAxis      = errors.New("unknown filter axis")
)

// Ошибки корзины
var (
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrLineNotFound       = errors.New("cart line not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// Ошибки сессий оплаты
var (
	ErrCheckoutSessionNotFound = errors.New("checkout session not found")
)

// FetchErrorKind описывает причину сбоя загрузки каталога
type FetchErrorKind string

const (
	FetchNetwork FetchErrorKind = "network"
	FetchStatus  FetchErrorKind = "status"
	FetchPayload FetchErrorKind = "payload"
)

// FetchError представляет сбой загрузки каталога целиком
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchStatus:
		return fmt.Sprintf("catalog fetch: unexpected status code: %d", e.StatusCode)
	case FetchPayload:
		return fmt.Sprintf("catalog fetch: malformed payload: %v", e.Err)
	default:
		return fmt.Sprintf("catalog fetch: %v", e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DataError представляет некорректную запись отдельного товара
type DataError struct {
	ProductID string
	Field     string
	Err       error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("catalog data: product %q: invalid %s: %v", e.ProductID, e.Field, e.Err)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// GatewayError представляет сбой создания сессии оплаты
type GatewayError struct {
	Timeout bool
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("checkout gateway: timed out: %v", e.Err)
	}
	return fmt.Sprintf("checkout gateway: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// InputError представляет некорректный ввод пользователя, который исправляется на месте
type InputError struct {
	Field string
	Value string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input: invalid %s %q", e.Field, e.Value)
}
