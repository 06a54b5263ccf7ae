package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/avc/storefront/internal/domain"
	"github.com/avc/storefront/internal/money"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/multierr"
)

var (
	errMissingSuccess = errors.New("success flag is not true")
	errProductsShape  = errors.New("products is not an array")
	errEmptyID        = errors.New("empty id")
	errDuplicateID    = errors.New("duplicate id")
)

// Данные таблицы приходят от третьей стороны, разметку вырезаем полностью
var textPolicy = bluemonday.StrictPolicy()

type envelope struct {
	Success  json.RawMessage `json:"success"`
	Products json.RawMessage `json:"products"`
}

type rawProduct struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    json.RawMessage `json:"price"`
	ImageURL string          `json:"imageUrl"`
}

// Decode разбирает ответ API каталога.
// Ошибка конверта возвращается как *domain.FetchError, ошибки отдельных товаров
// собираются в dataErrs, а сами товары пропускаются.
func Decode(payload []byte) (products []domain.Product, dataErrs error, err error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, nil, &domain.FetchError{Kind: domain.FetchPayload, Err: err}
	}

	var success bool
	if len(env.Success) == 0 || json.Unmarshal(env.Success, &success) != nil || !success {
		return nil, nil, &domain.FetchError{Kind: domain.FetchPayload, Err: errMissingSuccess}
	}

	var items []json.RawMessage
	trimmed := bytes.TrimSpace(env.Products)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil, &domain.FetchError{Kind: domain.FetchPayload, Err: errProductsShape}
	}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, nil, &domain.FetchError{Kind: domain.FetchPayload, Err: err}
	}

	seen := make(map[string]struct{}, len(items))
	products = make([]domain.Product, 0, len(items))
	for i, item := range items {
		product, err := decodeProduct(item, i)
		if err != nil {
			dataErrs = multierr.Append(dataErrs, err)
			continue
		}
		if _, dup := seen[product.ID]; dup {
			dataErrs = multierr.Append(dataErrs, &domain.DataError{ProductID: product.ID, Field: "id", Err: errDuplicateID})
			continue
		}
		seen[product.ID] = struct{}{}
		products = append(products, product)
	}

	return products, dataErrs, nil
}

func decodeProduct(item json.RawMessage, index int) (domain.Product, error) {
	var raw rawProduct
	if err := json.Unmarshal(item, &raw); err != nil {
		return domain.Product{}, &domain.DataError{ProductID: fmt.Sprintf("#%d", index), Field: "record", Err: err}
	}

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		return domain.Product{}, &domain.DataError{ProductID: fmt.Sprintf("#%d", index), Field: "id", Err: errEmptyID}
	}

	var price money.Money
	if err := price.UnmarshalJSON(raw.Price); err != nil {
		return domain.Product{}, &domain.DataError{ProductID: id, Field: "price", Err: err}
	}

	return domain.Product{
		ID:       id,
		Name:     strings.TrimSpace(textPolicy.Sanitize(raw.Name)),
		Category: strings.ToLower(strings.TrimSpace(textPolicy.Sanitize(raw.Category))),
		Price:    price,
		ImageURL: strings.TrimSpace(raw.ImageURL),
	}, nil
}
