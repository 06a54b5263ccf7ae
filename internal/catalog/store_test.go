package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/avc/storefront/internal/domain"
	domainmocks "github.com/avc/storefront/internal/domain/mocks"
	"github.com/avc/storefront/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPayload = `{
	"success": true,
	"products": [
		{"id": "drill", "name": "Cordless Drill Set", "category": "tools", "price": 129.99, "imageUrl": "https://img/1.png"},
		{"id": "dog-food", "name": "Premium Dog Food", "category": "pet-care", "price": "59.99", "imageUrl": "https://img/2.png"},
		{"id": "leash", "name": "<b>Leash</b>", "category": "Pet-Care", "price": "24.50", "imageUrl": ""},
		{"id": "broken", "name": "Broken", "category": "tools", "price": "call us", "imageUrl": ""}
	]
}`

func TestDecode(t *testing.T) {
	t.Run("Skips products with invalid price", func(t *testing.T) {
		products, dataErrs, err := Decode([]byte(testPayload))
		require.NoError(t, err)
		require.Len(t, products, 3)

		var dataErr *domain.DataError
		require.ErrorAs(t, dataErrs, &dataErr)
		assert.Equal(t, "broken", dataErr.ProductID)
		assert.Equal(t, "price", dataErr.Field)

		assert.Equal(t, money.FromCents(12999), products[0].Price)
		assert.Equal(t, money.FromCents(5999), products[1].Price)
		assert.Equal(t, "Leash", products[2].Name)
		assert.Equal(t, "pet-care", products[2].Category)
	})

	t.Run("Duplicate and empty ids", func(t *testing.T) {
		payload := `{"success": true, "products": [
			{"id": "a", "price": 1},
			{"id": "a", "price": 2},
			{"id": " ", "price": 3}
		]}`
		products, dataErrs, err := Decode([]byte(payload))
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, money.FromCents(100), products[0].Price)
		assert.Error(t, dataErrs)
	})

	tests := []struct {
		name    string
		payload string
	}{
		{name: "Not JSON", payload: `<html>`},
		{name: "Missing success", payload: `{"products": []}`},
		{name: "Success false", payload: `{"success": false, "products": []}`},
		{name: "Success not boolean", payload: `{"success": "true", "products": []}`},
		{name: "Products not array", payload: `{"success": true, "products": {"id": "a"}}`},
		{name: "Products missing", payload: `{"success": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode([]byte(tt.payload))
			var fetchErr *domain.FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, domain.FetchPayload, fetchErr.Kind)
		})
	}
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()
	logger, _ := zap.NewDevelopment()

	t.Run("Success replaces list", func(t *testing.T) {
		store := NewStore(logger)
		source := domainmocks.NewCatalogSourceMock(t)
		source.EXPECT().Fetch(mock.Anything).Return([]byte(testPayload), nil).Once()

		products, err := store.Load(ctx, source)
		require.NoError(t, err)
		assert.Len(t, products, 3)
		assert.True(t, store.Ready())
		assert.Nil(t, store.LastError())
		assert.Equal(t, []string{"tools", "pet-care"}, store.Categories())

		source.EXPECT().Fetch(mock.Anything).Return([]byte(`{"success": true, "products": [{"id": "x", "price": 5}]}`), nil).Once()
		_, err = store.Load(ctx, source)
		require.NoError(t, err)

		assert.Equal(t, 1, store.Len())
		_, ok := store.ByID("drill")
		assert.False(t, ok, "old list must be discarded, not merged")
		_, ok = store.ByID("x")
		assert.True(t, ok)
	})

	t.Run("Failure retains previous contents", func(t *testing.T) {
		store := NewStore(logger)
		source := domainmocks.NewCatalogSourceMock(t)
		source.EXPECT().Fetch(mock.Anything).Return([]byte(testPayload), nil).Once()
		_, err := store.Load(ctx, source)
		require.NoError(t, err)

		source.EXPECT().Fetch(mock.Anything).Return(nil, &domain.FetchError{Kind: domain.FetchStatus, StatusCode: 503}).Once()
		_, err = store.Load(ctx, source)

		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, 503, fetchErr.StatusCode)
		assert.Equal(t, 3, store.Len())
		assert.NotNil(t, store.LastError())
	})

	t.Run("Failure on first load leaves store empty", func(t *testing.T) {
		store := NewStore(logger)
		source := domainmocks.NewCatalogSourceMock(t)
		source.EXPECT().Fetch(mock.Anything).Return(nil, errors.New("connection refused")).Once()

		_, err := store.Load(ctx, source)

		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, domain.FetchNetwork, fetchErr.Kind)
		assert.False(t, store.Ready())
		assert.Empty(t, store.All())
	})

	t.Run("Malformed payload", func(t *testing.T) {
		store := NewStore(logger)
		source := domainmocks.NewCatalogSourceMock(t)
		source.EXPECT().Fetch(mock.Anything).Return([]byte(`{"success": true, "products": "none"}`), nil).Once()

		_, err := store.Load(ctx, source)

		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, domain.FetchPayload, fetchErr.Kind)
		assert.False(t, store.Ready())
	})
}

func TestStore_Filter(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	store := NewStore(logger)
	_, err := store.LoadPayload([]byte(testPayload))
	require.NoError(t, err)

	t.Run("Preserves fetch order", func(t *testing.T) {
		got := store.Filter(func(c string) bool { return c == "pet-care" }, nil)
		require.Len(t, got, 2)
		assert.Equal(t, "dog-food", got[0].ID)
		assert.Equal(t, "leash", got[1].ID)
	})

	t.Run("Both predicates", func(t *testing.T) {
		got := store.Filter(
			func(c string) bool { return c == "pet-care" },
			func(p domain.Product) bool { return p.Price > money.FromCents(3000) },
		)
		require.Len(t, got, 1)
		assert.Equal(t, "dog-food", got[0].ID)
	})

	t.Run("Nil predicates return everything", func(t *testing.T) {
		assert.Len(t, store.All(), 3)
	})
}
