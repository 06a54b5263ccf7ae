package app

import (
	"github.com/avc/storefront/internal/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// setupRouter создает и настраивает роутер
func setupRouter(deps *dependencies, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Глобальные middleware
	setupMiddleware(r, logger)

	// Маршруты
	setupRoutes(r, deps, logger)

	return r
}

// setupMiddleware настраивает middleware для роутера
func setupMiddleware(r *chi.Mux, logger *zap.Logger) {
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.LoggingMiddleware(logger))
	r.Use(handlers.RecoveryMiddleware(logger))
	r.Use(middleware.Compress(5))
}

// setupRoutes настраивает маршруты приложения
func setupRoutes(r *chi.Mux, deps *dependencies, logger *zap.Logger) {
	h := deps.handlers

	// Health check эндпоинты
	r.Get("/health", h.health.Health)
	r.Get("/ready", h.health.Ready)

	// Создание сессии оплаты из корзины клиента
	r.Post("/create-checkout-session", h.checkout.CreateCheckoutSession)
	r.Get("/api/checkout/sessions/{id}", h.checkout.GetCheckoutSession)

	// Эндпоинты витрины привязаны к сессии посетителя
	r.Group(func(r chi.Router) {
		r.Use(handlers.SessionMiddleware(deps.sessions, deps.jwtManager, deps.secure, logger))

		r.Get("/api/storefront", h.storefront.GetStorefront)

		r.Get("/api/products", h.storefront.ListProducts)
		r.Get("/api/products/{id}", h.storefront.GetProduct)

		r.Put("/api/filters/{axis}", h.storefront.SetFilter)
		r.Delete("/api/filters/{axis}", h.storefront.ClearFilter)
		r.Delete("/api/filters", h.storefront.ClearFilters)

		r.Get("/api/cart", h.storefront.GetCart)
		r.Post("/api/cart/items", h.storefront.AddItem)
		r.Put("/api/cart/items/{id}", h.storefront.SetQuantity)
		r.Delete("/api/cart/items/{id}", h.storefront.RemoveItem)
		r.Post("/api/cart/checkout", h.storefront.Checkout)
	})
}
