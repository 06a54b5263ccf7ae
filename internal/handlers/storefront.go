package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/avc/storefront/internal/domain"
	"github.com/avc/storefront/internal/render"
	"github.com/avc/storefront/internal/storefront"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StorefrontHandler обрабатывает действия посетителя витрины
type StorefrontHandler struct {
	logger *zap.Logger
}

// NewStorefrontHandler создает новый StorefrontHandler
func NewStorefrontHandler(logger *zap.Logger) *StorefrontHandler {
	return &StorefrontHandler{logger: logger}
}

type cartResponse struct {
	Lines    []render.CartLineVM      `json:"lines"`
	Summary  render.CartSummaryVM     `json:"summary"`
	Checkout render.CheckoutControlVM `json:"checkout"`
	Toast    *render.ToastVM          `json:"toast"`
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

type setFilterRequest struct {
	Value string `json:"value"`
}

// GetStorefront возвращает полную отрисовку витрины
func (h *StorefrontHandler) GetStorefront(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.View(), h.logger)
}

// ListProducts возвращает сетку товаров с учетом фильтров сессии
func (h *StorefrontHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.Products(), h.logger)
}

// GetProduct возвращает страницу товара
func (h *StorefrontHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	detail, err := session.ProductDetail(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, nil, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, detail, h.logger)
}

// SetFilter выбирает значение оси фильтра
func (h *StorefrontHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req setFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	h.dispatch(w, r, storefront.SetFilter{
		Axis:  domain.Axis(chi.URLParam(r, "axis")),
		Value: req.Value,
	})
}

// ClearFilter сбрасывает одну ось фильтра
func (h *StorefrontHandler) ClearFilter(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, storefront.ClearFilter{Axis: domain.Axis(chi.URLParam(r, "axis"))})
}

// ClearFilters сбрасывает все фильтры
func (h *StorefrontHandler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, storefront.ClearFilters{})
}

// GetCart возвращает корзину
func (h *StorefrontHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(session.View()), h.logger)
}

// AddItem добавляет товар в корзину. Без quantity добавляется одна штука.
func (h *StorefrontHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	h.dispatch(w, r, storefront.AddToCart{ProductID: req.ProductID, Quantity: quantity})
}

// SetQuantity меняет количество позиции. Принимает строку или число.
func (h *StorefrontHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	h.dispatch(w, r, storefront.SetQuantity{
		ProductID: chi.URLParam(r, "id"),
		Value:     quantityValue(req.Quantity),
	})
}

// RemoveItem удаляет позицию из корзины
func (h *StorefrontHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, storefront.RemoveItem{ProductID: chi.URLParam(r, "id")})
}

// Checkout запускает оплату и возвращает адрес страницы оплаты
func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, storefront.Checkout{})
}

func (h *StorefrontHandler) dispatch(w http.ResponseWriter, r *http.Request, intent storefront.Intent) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	view, err := session.Dispatch(r.Context(), intent)
	if err != nil {
		writeError(w, err, view, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view, h.logger)
}

func (h *StorefrontHandler) session(w http.ResponseWriter, r *http.Request) (*storefront.Session, bool) {
	session, ok := GetSession(r.Context())
	if !ok {
		h.logger.Error("storefront session missing from context")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return session, true
}

func toCartResponse(view storefront.View) cartResponse {
	return cartResponse{
		Lines:    view.CartLines,
		Summary:  view.Summary,
		Checkout: view.Checkout,
		Toast:    view.Toast,
	}
}

// quantityValue возвращает ввод количества как есть, строкой
func quantityValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
