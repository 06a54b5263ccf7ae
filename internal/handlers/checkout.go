package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/avc/storefront/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutService определяет создание сессии оплаты на стороне сервера
type CheckoutService interface {
	Create(ctx context.Context, items []domain.LineItemRef) (*domain.CheckoutSession, error)
}

// CheckoutHandler обслуживает POST /create-checkout-session и журнал сессий
type CheckoutHandler struct {
	service  CheckoutService
	sessions domain.CheckoutSessionRepository
	logger   *zap.Logger
}

// NewCheckoutHandler создает новый CheckoutHandler. sessions может быть nil.
func NewCheckoutHandler(service CheckoutService, sessions domain.CheckoutSessionRepository, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		sessions: sessions,
		logger:   logger,
	}
}

type createCheckoutSessionRequest struct {
	Items []domain.LineItemRef `json:"items"`
}

type createCheckoutSessionResponse struct {
	URL string `json:"url"`
}

// CreateCheckoutSession создает сессию оплаты и перенаправляет на страницу провайдера.
// Клиент, принимающий JSON, получает адрес в теле ответа.
func (h *CheckoutHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req createCheckoutSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	session, err := h.service.Create(r.Context(), req.Items)
	if err != nil {
		var gatewayErr *domain.GatewayError
		if errors.As(err, &gatewayErr) {
			http.Error(w, "Could not create checkout session", http.StatusBadGateway)
			return
		}
		if status := statusFor(err); status < http.StatusInternalServerError {
			http.Error(w, publicMessage(err), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create checkout session", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, createCheckoutSessionResponse{URL: session.URL}, h.logger)
		return
	}

	http.Redirect(w, r, session.URL, http.StatusSeeOther)
}

// GetCheckoutSession возвращает запись журнала для страницы успешной оплаты
func (h *CheckoutHandler) GetCheckoutSession(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	session, err := h.sessions.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrCheckoutSessionNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get checkout session", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, session, h.logger)
}
