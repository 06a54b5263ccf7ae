package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avc/storefront/internal/domain"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
	View  any    `json:"view,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// statusFor сопоставляет ошибку домена со статусом HTTP
func statusFor(err error) int {
	var gatewayErr *domain.GatewayError
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrLineNotFound),
		errors.Is(err, domain.ErrCheckoutSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrInvalidPriceBand),
		errors.Is(err, domain.ErrUnknownAxis),
		errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCartEmpty),
		errors.Is(err, domain.ErrCheckoutInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCatalogNotReady):
		return http.StatusServiceUnavailable
	case errors.As(err, &gatewayErr):
		if gatewayErr.Timeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError пишет ошибку вместе с текущей отрисовкой, если она есть
func writeError(w http.ResponseWriter, err error, view any, logger *zap.Logger) {
	status := statusFor(err)
	message := http.StatusText(status)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	} else {
		message = publicMessage(err)
	}
	writeJSON(w, status, errorResponse{Error: message, View: view}, logger)
}

func publicMessage(err error) string {
	for _, known := range []error{
		domain.ErrProductNotFound,
		domain.ErrLineNotFound,
		domain.ErrCheckoutSessionNotFound,
		domain.ErrUnknownCategory,
		domain.ErrInvalidPriceBand,
		domain.ErrUnknownAxis,
		domain.ErrInvalidQuantity,
		domain.ErrCartEmpty,
		domain.ErrCheckoutInProgress,
		domain.ErrCatalogNotReady,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "checkout provider unavailable"
}
