package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"
)

// PingFunc проверяет доступность зависимости
type PingFunc func(ctx context.Context) error

// CatalogStatus определяет готовность каталога
type CatalogStatus interface {
	Ready() bool
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	catalog CatalogStatus
	checks  map[string]PingFunc
	logger  *zap.Logger
}

// NewHealthHandler создает новый HealthHandler. checks содержит только
// подключенные зависимости (database, redis).
func NewHealthHandler(catalog CatalogStatus, checks map[string]PingFunc, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		catalog: catalog,
		checks:  checks,
		logger:  logger,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status       string            `json:"status"`
	Catalog      string            `json:"catalog"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Health возвращает статус приложения
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:  "ok",
		Catalog: "ok",
	}

	if !h.catalog.Ready() {
		response.Status = "degraded"
		response.Catalog = "not loaded"
	}

	// Проверяем зависимости с таймаутом
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if len(h.checks) > 0 {
		response.Dependencies = make(map[string]string, len(h.checks))
	}
	for _, name := range h.checkNames() {
		if err := h.checks[name](ctx); err != nil {
			response.Status = "degraded"
			response.Dependencies[name] = "unavailable"
			h.logger.Warn("health check: dependency unavailable", zap.String("dependency", name), zap.Error(err))
			continue
		}
		response.Dependencies[name] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if response.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode health response", zap.Error(err))
	}
}

// Ready возвращает готовность приложения принимать трафик.
// Без загруженного каталога витрине нечего показывать.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.catalog.Ready() {
		h.logger.Warn("readiness check failed: catalog not loaded")
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *HealthHandler) checkNames() []string {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
