package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/mersinbot/masters-backend/internal/cache"
)

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	db        *sqlx.DB
	userCache *cache.UserCache
	catalog   *cache.CatalogCache
}

// NewHealthHandler создаёт новый health handler.
func NewHealthHandler(db *sqlx.DB, userCache *cache.UserCache, catalog *cache.CatalogCache) *HealthHandler {
	return &HealthHandler{db: db, userCache: userCache, catalog: catalog}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	CacheSize int               `json:"cache_size"`
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	} else {
		checks["database"] = "healthy"
	}

	// Пустой справочник после старта означает, что загрузка каталога
	// не прошла.
	categories, districts := h.catalog.Sizes()
	if categories == 0 || districts == 0 {
		checks["catalog"] = "warning: catalog is empty"
	} else {
		checks["catalog"] = "healthy"
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
		CacheSize: h.userCache.Len(),
	})
}
