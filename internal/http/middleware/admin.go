package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mersinbot/masters-backend/internal/config"
	"github.com/mersinbot/masters-backend/internal/models"
)

// AdminMiddleware пропускает только администраторов из списка
// ADMIN_IDS. Вешается после AuthMiddleware.
func AdminMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(ContextUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		record, ok := raw.(*models.UserRecord)
		if !ok || !cfg.IsAdmin(record.TelegramID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "доступ запрещён"})
			return
		}

		c.Next()
	}
}
