package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mersinbot/masters-backend/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextUserKey   = "user"
	ContextUserIDKey = "userID"
)

// AuthMiddleware проверяет JWT шлюза и кладёт карточку пользователя в
// контекст. Карточка читается сквозь кеш, повторные запросы одного
// пользователя не ходят в БД.
func AuthMiddleware(tokens *service.TokenManager, users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		telegramID, err := tokens.Parse(raw)
		if err != nil || telegramID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "токен невалиден"})
			return
		}

		record, err := users.ResolveUser(c.Request.Context(), telegramID, nil)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "пользователь не найден"})
			return
		}

		c.Set(ContextUserKey, record)
		c.Set(ContextUserIDKey, record.UserID)
		c.Next()
	}
}
