package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/mersinbot/masters-backend/internal/service"
)

// RateLimitMiddleware ограничивает частоту запросов на пользователя.
// Весь трафик приходит с одного шлюза, поэтому лимит по IP положил бы
// всех пользователей в одну корзину. Ключ — telegram_id из Bearer-токена;
// для неавторизованных маршрутов (обмен токена, справочники) — IP.
// По умолчанию: 30 запросов в минуту.
func RateLimitMiddleware(limit int64, period time.Duration, tokens *service.TokenManager) gin.HandlerFunc {
	if limit <= 0 {
		limit = 30
	}
	if period <= 0 {
		period = 1 * time.Minute
	}

	rate := limiter.Rate{
		Period: period,
		Limit:  limit,
	}
	store := memory.NewStore()
	instance := limiter.New(store, rate)

	return func(c *gin.Context) {
		key := limiterKey(c, tokens)
		context, err := instance.Get(c, key)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", context.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", context.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", context.Reset))

		if context.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "слишком много запросов, попробуйте позже",
			})
			return
		}

		c.Next()
	}
}

// limiterKey извлекает telegram_id из Bearer-токена, не прерывая запрос:
// невалидный токен отбросит AuthMiddleware дальше по цепочке.
func limiterKey(c *gin.Context, tokens *service.TokenManager) string {
	auth := c.GetHeader("Authorization")
	if tokens != nil && strings.HasPrefix(auth, "Bearer ") {
		raw := strings.TrimPrefix(auth, "Bearer ")
		if telegramID, err := tokens.Parse(raw); err == nil && telegramID != 0 {
			return "tg:" + strconv.FormatInt(telegramID, 10)
		}
	}
	return "ip:" + c.ClientIP()
}
