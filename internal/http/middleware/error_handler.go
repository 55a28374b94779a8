package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mersinbot/masters-backend/internal/logger"
	"github.com/mersinbot/masters-backend/internal/repository"
	"github.com/mersinbot/masters-backend/internal/service"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Маскирует внутренние ошибки и возвращает понятные сообщения клиенту.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			statusCode := http.StatusInternalServerError
			message := "внутренняя ошибка сервера"

			if logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{
					"error":  err.Error(),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("Request error")
			}

			switch {
			case errors.Is(err.Err, repository.ErrUserNotFound):
				statusCode, message = http.StatusNotFound, "пользователь не найден"
			case errors.Is(err.Err, repository.ErrMasterNotFound):
				statusCode, message = http.StatusNotFound, "мастер не найден"
			case errors.Is(err.Err, repository.ErrOrderNotFound):
				statusCode, message = http.StatusNotFound, "заказ не найден"
			case errors.Is(err.Err, repository.ErrClientProfileNotFound):
				statusCode, message = http.StatusNotFound, "профиль клиента не найден"
			case errors.Is(err.Err, repository.ErrCategoryNotFound):
				statusCode, message = http.StatusNotFound, "категория не найдена"
			case errors.Is(err.Err, repository.ErrDistrictNotFound):
				statusCode, message = http.StatusNotFound, "район не найден"
			case errors.Is(err.Err, repository.ErrOrderNotActive):
				statusCode, message = http.StatusConflict, "заказ уже закрыт"
			case errors.Is(err.Err, service.ErrPendingOrder):
				statusCode, message = http.StatusConflict, err.Error()
			case errors.Is(err.Err, service.ErrPhoneTaken),
				errors.Is(err.Err, service.ErrPhoneUnclaimed):
				statusCode, message = http.StatusConflict, err.Error()
			case errors.Is(err.Err, service.ErrPhoneInvalid):
				statusCode, message = http.StatusBadRequest, err.Error()
			case errors.Is(err.Err, service.ErrMasterUnavailable):
				statusCode, message = http.StatusConflict, err.Error()
			case errors.Is(err.Err, service.ErrNotOrderParticipant):
				statusCode, message = http.StatusForbidden, err.Error()
			default:
				if errStr := err.Error(); errStr != "" && !containsInternalKeywords(errStr) {
					message = errStr
					statusCode = http.StatusBadRequest
				}
			}

			c.JSON(statusCode, gin.H{"error": message})
		}
	}
}

// containsInternalKeywords проверяет, содержит ли строка ключевые слова внутренних ошибок.
func containsInternalKeywords(s string) bool {
	keywords := []string{
		"sql:",
		"database",
		"connection",
		"timeout",
		"internal",
		"panic",
		"runtime",
		"repository",
	}

	for _, keyword := range keywords {
		if contains(s, keyword) {
			return true
		}
	}
	return false
}

// contains проверяет, содержит ли строка подстроку (case-insensitive).
func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
