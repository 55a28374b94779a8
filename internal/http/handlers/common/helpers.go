package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mersinbot/masters-backend/internal/http/middleware"
	"github.com/mersinbot/masters-backend/internal/models"
)

var (
	// ErrNoUser — в контексте нет карточки пользователя.
	ErrNoUser = errors.New("пользователь не найден в контексте")
	// ErrInvalidID — параметр пути не является числом.
	ErrInvalidID = errors.New("неверный формат идентификатора")
)

// CurrentUser извлекает карточку пользователя из контекста.
func CurrentUser(c *gin.Context) (*models.UserRecord, error) {
	raw, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, ErrNoUser
	}

	record, ok := raw.(*models.UserRecord)
	if !ok {
		return nil, ErrNoUser
	}

	return record, nil
}

// CurrentUserID извлекает внутренний id пользователя из контекста.
func CurrentUserID(c *gin.Context) (int64, error) {
	record, err := CurrentUser(c)
	if err != nil {
		return 0, err
	}
	return record.UserID, nil
}

// ParseIDParam читает числовой идентификатор из параметра пути.
func ParseIDParam(c *gin.Context, paramName string) (int64, error) {
	param := c.Param(paramName)
	if param == "" {
		return 0, fmt.Errorf("параметр %s отсутствует", paramName)
	}

	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}

	return id, nil
}

// RespondError отправляет единообразный ответ с ошибкой.
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// RespondUnauthorized отправляет 401.
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "требуется авторизация"
	}
	RespondError(c, http.StatusUnauthorized, message)
}

// RespondForbidden отправляет 403.
func RespondForbidden(c *gin.Context, message string) {
	if message == "" {
		message = "доступ запрещён"
	}
	RespondError(c, http.StatusForbidden, message)
}

// RespondNotFound отправляет 404.
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "ресурс не найден"
	}
	RespondError(c, http.StatusNotFound, message)
}

// RespondBadRequest отправляет 400.
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	RespondError(c, http.StatusBadRequest, message)
}

// ParseIntQuery читает целочисленный query-параметр с запасным значением.
func ParseIntQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

// GetPagination извлекает limit и offset из query-параметров.
func GetPagination(c *gin.Context) (limit, offset int) {
	limit = ParseIntQuery(c, "limit", 10)
	offset = ParseIntQuery(c, "offset", 0)
	if limit > 50 {
		limit = 50
	}
	if limit < 1 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return
}
