package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mersinbot/masters-backend/internal/config"
	"github.com/mersinbot/masters-backend/internal/http/handlers/common"
	"github.com/mersinbot/masters-backend/internal/service"
)

// AuthHandler выпускает JWT для шлюзов. Шлюз аутентифицируется общим
// секретом (токеном бота) и обменивает telegram_id на короткоживущий
// токен.
type AuthHandler struct {
	cfg    *config.Config
	tokens *service.TokenManager
	users  *service.UserService
}

func NewAuthHandler(cfg *config.Config, tokens *service.TokenManager, users *service.UserService) *AuthHandler {
	return &AuthHandler{cfg: cfg, tokens: tokens, users: users}
}

// GatewayToken POST /auth/gateway
func (h *AuthHandler) GatewayToken(c *gin.Context) {
	key := c.GetHeader("X-Gateway-Key")
	if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.cfg.BotToken)) != 1 {
		common.RespondUnauthorized(c, "неверный ключ шлюза")
		return
	}

	var req struct {
		TelegramID int64   `json:"telegram_id" binding:"required"`
		Username   *string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "telegram_id обязателен")
		return
	}

	// Пользователь создаётся при первом контакте, токен выписывается в
	// любом случае.
	record, err := h.users.ResolveUser(c.Request.Context(), req.TelegramID, req.Username)
	if err != nil {
		c.Error(err)
		return
	}

	token, err := h.tokens.Generate(req.TelegramID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token.Token,
		"expires_in": int64(token.ExpiresIn.Seconds()),
		"user":       record,
	})
}
