package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mersinbot/masters-backend/internal/http/handlers/common"
	"github.com/mersinbot/masters-backend/internal/service"
)

// UserHandler отдаёт карточку текущего пользователя и его настройки.
type UserHandler struct {
	users      *service.UserService
	clients    *service.ClientService
	reputation *service.ReputationService
}

func NewUserHandler(users *service.UserService, clients *service.ClientService, reputation *service.ReputationService) *UserHandler {
	return &UserHandler{users: users, clients: clients, reputation: reputation}
}

// Me GET /me
func (h *UserHandler) Me(c *gin.Context) {
	record, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, record)
}

// MyClientProfile GET /me/client-profile
func (h *UserHandler) MyClientProfile(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	profile, err := h.clients.Profile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SavePhone PUT /me/phone
func (h *UserHandler) SavePhone(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		Phone    string `json:"phone" binding:"required"`
		Verified bool   `json:"verified"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "телефон обязателен")
		return
	}

	if err := h.clients.SavePhone(c.Request.Context(), userID, req.Phone, req.Verified); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetLanguage PUT /me/language
func (h *UserHandler) SetLanguage(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "язык обязателен")
		return
	}

	if err := h.users.SetLanguage(c.Request.Context(), userID, req.Language); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MyReputation GET /me/reputation
func (h *UserHandler) MyReputation(c *gin.Context) {
	record, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	rep, err := h.reputation.UserReputation(c.Request.Context(), record.UserID, record.MasterID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, rep)
}
