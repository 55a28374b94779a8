package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mersinbot/masters-backend/internal/http/handlers/common"
	"github.com/mersinbot/masters-backend/internal/models"
	"github.com/mersinbot/masters-backend/internal/service"
)

// AdminHandler — операции модерации. Доступ закрыт AdminMiddleware.
type AdminHandler struct {
	masters *service.MasterService
	users   *service.UserService
}

func NewAdminHandler(masters *service.MasterService, users *service.UserService) *AdminHandler {
	return &AdminHandler{masters: masters, users: users}
}

// SetMasterStatus PUT /admin/masters/:id/status
// Переводы по модерации: pending -> active_free, блокировка, премиум.
func (h *AdminHandler) SetMasterStatus(c *gin.Context) {
	adminID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	masterID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "status обязателен")
		return
	}

	if err := h.masters.SetStatus(c.Request.Context(), masterID, req.Status, &adminID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterMaster POST /admin/masters
// Анкета, добавленная администратором: без владельца, сразу активна.
func (h *AdminHandler) RegisterMaster(c *gin.Context) {
	var req masterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "имя, телефон, категории и районы обязательны")
		return
	}

	masterID, err := h.masters.Register(c.Request.Context(), &models.NewMaster{
		Name:        req.Name,
		Phone:       req.Phone,
		Description: req.Description,
		Categories:  req.Categories,
		Districts:   req.Districts,
		Source:      models.MasterSourceAdmin,
		Status:      models.MasterStatusActiveFree,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"master_id": masterID})
}

// GrantPremium PUT /admin/masters/:id/premium
func (h *AdminHandler) GrantPremium(c *gin.Context) {
	adminID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	masterID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		Until *time.Time `json:"until"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	if req.Until == nil {
		if err := h.masters.RevokePremium(c.Request.Context(), masterID, &adminID); err != nil {
			c.Error(err)
			return
		}
	} else {
		if err := h.masters.GrantPremium(c.Request.Context(), masterID, *req.Until, &adminID); err != nil {
			c.Error(err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// BlockUser PUT /admin/users/:id/block
func (h *AdminHandler) BlockUser(c *gin.Context) {
	userID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	if err := h.users.SetBlocked(c.Request.Context(), userID, req.Blocked); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
