package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mersinbot/masters-backend/internal/http/handlers/common"
	"github.com/mersinbot/masters-backend/internal/models"
	"github.com/mersinbot/masters-backend/internal/service"
)

// MasterHandler отвечает за анкеты мастеров.
type MasterHandler struct {
	masters *service.MasterService
}

func NewMasterHandler(masters *service.MasterService) *MasterHandler {
	return &MasterHandler{masters: masters}
}

type masterProfileRequest struct {
	Name        string  `json:"name" binding:"required"`
	Phone       string  `json:"phone" binding:"required"`
	Description *string `json:"description"`
	Categories  []int64 `json:"categories" binding:"required"`
	Districts   []int64 `json:"districts" binding:"required"`
}

// Register POST /masters
func (h *MasterHandler) Register(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req masterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "имя, телефон, категории и районы обязательны")
		return
	}

	masterID, err := h.masters.Register(c.Request.Context(), &models.NewMaster{
		UserID:      &userID,
		Name:        req.Name,
		Phone:       req.Phone,
		Description: req.Description,
		Categories:  req.Categories,
		Districts:   req.Districts,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"master_id": masterID})
}

// Get GET /masters/:id
func (h *MasterHandler) Get(c *gin.Context) {
	masterID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	master, err := h.masters.Details(c.Request.Context(), masterID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, master)
}

// MyProfile GET /masters/me
func (h *MasterHandler) MyProfile(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	master, err := h.masters.ByUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	details, err := h.masters.Details(c.Request.Context(), master.ID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// UpdateMyProfile PUT /masters/me
func (h *MasterHandler) UpdateMyProfile(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	master, err := h.masters.ByUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	var req masterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "имя, телефон, категории и районы обязательны")
		return
	}

	err = h.masters.UpdateProfile(c.Request.Context(), master.ID, &models.MasterProfileUpdate{
		Name:        req.Name,
		Phone:       req.Phone,
		Description: req.Description,
		Categories:  req.Categories,
		Districts:   req.Districts,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MyStats GET /masters/me/stats
func (h *MasterHandler) MyStats(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	master, err := h.masters.ByUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	stats, err := h.masters.Stats(c.Request.Context(), master.ID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Link POST /masters/:id/link
// Привязывает анкету без владельца к текущему пользователю. Вызывается
// после того, как регистрация упёрлась в существующий номер.
func (h *MasterHandler) Link(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	masterID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.masters.Link(c.Request.Context(), masterID, userID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RequestPremium POST /masters/me/premium
func (h *MasterHandler) RequestPremium(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	master, err := h.masters.ByUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	requestID, err := h.masters.RequestPremium(c.Request.Context(), master.ID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request_id": requestID})
}
