package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mersinbot/masters-backend/internal/http/handlers/common"
	"github.com/mersinbot/masters-backend/internal/service"
)

// RequestHandler принимает жалобы и консьерж-заявки.
type RequestHandler struct {
	requests *service.RequestService
}

func NewRequestHandler(requests *service.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// CreateComplaint POST /complaints
func (h *RequestHandler) CreateComplaint(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		MasterID int64  `json:"master_id" binding:"required"`
		Text     string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "master_id и text обязательны")
		return
	}

	complaintID, err := h.requests.SubmitComplaint(c.Request.Context(), userID, req.MasterID, req.Text)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"complaint_id": complaintID})
}

// CreateServiceRequest POST /service-requests
// Клиент оставляет контакты, когда подбор не дал результата.
func (h *RequestHandler) CreateServiceRequest(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		Categories string `json:"categories" binding:"required"`
		Phone      string `json:"phone" binding:"required"`
		Name       string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "категории, телефон и имя обязательны")
		return
	}

	requestID, err := h.requests.SubmitServiceRequest(c.Request.Context(), userID, req.Categories, req.Phone, req.Name)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request_id": requestID})
}
