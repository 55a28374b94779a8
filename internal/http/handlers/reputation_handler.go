package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mersinbot/masters-backend/internal/http/handlers/common"
	"github.com/mersinbot/masters-backend/internal/service"
)

// ReputationHandler отвечает за чек-лист репутации.
type ReputationHandler struct {
	reputation *service.ReputationService
	masters    *service.MasterService
}

func NewReputationHandler(reputation *service.ReputationService, masters *service.MasterService) *ReputationHandler {
	return &ReputationHandler{reputation: reputation, masters: masters}
}

// Criteria GET /reputation/criteria?role=client|master
func (h *ReputationHandler) Criteria(c *gin.Context) {
	role := c.DefaultQuery("role", "client")
	if role != "client" && role != "master" {
		common.RespondBadRequest(c, "role должен быть client или master")
		return
	}

	criteria, err := h.reputation.Criteria(c.Request.Context(), role == "client")
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"criteria": criteria})
}

// VoteAboutMaster POST /orders/:id/reputation
// Клиент отмечает критерии о мастере. Повторная отправка заменяет
// прежний набор.
func (h *ReputationHandler) VoteAboutMaster(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	orderID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		CriterionIDs []int64 `json:"criterion_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "criterion_ids должен быть массивом идентификаторов")
		return
	}

	if err := h.reputation.SubmitClientVotes(c.Request.Context(), orderID, userID, req.CriterionIDs); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// VoteAboutClient POST /orders/:id/client-reputation
func (h *ReputationHandler) VoteAboutClient(c *gin.Context) {
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

	orderID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		CriterionIDs []int64 `json:"criterion_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "criterion_ids должен быть массивом идентификаторов")
		return
	}

	if err := h.reputation.SubmitMasterVotes(c.Request.Context(), orderID, master.ID, req.CriterionIDs); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MasterReputation GET /masters/:id/reputation
func (h *ReputationHandler) MasterReputation(c *gin.Context) {
	masterID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	stats, err := h.reputation.MasterStats(c.Request.Context(), masterID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
