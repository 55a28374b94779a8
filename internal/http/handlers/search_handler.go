package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mersinbot/masters-backend/internal/http/handlers/common"
	"github.com/mersinbot/masters-backend/internal/service"
)

// SearchHandler выполняет подбор мастеров.
type SearchHandler struct {
	search *service.SearchService
}

func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Search POST /search
// Мастер, ищущий сам себя, в выдачу не попадает.
func (h *SearchHandler) Search(c *gin.Context) {
	record, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		Categories []int64 `json:"categories"`
		Districts  []int64 `json:"districts"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "категории и районы должны быть массивами идентификаторов")
		return
	}

	var exclude *int64
	if record.IsMaster {
		exclude = &record.UserID
	}

	items, err := h.search.Find(c.Request.Context(), req.Categories, req.Districts, exclude)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"masters": items,
		"total":   len(items),
	})
}
