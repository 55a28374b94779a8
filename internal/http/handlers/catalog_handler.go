package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mersinbot/masters-backend/internal/http/handlers/common"
	"github.com/mersinbot/masters-backend/internal/service"
)

// CatalogHandler отдаёт справочники категорий и районов.
type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Categories GET /catalog/categories?parent_id=N
// Без parent_id отдаёт корневые группы.
func (h *CatalogHandler) Categories(c *gin.Context) {
	var parentID *int64
	if raw := c.Query("parent_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			common.RespondBadRequest(c, "неверный parent_id")
			return
		}
		parentID = &id
	}

	nodes, err := h.catalog.Children(c.Request.Context(), parentID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": nodes})
}

// Districts GET /catalog/districts
func (h *CatalogHandler) Districts(c *gin.Context) {
	districts, err := h.catalog.Districts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"districts": districts})
}
