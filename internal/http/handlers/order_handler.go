package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mersinbot/masters-backend/internal/http/handlers/common"
	"github.com/mersinbot/masters-backend/internal/models"
	"github.com/mersinbot/masters-backend/internal/service"
)

// OrderHandler отвечает за жизненный цикл заказов.
type OrderHandler struct {
	orders  *service.OrderService
	masters *service.MasterService
}

func NewOrderHandler(orders *service.OrderService, masters *service.MasterService) *OrderHandler {
	return &OrderHandler{orders: orders, masters: masters}
}

// Create POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		MasterID   int64  `json:"master_id" binding:"required"`
		CategoryID *int64 `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "master_id обязателен")
		return
	}

	orderID, err := h.orders.CreateOrder(c.Request.Context(), userID, req.MasterID, req.CategoryID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order_id": orderID})
}

// Pending GET /orders/pending
// Отдаёт незакрытый заказ старше суток, если он блокирует создание новых.
func (h *OrderHandler) Pending(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	pending, err := h.orders.PendingOrder(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	if pending == nil {
		c.JSON(http.StatusOK, gin.H{"pending": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

// ListActive GET /orders/active
func (h *OrderHandler) ListActive(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	orders, err := h.orders.ActiveOrders(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ListCompleted GET /orders/completed
func (h *OrderHandler) ListCompleted(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)
	orders, err := h.orders.CompletedOrders(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	active, completed, err := h.orders.OrderCounts(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":          orders,
		"total_active":    active,
		"total_completed": completed,
	})
}

// Complete POST /orders/:id/complete
func (h *OrderHandler) Complete(c *gin.Context) {
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
		Rating     *int    `json:"rating"`
		ReviewText *string `json:"review_text"`
		Price      *int    `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	completion := &models.OrderCompletion{
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
		Price:      req.Price,
	}
	if err := h.orders.CompleteOrder(c.Request.Context(), orderID, userID, completion); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Cancel POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
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

	if err := h.orders.CancelOrder(c.Request.Context(), orderID, userID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RateClient POST /orders/:id/client-rating
// Встречная оценка клиента мастером по завершённому заказу.
func (h *OrderHandler) RateClient(c *gin.Context) {
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
		Rating int `json:"rating" binding:"required,min=1,max=5"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "оценка должна быть от 1 до 5")
		return
	}

	if err := h.orders.RateClient(c.Request.Context(), orderID, master.ID, req.Rating); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MyReviews GET /orders/reviews
func (h *OrderHandler) MyReviews(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	reviews, err := h.orders.ClientReviews(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
