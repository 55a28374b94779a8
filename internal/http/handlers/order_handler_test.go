package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mersinbot/masters-backend/internal/http/middleware"
	"github.com/mersinbot/masters-backend/internal/models"
)

func authedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		record := &models.UserRecord{UserID: 1, TelegramID: 100, Language: "ru"}
		c.Set(middleware.ContextUserKey, record)
		c.Set(middleware.ContextUserIDKey, record.UserID)
		c.Next()
	})
	return r
}

func TestOrderHandler_Create_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &OrderHandler{}
	r.POST("/orders", handler.Create)

	req, _ := http.NewRequest("POST", "/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderHandler_Complete_InvalidOrderID(t *testing.T) {
	r := authedRouter()
	handler := &OrderHandler{}
	r.POST("/orders/:id/complete", handler.Complete)

	req, _ := http.NewRequest("POST", "/orders/abc/complete", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Create_MissingMasterID(t *testing.T) {
	r := authedRouter()
	handler := &OrderHandler{}
	r.POST("/orders", handler.Create)

	req, _ := http.NewRequest("POST", "/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchHandler_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &SearchHandler{}
	r.POST("/search", handler.Search)

	req, _ := http.NewRequest("POST", "/search", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMasterHandler_Get_InvalidID(t *testing.T) {
	r := authedRouter()
	handler := &MasterHandler{}
	r.GET("/masters/:id", handler.Get)

	req, _ := http.NewRequest("GET", "/masters/zero", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReputationHandler_Criteria_BadRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ReputationHandler{}
	r.GET("/reputation/criteria", handler.Criteria)

	req, _ := http.NewRequest("GET", "/reputation/criteria?role=alien", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
