package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mersinbot/masters-backend/internal/config"
	"github.com/mersinbot/masters-backend/internal/http/handlers"
	"github.com/mersinbot/masters-backend/internal/http/middleware"
	"github.com/mersinbot/masters-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	masterHandler *handlers.MasterHandler,
	searchHandler *handlers.SearchHandler,
	orderHandler *handlers.OrderHandler,
	reputationHandler *handlers.ReputationHandler,
	catalogHandler *handlers.CatalogHandler,
	requestHandler *handlers.RequestHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
	userService *service.UserService,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod, tokenManager))

	// Шлюз обменивает telegram_id на JWT, аутентифицируясь общим секретом.
	api.POST("/auth/gateway", authHandler.GatewayToken)

	// Справочники публичны: их читает и шлюз до авторизации.
	api.GET("/catalog/categories", catalogHandler.Categories)
	api.GET("/catalog/districts", catalogHandler.Districts)
	api.GET("/reputation/criteria", reputationHandler.Criteria)

	// Защищённые маршруты.
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager, userService))
	{
		protected.GET("/me", userHandler.Me)
		protected.GET("/me/client-profile", userHandler.MyClientProfile)
		protected.PUT("/me/phone", userHandler.SavePhone)
		protected.PUT("/me/language", userHandler.SetLanguage)
		protected.GET("/me/reputation", userHandler.MyReputation)

		protected.POST("/masters", masterHandler.Register)
		protected.GET("/masters/me", masterHandler.MyProfile)
		protected.PUT("/masters/me", masterHandler.UpdateMyProfile)
		protected.GET("/masters/me/stats", masterHandler.MyStats)
		protected.POST("/masters/me/premium", masterHandler.RequestPremium)
		protected.GET("/masters/:id", masterHandler.Get)
		protected.POST("/masters/:id/link", masterHandler.Link)
		protected.GET("/masters/:id/reputation", reputationHandler.MasterReputation)

		protected.POST("/search", searchHandler.Search)

		protected.POST("/orders", orderHandler.Create)
		protected.GET("/orders/pending", orderHandler.Pending)
		protected.GET("/orders/active", orderHandler.ListActive)
		protected.GET("/orders/completed", orderHandler.ListCompleted)
		protected.GET("/orders/reviews", orderHandler.MyReviews)
		protected.POST("/orders/:id/complete", orderHandler.Complete)
		protected.POST("/orders/:id/cancel", orderHandler.Cancel)
		protected.POST("/orders/:id/client-rating", orderHandler.RateClient)
		protected.POST("/orders/:id/reputation", reputationHandler.VoteAboutMaster)
		protected.POST("/orders/:id/client-reputation", reputationHandler.VoteAboutClient)

		protected.POST("/complaints", requestHandler.CreateComplaint)
		protected.POST("/service-requests", requestHandler.CreateServiceRequest)
	}

	// Модерация.
	admin := protected.Group("/admin")
	admin.Use(middleware.AdminMiddleware(cfg))
	{
		admin.POST("/masters", adminHandler.RegisterMaster)
		admin.PUT("/masters/:id/status", adminHandler.SetMasterStatus)
		admin.PUT("/masters/:id/premium", adminHandler.GrantPremium)
		admin.PUT("/users/:id/block", adminHandler.BlockUser)
	}

	return r
}
