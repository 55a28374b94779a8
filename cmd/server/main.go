package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mersinbot/masters-backend/internal/cache"
	"github.com/mersinbot/masters-backend/internal/config"
	"github.com/mersinbot/masters-backend/internal/db"
	httpHandlers "github.com/mersinbot/masters-backend/internal/http/handlers"
	httpRouter "github.com/mersinbot/masters-backend/internal/http/router"
	"github.com/mersinbot/masters-backend/internal/logger"
	"github.com/mersinbot/masters-backend/internal/notify"
	"github.com/mersinbot/masters-backend/internal/repository"
	"github.com/mersinbot/masters-backend/internal/service"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	masterRepo := repository.NewMasterRepository(dbConn)
	orderRepo := repository.NewOrderRepository(dbConn)
	catalogRepo := repository.NewCatalogRepository(dbConn)
	reputationRepo := repository.NewReputationRepository(dbConn)
	clientRepo := repository.NewClientRepository(dbConn)
	requestRepo := repository.NewRequestRepository(dbConn)

	// Кеши. Каталог грузится один раз на старте: справочники меняются
	// только миграциями.
	userCache := cache.NewUserCache(cfg.UserCacheTTL, cfg.UserCacheSize)
	catalogCache := cache.NewCatalogCache()
	if err := catalogCache.Load(ctx, catalogRepo); err != nil {
		log.Fatalf("main: ошибка загрузки каталога: %v", err)
	}
	categories, districts := catalogCache.Sizes()
	logger.Log.Infof("каталог загружен: %d категорий, %d районов", categories, districts)

	// Уведомления администраторам.
	notifier, err := notify.NewAdminNotifier(cfg.BotToken, cfg.AdminChatID, cfg.AdminIDs)
	if err != nil {
		log.Fatalf("main: ошибка инициализации уведомлений: %v", err)
	}

	// Сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.GatewayTokenTTL)
	userService := service.NewUserService(userRepo, userCache, cfg.DefaultLanguage, cfg.SupportedLanguages)
	masterService := service.NewMasterService(masterRepo, userRepo, requestRepo, userCache, notifier)
	searchService := service.NewSearchService(masterRepo)
	orderService := service.NewOrderService(orderRepo, masterRepo, clientRepo)
	reputationService := service.NewReputationService(reputationRepo, orderRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	clientService := service.NewClientService(clientRepo)
	requestService := service.NewRequestService(requestRepo, notifier)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(cfg, tokenManager, userService)
	userHandler := httpHandlers.NewUserHandler(userService, clientService, reputationService)
	masterHandler := httpHandlers.NewMasterHandler(masterService)
	searchHandler := httpHandlers.NewSearchHandler(searchService)
	orderHandler := httpHandlers.NewOrderHandler(orderService, masterService)
	reputationHandler := httpHandlers.NewReputationHandler(reputationService, masterService)
	catalogHandler := httpHandlers.NewCatalogHandler(catalogService)
	requestHandler := httpHandlers.NewRequestHandler(requestService)
	adminHandler := httpHandlers.NewAdminHandler(masterService, userService)
	healthHandler := httpHandlers.NewHealthHandler(dbConn, userCache, catalogCache)

	// Роутер.
	engine := httpRouter.SetupRouter(
		cfg,
		authHandler,
		userHandler,
		masterHandler,
		searchHandler,
		orderHandler,
		reputationHandler,
		catalogHandler,
		requestHandler,
		adminHandler,
		healthHandler,
		tokenManager,
		userService,
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	logger.Log.Infof("сервер запущен на порту %s", cfg.HTTPPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: ошибка http сервера: %v", err)
	}
}

func safeClose(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		log.Printf("main: ошибка закрытия соединения с базой: %v", err)
	}
}
