package app

import (
	"context"
	"fmt"
	"time"

	"carhub_backend/internal/config"
	"carhub_backend/internal/email"
	"carhub_backend/internal/handlers"
	"carhub_backend/internal/logger"
	"carhub_backend/internal/middleware"
	"carhub_backend/internal/repositories"
	"carhub_backend/internal/routes"
	"carhub_backend/internal/services"
	"carhub_backend/internal/storage"
	"carhub_backend/internal/validator"
	"carhub_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func Run() {
	// .env необязателен, локальное удобство
	_ = godotenv.Load()

	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	store, err := storage.NewStore(storage.Config{
		Type:    cfg.Storage.Type,
		DataDir: cfg.Storage.DataDir,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type, "data_dir", cfg.Storage.DataDir)

	ginRouter, cleanupWorker := SetupRouter(cfg, store)
	cleanupWorker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает полный роутер приложения.
// Возвращает также cleanup worker: вызывающий решает, запускать ли
// его фоновую подметку (тесты обычно не запускают).
func SetupRouter(cfg *config.Config, store storage.Store) (*gin.Engine, *workers.CleanupWorker) {
	// 1. Репозитории
	userRepo := repositories.NewUserRepository(store)
	carRepo := repositories.NewCarRepository(store)

	// 2. Отложенная очистка неверифицированных записей
	cleanupWorker := workers.NewCleanupWorker(
		userRepo,
		time.Duration(cfg.Verification.CodeTTLSeconds)*time.Second,
		time.Duration(cfg.Verification.SweepIntervalSeconds)*time.Second,
	)

	// 3. Сервисы
	serviceContainer := initializeServices(cfg, userRepo, carRepo, cleanupWorker)

	// 4. Хэндлеры
	appHandlers := initializeHandlers(serviceContainer)

	// 5. Gin и маршруты
	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, cleanupWorker
}

func initializeServices(
	cfg *config.Config,
	userRepo repositories.UserRepository,
	carRepo repositories.CarRepository,
	scheduler services.VerificationScheduler,
) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, verification codes go to the log")
		emailProvider = email.NewLogProvider()
	} else {
		emailProvider = email.NewSMTPProvider(cfg)
	}

	authService := services.NewAuthService(userRepo, emailProvider, scheduler, cfg)
	carService := services.NewCarService(carRepo)

	return &services.ServiceContainer{
		AuthService:  authService,
		CarService:   carService,
		EmailService: emailProvider,
	}
}

func initializeHandlers(serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	v := validator.New()
	base := handlers.NewBaseHandler(v)

	return &handlers.AppHandlers{
		UserHandler: handlers.NewUserHandler(base, serviceContainer.AuthService),
		CarHandler:  handlers.NewCarHandler(base, serviceContainer.CarService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
